// Package batch summarizes many inputs in one invocation.
//
// Jobs are read from JSON Lines, one object per line:
//
//	{"id": "q3-report", "type": "pdf", "content": "/reports/q3.pdf"}
//	{"type": "digest", "content": ["first item", "second item"]}
//
// A non-string content value is passed to the pipeline as its raw JSON text,
// which lets digest jobs carry their item list inline. The Runner pushes jobs
// through a pipeline engine on a worker pool, reports progress to a writer and
// returns one Result per job in input order.
package batch
