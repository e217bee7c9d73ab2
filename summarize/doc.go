// Package summarize condenses chunks of text with a language model.
//
// SummarizeChunks issues one request per chunk on a bounded worker pool and
// returns the summaries in chunk order. The first failed request cancels the
// requests that have not started yet. Reduce combines the chunk summaries
// into the final summary with at most one further request.
package summarize
