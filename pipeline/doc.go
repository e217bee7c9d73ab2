// Package pipeline runs one content item through the summarization workflow.
//
// An Engine routes the state to the extractor registered for its input type
// and then visits the linear stages every branch shares:
//
//	extract_<type> -> chunk -> summarize -> reduce
//
// Expected failures (a missing file, a model error) are recorded on the state
// as core.StageError values; the first one recorded wins. Run returns a Go
// error only when the engine itself cannot proceed: a nil or non-fresh state,
// or a stage that panicked.
//
// By default every stage runs even after a failure, and the terminal step
// clears the final summary of a failed state. WithErrorPolicy(ErrorPolicyHalt)
// stops at the first failure instead.
package pipeline
