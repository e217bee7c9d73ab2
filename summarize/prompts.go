package summarize

import "strings"

const (
	// ChunkSystemPrompt instructs the model how to summarize a single chunk.
	ChunkSystemPrompt = "You are an expert summarizer. Create a concise, accurate summary " +
		"of the provided text. Focus on key points, main ideas, and important details. " +
		"Keep the summary clear and well-structured."

	// ReduceSystemPrompt instructs the model how to merge chunk summaries.
	ReduceSystemPrompt = "You are an expert at creating comprehensive summaries. " +
		"Combine the following partial summaries into one cohesive, well-structured final summary. " +
		"Ensure all key points are covered without redundancy."

	chunkPromptPrefix  = "Summarize this text:\n\n"
	reducePromptPrefix = "Create a final summary from these partial summaries:\n\n"

	// SummarySeparator joins chunk summaries in the reduce request.
	SummarySeparator = "\n\n"
)

// ChunkPrompt builds the user instruction for one chunk.
func ChunkPrompt(chunk string) string {
	return chunkPromptPrefix + chunk
}

// ReducePrompt builds the user instruction that merges summaries.
func ReducePrompt(summaries []string) string {
	return reducePromptPrefix + strings.Join(summaries, SummarySeparator)
}
