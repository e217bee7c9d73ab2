// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Generator, ai.Transcriber,
// and ai.AIProvider for use in unit tests. The mocks record every call and are
// safe for concurrent use, so they can stand behind the parallel summarization
// stage.
//
// # Usage in Tests
//
//	gen := mock.NewMockGenerator().
//	    WithGenerateTextFunc(func(ctx context.Context, system, user string) (string, error) {
//	        return "short summary", nil
//	    })
//
//	// Check calls
//	count := gen.CallCount()
//	last := gen.Calls()[count-1].User
//
// # Default Behavior
//
//   - MockGenerator: returns "summary-<fnv32 of user instruction>"
//   - MockTranscriber: returns "transcript of <file name>" in language "en"
//   - MockProvider: aggregates mock generator and transcriber
package mock
