// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services the summarization
// pipeline depends on.
//
// The package defines two capabilities:
//
//   - Generator: sends a system and a user instruction to a language model
//   - Transcriber: converts an audio file into text
//
// plus AIProvider, which aggregates both for initialization and shutdown.
// Stages receive these capabilities explicitly; there is no package-level client.
//
// # Implementation Packages
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//   - ai/mock: goroutine-safe test doubles with call recording
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.NewConfig(
//	    ai.WithGenerationModel("gpt-4o-mini"),
//	    ai.WithAPIKey(key),
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	summary, err := provider.Generator().GenerateText(ctx, "Be concise.", "Summarize this text: ...")
package ai
