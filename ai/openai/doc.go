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


// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// Text generation goes through the langchaingo library, so any OpenAI-compatible
// chat server works (OpenAI, Groq, Ollama, LocalAI, vLLM). Transcription uses the
// official openai-go client against the /audio/transcriptions endpoint.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithGenerationHost("http://localhost:11434"),  // /v1 added automatically
//	    ai.WithGenerationModel("llama3.1:8b"),
//	    ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	summary, err := provider.Generator().GenerateText(ctx, system, user)
//	transcript, err := provider.Transcriber().Transcribe(ctx, "talk.mp3")
package openai
