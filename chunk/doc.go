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


// Package chunk splits extracted text into bounded, overlapping pieces small
// enough for a single language model request.
//
// Splitting is recursive: the text is cut on paragraph breaks first, then on
// line breaks, then on spaces and finally between characters, until every
// piece fits the configured size. Sizes are measured in runes.
package chunk
