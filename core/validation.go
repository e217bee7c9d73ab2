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


package core

import (
	"fmt"
	"slices"
	"strings"
)

// ParseInputType converts a raw tag into an InputType.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseInputType(raw string) (InputType, error) {
	t := InputType(strings.ToLower(strings.TrimSpace(raw)))
	if !IsValidInputType(t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownInputType, raw)
	}
	return t, nil
}

// IsValidInputType reports whether t is one of the supported input types.
func IsValidInputType(t InputType) bool {
	return slices.Contains(InputTypes, t)
}

// ValidateInitialState checks a state before the engine runs it.
//
// Validation rules:
//   - state must not be nil
//   - ExtractedText, Chunks, Summaries and FinalSummary must be empty
//
// NOT validated (handled by the router):
//   - InputType (an unknown type is an expected routing failure)
//   - Err (a pre-set error terminates the run immediately)
//   - Metadata (nil is replaced with an empty store)
func ValidateInitialState(state *State) error {
	if state == nil {
		return fmt.Errorf("%w: state is nil", ErrInvalidState)
	}

	var populated []string
	if state.ExtractedText != "" {
		populated = append(populated, "ExtractedText")
	}
	if len(state.Chunks) > 0 {
		populated = append(populated, "Chunks")
	}
	if len(state.Summaries) > 0 {
		populated = append(populated, "Summaries")
	}
	if state.FinalSummary != "" {
		populated = append(populated, "FinalSummary")
	}
	if len(populated) > 0 {
		return fmt.Errorf("%w: %w: %s", ErrInvalidState, ErrStateNotFresh, strings.Join(populated, ", "))
	}

	return nil
}
