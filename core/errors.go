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
	"errors"
	"fmt"
)

// Stage failure kinds. A StageError matches its kind with errors.Is.
var (
	// ErrRouting indicates the input type could not be routed to an extractor.
	ErrRouting = errors.New("routing failed")

	// ErrExtraction indicates an extraction capability failed.
	ErrExtraction = errors.New("extraction failed")

	// ErrChunking indicates the extracted text could not be split.
	ErrChunking = errors.New("chunking failed")

	// ErrSummarization indicates a per-chunk model request failed.
	ErrSummarization = errors.New("chunk summarization failed")

	// ErrReduction indicates the final model request failed.
	ErrReduction = errors.New("final summarization failed")
)

// Initial state validation errors
var (
	// ErrInvalidState indicates a state failed validation before the run started.
	ErrInvalidState = errors.New("invalid pipeline state")

	// ErrUnknownInputType indicates an input type outside the supported set.
	ErrUnknownInputType = errors.New("unsupported input type")

	// ErrStateNotFresh indicates derived fields were populated before the run.
	ErrStateNotFresh = errors.New("derived fields must be empty on entry")
)

// StageError is an expected domain failure recorded on the state by the stage
// that observed it. Stage is the human readable origin, e.g. "PDF extraction",
// and prefixes the rendered message.
type StageError struct {
	Kind  error
	Stage string
	Err   error
}

// NewStageError builds a StageError. A nil err yields nil.
func NewStageError(kind error, stage string, err error) *StageError {
	if err == nil {
		return nil
	}
	return &StageError{Kind: kind, Stage: stage, Err: err}
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s error", e.Stage)
	}
	return fmt.Sprintf("%s error: %s", e.Stage, e.Err.Error())
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *StageError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{e.Kind, e.Err}
}
