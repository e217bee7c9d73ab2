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


package extract

import "errors"

var (
	// ErrInvalidVideoURL is returned when no video id can be parsed from a URL.
	ErrInvalidVideoURL = errors.New("invalid YouTube URL format")

	// ErrNoTranscript is returned when a video has no subtitles, captions or description.
	ErrNoTranscript = errors.New("no transcript or description available for this video")

	// ErrInvalidURL is returned when URL content does not hold an absolute web address.
	ErrInvalidURL = errors.New("content is not a web URL")

	// ErrNotItemList is returned when a digest payload is valid JSON but not an array.
	ErrNotItemList = errors.New("digest payload is not a list")

	// ErrMalformedPayload is returned when a digest payload is not valid JSON.
	ErrMalformedPayload = errors.New("malformed JSON")

	// ErrEmptyPath is returned when a file-based input carries no path.
	ErrEmptyPath = errors.New("file path is empty")

	// ErrCapabilityMissing is returned when the registry was built without the
	// capability an input type needs.
	ErrCapabilityMissing = errors.New("capability not configured")
)
