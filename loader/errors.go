package loader

import "errors"

var (
	// ErrUnexpectedStatus is returned when a remote server answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrEmptyPage is returned when a fetched page has no readable text.
	ErrEmptyPage = errors.New("page has no readable text")

	// ErrNoText is returned when no page of a PDF has extractable text.
	ErrNoText = errors.New("pdf has no extractable text")

	// ErrPlayerResponseMissing is returned when a watch page carries no player data.
	ErrPlayerResponseMissing = errors.New("video player response not found")

	// ErrVideoUnavailable is returned when the player data reports the video cannot be played.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrInvalidOption is returned when an option receives an unusable value.
	ErrInvalidOption = errors.New("invalid option")
)
