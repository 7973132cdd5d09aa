package caption

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a stable machine-readable error category for the presentation
// layer. Every error this package (and the orchestrator) surfaces maps to
// exactly one Kind.
type Kind string

const (
	KindInvalidURL           Kind = "invalid_url"
	KindVideoUnavailable     Kind = "video_unavailable"
	KindNoCaptions           Kind = "no_captions_available"
	KindLanguageNotAvailable Kind = "language_not_available"
	KindEmptyTrack           Kind = "empty_caption_track"
	KindMalformedPayload     Kind = "malformed_payload"
)

var (
	// ErrInvalidURL means the input is not a recognizable video URL.
	ErrInvalidURL = errors.New("not a recognizable YouTube video URL")
	// ErrVideoUnavailable means the video is private, removed, or restricted.
	ErrVideoUnavailable = errors.New("video is unavailable (private, removed, or restricted)")
	// ErrNoCaptions means the video exposes no caption tracks at all.
	ErrNoCaptions = errors.New("no captions are available for this video")
	// ErrEmptyTrack means a payload parsed, but no usable cues survived.
	ErrEmptyTrack = errors.New("caption track is empty or could not be parsed")
)

// LanguageNotAvailableError reports that the requested language has no
// caption track, carrying the full set of available tags so the caller
// can suggest alternatives.
type LanguageNotAvailableError struct {
	Requested string
	Available []string
}

func (e *LanguageNotAvailableError) Error() string {
	return fmt.Sprintf("captions not available in %q; available languages: %s",
		e.Requested, strings.Join(e.Available, ", "))
}

// MalformedPayloadError reports a payload that is not a caption format at
// all, as opposed to a track that merely parsed to zero cues.
type MalformedPayloadError struct {
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed caption payload: %s", e.Reason)
}

// KindOf classifies an error from this package's taxonomy. The second
// return is false for errors outside the taxonomy.
func KindOf(err error) (Kind, bool) {
	var langErr *LanguageNotAvailableError
	var malErr *MalformedPayloadError

	switch {
	case errors.Is(err, ErrInvalidURL):
		return KindInvalidURL, true
	case errors.Is(err, ErrVideoUnavailable):
		return KindVideoUnavailable, true
	case errors.Is(err, ErrNoCaptions):
		return KindNoCaptions, true
	case errors.Is(err, ErrEmptyTrack):
		return KindEmptyTrack, true
	case errors.As(err, &langErr):
		return KindLanguageNotAvailable, true
	case errors.As(err, &malErr):
		return KindMalformedPayload, true
	}
	return "", false
}

// AvailableLanguages extracts the suggestion list from a
// LanguageNotAvailableError anywhere in the chain, or nil.
func AvailableLanguages(err error) []string {
	var langErr *LanguageNotAvailableError
	if errors.As(err, &langErr) {
		return langErr.Available
	}
	return nil
}
