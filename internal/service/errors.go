package service

import (
	"errors"
	"fmt"

	"github.com/Up14/youtube-video-transcriptor/internal/caption"
	"github.com/Up14/youtube-video-transcriptor/internal/youtube"
)

// translateFetchError maps fetch-layer failures into the core error
// taxonomy, so the taxonomy the shell sees stays stable even if the
// collaborator's failure modes change. Errors already in the taxonomy
// pass through; anything unrecognized stays a generic fetch failure.
func translateFetchError(err error) error {
	if _, known := caption.KindOf(err); known {
		return err
	}

	switch {
	case errors.Is(err, youtube.ErrBadURL):
		return caption.ErrInvalidURL
	case errors.Is(err, youtube.ErrUnavailable):
		return caption.ErrVideoUnavailable
	case errors.Is(err, youtube.ErrTrackGone):
		// The catalogued track vanished between the two fetch calls.
		return caption.ErrVideoUnavailable
	}
	return fmt.Errorf("caption fetch failed: %w", err)
}

// outcomeOf labels an error for metrics: the taxonomy kind, or "error"
// for failures outside it.
func outcomeOf(err error) string {
	if kind, ok := caption.KindOf(err); ok {
		return string(kind)
	}
	return "error"
}
