package caption

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Document is the structured-data representation of a track. Start and
// end are fractional seconds rounded to milliseconds, which keeps the
// representation lossless for round-tripping at 1ms precision.
type Document struct {
	Language     string    `json:"language"`
	Origin       Origin    `json:"origin"`
	CaptionCount int       `json:"caption_count"`
	Captions     []JSONCue `json:"captions"`
}

// JSONCue is one cue in the structured-data output.
type JSONCue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SerializeJSON renders the track as an indented JSON document.
func SerializeJSON(track Track) (string, error) {
	doc := Document{
		Language:     track.Language,
		Origin:       track.Origin,
		CaptionCount: len(track.Cues),
		Captions:     make([]JSONCue, 0, len(track.Cues)),
	}
	for _, cue := range track.Cues {
		doc.Captions = append(doc.Captions, JSONCue{
			Start: roundSeconds(cue.Start),
			End:   roundSeconds(cue.End),
			Text:  cue.Text,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode caption document: %w", err)
	}
	return buf.String(), nil
}

// ParseJSON reconstructs a track from SerializeJSON output. Cue count,
// text, and timings to millisecond precision survive the round trip.
func ParseJSON(raw string) (Track, error) {
	var doc Document
	if err := json.Unmarshal([]byte(stripBOM(raw)), &doc); err != nil {
		return Track{}, &MalformedPayloadError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if len(doc.Captions) == 0 {
		return Track{}, ErrEmptyTrack
	}

	track := Track{
		Language: doc.Language,
		Origin:   doc.Origin,
		Cues:     make([]Cue, 0, len(doc.Captions)),
	}
	for _, c := range doc.Captions {
		track.Cues = append(track.Cues, Cue{
			Start: secondsToDuration(c.Start),
			End:   secondsToDuration(c.End),
			Text:  c.Text,
		})
	}
	return track, nil
}

func roundSeconds(d time.Duration) float64 {
	return float64(d.Milliseconds()) / 1000
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(math.Round(sec*1000)) * time.Millisecond
}
