package caption

import (
	"fmt"
	"strings"
)

// Format identifies an output serialization. The set is closed: each
// value has exactly one serializer and the identifiers are stable wire
// names, matched case-insensitively.
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatText Format = "txt"
	FormatJSON Format = "json"
)

// AllFormats lists every supported output format.
func AllFormats() []Format {
	return []Format{FormatSRT, FormatVTT, FormatText, FormatJSON}
}

// ParseFormat maps a wire identifier to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}

// Serialize renders the track in the given format. Serializers are pure
// and never reorder cues, so serializing the same track twice yields
// byte-identical output.
func Serialize(track Track, format Format) (string, error) {
	switch format {
	case FormatSRT:
		return SerializeSRT(track), nil
	case FormatVTT:
		return SerializeVTT(track), nil
	case FormatText:
		return SerializeText(track), nil
	case FormatJSON:
		return SerializeJSON(track)
	}
	return "", fmt.Errorf("unsupported output format %q", format)
}

// ContentType returns the MIME type the HTTP layer should serve the
// format with.
func (f Format) ContentType() string {
	switch f {
	case FormatVTT:
		return "text/vtt; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
