package caption

import (
	"strconv"
	"strings"
)

// SerializeSRT renders the track as SubRip text: 1-based numbered blocks
// with comma millisecond separators, blank-line separated.
func SerializeSRT(track Track) string {
	var b strings.Builder
	for i, cue := range track.Cues {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(formatTimestamp(cue.Start, ','))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(cue.End, ','))
		b.WriteByte('\n')
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// SerializeVTT renders the track as WebVTT: header line, then unnumbered
// blocks with period millisecond separators.
func SerializeVTT(track Track) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, cue := range track.Cues {
		b.WriteString(formatTimestamp(cue.Start, '.'))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(cue.End, '.'))
		b.WriteByte('\n')
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// SerializeText renders cue texts joined by newline, timestamps omitted.
func SerializeText(track Track) string {
	texts := make([]string, len(track.Cues))
	for i, cue := range track.Cues {
		texts[i] = cue.Text
	}
	return strings.Join(texts, "\n")
}
