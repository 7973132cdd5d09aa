package caption

import (
	"regexp"
	"strings"
	"time"
)

// inlineTagRe matches the inline markup auto-generated tracks carry:
// word-level timing tags like <00:00:01.500>, styling spans like
// <c.colorE5E5E5> and </c>, and plain HTML tags.
var inlineTagRe = regexp.MustCompile(`<[^>]*>`)

// vttMetadataRe matches header-section metadata lines (Kind:, Language:)
// and NOTE comment blocks.
var vttMetadataRe = regexp.MustCompile(`^(WEBVTT|NOTE|Kind:|Language:|STYLE|REGION)`)

// cueIdentifierRe matches the optional cue identifier line that precedes
// a timing line. YouTube emits bare numbers.
var cueIdentifierRe = regexp.MustCompile(`^\d{1,6}$`)

// ParseVTT parses the WebVTT markup format: header, then cues with a
// timing line followed by text that may contain inline timing and styling
// tags. Tags are stripped, entities unescaped, and the incremental-reveal
// duplicates characteristic of auto-generated tracks are collapsed so each
// time window keeps only its most complete text.
func ParseVTT(raw string) ([]Cue, error) {
	lines := normalizeLines(raw)

	if !containsTimingLine(lines) {
		return nil, &MalformedPayloadError{Reason: "no cue timing lines found"}
	}

	var cues []Cue
	var current *Cue

	flush := func() {
		if current == nil {
			return
		}
		current.Text = cleanCueText(current.Text)
		if current.Text != "" && current.End > current.Start {
			cues = append(cues, *current)
		}
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}
		if vttMetadataRe.MatchString(trimmed) && current == nil {
			continue
		}
		if start, end, ok := parseTimingLine(trimmed); ok {
			flush()
			current = &Cue{Start: start, End: end}
			continue
		}
		if current == nil {
			// Between cues: only identifiers are expected here, anything
			// else is stray metadata and equally skippable.
			continue
		}
		if cueIdentifierRe.MatchString(trimmed) {
			// An identifier for the next cue can butt up against the text
			// of this one when separators are missing.
			continue
		}
		if current.Text != "" {
			current.Text += "\n"
		}
		current.Text += line
	}
	flush()

	cues = collapseIncrementalCues(cues)

	if len(cues) == 0 {
		return nil, ErrEmptyTrack
	}
	return cues, nil
}

// adjacencySlack is how close two cue windows must be for the reveal
// collapse to treat them as one rolling caption.
const adjacencySlack = 100 * time.Millisecond

// collapseIncrementalCues removes the near-duplicate cues auto-generated
// tracks produce, where each cue repeats the previous text plus a few
// newly revealed words. For each run of overlapping or adjacent cues
// whose texts extend one another, only the most complete text survives,
// spanning the whole window.
func collapseIncrementalCues(cues []Cue) []Cue {
	if len(cues) < 2 {
		return cues
	}

	out := cues[:0]
	for _, cue := range cues {
		if len(out) == 0 {
			out = append(out, cue)
			continue
		}
		last := &out[len(out)-1]

		if cue.Start > last.End+adjacencySlack {
			out = append(out, cue)
			continue
		}

		prevText := normalizeSpace(last.Text)
		curText := normalizeSpace(cue.Text)
		switch {
		case curText == prevText, strings.Contains(prevText, curText):
			// Pure repeat, or the current cue is a fragment of text
			// already shown: extend the window and drop it.
			if cue.End > last.End {
				last.End = cue.End
			}
		case strings.HasPrefix(curText, prevText):
			// The current cue is the previous one plus revealed words:
			// keep the fuller text over the merged window.
			last.Text = cue.Text
			if cue.End > last.End {
				last.End = cue.End
			}
		default:
			out = append(out, cue)
		}
	}
	return out
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
