package caption

import (
	"html"
	"strings"
	"time"
)

// ParseSRT parses the blank-line-separated block format: an optional
// numeric index line, a timing line, then one or more text lines per
// block. Malformed blocks are skipped rather than failing the whole
// payload; a payload where nothing survives is ErrEmptyTrack, and a
// payload with no timing lines at all is reported as malformed.
func ParseSRT(raw string) ([]Cue, error) {
	lines := normalizeLines(raw)

	if !containsTimingLine(lines) {
		return nil, &MalformedPayloadError{Reason: "no cue timing lines found"}
	}

	var cues []Cue
	for _, block := range splitBlocks(lines) {
		cue, ok := parseSRTBlock(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}

	if len(cues) == 0 {
		return nil, ErrEmptyTrack
	}
	return cues, nil
}

// splitBlocks groups lines into blank-line-separated blocks.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func parseSRTBlock(block []string) (Cue, bool) {
	// The timing line is usually second (after the index), but indexless
	// blocks appear in the wild.
	timingIdx := -1
	var start, end time.Duration
	for i, line := range block {
		if s, e, ok := parseTimingLine(line); ok {
			timingIdx = i
			start, end = s, e
			break
		}
		// Only an index line may precede the timing line.
		if !leadingIndexRe.MatchString(strings.TrimSpace(line)) {
			return Cue{}, false
		}
	}
	if timingIdx < 0 || timingIdx == len(block)-1 {
		// No timing line, or a block with no text under it.
		return Cue{}, false
	}
	if end <= start {
		return Cue{}, false
	}

	text := cleanCueText(strings.Join(block[timingIdx+1:], "\n"))
	if text == "" {
		return Cue{}, false
	}

	return Cue{Start: start, End: end, Text: text}, true
}

func containsTimingLine(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, "-->") {
			return true
		}
	}
	return false
}

// cleanCueText unescapes HTML entities and strips inline markup tags,
// which both SRT and VTT payloads from the platform carry.
func cleanCueText(text string) string {
	text = html.UnescapeString(text)
	text = inlineTagRe.ReplaceAllString(text, "")
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
