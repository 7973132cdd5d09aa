package caption

import (
	"regexp"
	"strings"
)

// PayloadFormat names the two textual formats the upstream platform serves
// caption tracks in.
type PayloadFormat string

const (
	PayloadSRT PayloadFormat = "srt"
	PayloadVTT PayloadFormat = "vtt"
)

var leadingIndexRe = regexp.MustCompile(`^\d+\s*$`)

// DetectFormat guesses the payload format from its shape. A WEBVTT header
// wins outright; a bare numeric first line indicates SRT; anything else
// defaults to VTT, which is what YouTube serves most of the time.
func DetectFormat(raw string) PayloadFormat {
	trimmed := strings.TrimSpace(stripBOM(raw))
	if strings.HasPrefix(trimmed, "WEBVTT") {
		return PayloadVTT
	}
	firstLine, _, _ := strings.Cut(trimmed, "\n")
	if leadingIndexRe.MatchString(strings.TrimSpace(firstLine)) {
		return PayloadSRT
	}
	return PayloadVTT
}

// Parse converts a raw caption payload into cues, detecting the format
// first. Language and origin are attached by the caller from resolution
// context.
func Parse(raw string) ([]Cue, error) {
	if DetectFormat(raw) == PayloadSRT {
		return ParseSRT(raw)
	}
	return ParseVTT(raw)
}

// normalizeLines splits a raw payload into lines, absorbing the common
// upstream artifacts: UTF-8 BOM, CRLF line endings, and trailing
// whitespace on each line.
func normalizeLines(raw string) []string {
	raw = stripBOM(raw)
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return lines
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
