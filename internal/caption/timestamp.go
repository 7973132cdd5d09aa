package caption

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// timingLineRe matches a cue timing line in either SRT or WebVTT flavor:
// "00:00:01,000 --> 00:00:02.500", with optional cue settings after the
// second timestamp and an optional hours field on either side.
var timingLineRe = regexp.MustCompile(
	`^((?:\d{1,2}:)?\d{2}:\d{2}[.,]\d{1,3})\s*-->\s*((?:\d{1,2}:)?\d{2}:\d{2}[.,]\d{1,3})`)

var timestampRe = regexp.MustCompile(`^(?:(\d{1,2}):)?(\d{2}):(\d{2})[.,](\d{1,3})$`)

// parseTimestamp converts "HH:MM:SS.mmm" (or comma-separated, or without
// hours) into a duration from video start.
func parseTimestamp(s string) (time.Duration, error) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	hours := 0
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	// "5" means 500ms, "50" means 500ms, "005" means 5ms.
	frac := m[4]
	for len(frac) < 3 {
		frac += "0"
	}
	millis, _ := strconv.Atoi(frac)

	if minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// parseTimingLine extracts the start and end of a cue timing line,
// tolerating trailing cue settings (position, alignment).
func parseTimingLine(line string) (start, end time.Duration, ok bool) {
	m := timingLineRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	start, err := parseTimestamp(m[1])
	if err != nil {
		return 0, 0, false
	}
	end, err = parseTimestamp(m[2])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// formatTimestamp renders a duration as zero-padded "HH:MM:SS?mmm" with
// the given millisecond separator (',' for SRT, '.' for WebVTT).
func formatTimestamp(d time.Duration, sep byte) string {
	if d < 0 {
		d = 0
	}
	millis := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d%c%03d",
		millis/3600000,
		millis/60000%60,
		millis/1000%60,
		sep,
		millis%1000)
}
