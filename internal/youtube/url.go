package youtube

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrBadURL means the input does not look like a YouTube video URL.
var ErrBadURL = errors.New("youtube: not a recognizable video URL")

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-character video ID out of the URL forms
// YouTube serves: watch?v=, youtu.be/, shorts/, embed/ and live/.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrBadURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrBadURL
	}
	if u.Scheme == "" {
		// A bare "youtube.com/watch?v=..." is common paste input.
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return "", ErrBadURL
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrBadURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = firstPathSegment(u.Path)
	case "youtube.com", "youtube-nocookie.com", "music.youtube.com":
		switch firstPathSegment(u.Path) {
		case "watch":
			id = u.Query().Get("v")
		case "shorts", "embed", "live", "v":
			id = secondPathSegment(u.Path)
		}
	default:
		return "", ErrBadURL
	}

	if !videoIDRe.MatchString(id) {
		return "", ErrBadURL
	}
	return id, nil
}

func firstPathSegment(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	return parts[0]
}

func secondPathSegment(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
