package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Up14/youtube-video-transcriptor/internal/caption"
	"github.com/Up14/youtube-video-transcriptor/internal/config"
)

const testWatchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// newTestClient wires a client against an httptest server that serves
// both the player response and the caption payloads it links to. The
// player document is built after the server starts so its track URLs can
// point back at the server.
func newTestClient(t *testing.T, buildPlayer func(serverURL string) map[string]any, payload string) *Client {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			VideoID string `json:"videoId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VideoID == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(buildPlayer(server.URL))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fmt") != "vtt" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, payload)
	})

	client := NewClient(config.YouTubeConfig{
		ClientName:     "WEB",
		ClientVersion:  "2.20240101.00.00",
		RequestTimeout: 5 * time.Second,
	})
	client.baseURL = server.URL
	return client
}

func playerWithTracks(serverURL string) map[string]any {
	track := func(lang, kind string) map[string]any {
		return map[string]any{
			"baseUrl":      serverURL + "/api/timedtext?v=dQw4w9WgXcQ&lang=" + lang,
			"languageCode": lang,
			"kind":         kind,
		}
	}
	return map[string]any{
		"playabilityStatus": map[string]any{"status": "OK"},
		"captions": map[string]any{
			"playerCaptionsTracklistRenderer": map[string]any{
				"captionTracks": []any{
					track("en", ""),
					track("en", "asr"),
					track("hi", "asr"),
				},
			},
		},
	}
}

func TestTrackCatalog(t *testing.T) {
	client := newTestClient(t, playerWithTracks, "")

	catalog, err := client.TrackCatalog(context.Background(), testWatchURL)
	require.NoError(t, err)

	// Order follows the upstream track listing; origins are merged per
	// language.
	require.Len(t, catalog, 2)
	assert.Equal(t, caption.CatalogEntry{Language: "en", HasManual: true, HasAuto: true}, catalog[0])
	assert.Equal(t, caption.CatalogEntry{Language: "hi", HasAuto: true}, catalog[1])
}

func TestTrackCatalogUnavailableVideo(t *testing.T) {
	client := newTestClient(t, func(string) map[string]any {
		return map[string]any{
			"playabilityStatus": map[string]any{
				"status": "LOGIN_REQUIRED",
				"reason": "This video is private",
			},
		}
	}, "")

	_, err := client.TrackCatalog(context.Background(), testWatchURL)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTrackCatalogBadURL(t *testing.T) {
	client := newTestClient(t, playerWithTracks, "")

	_, err := client.TrackCatalog(context.Background(), "https://example.com/nope")
	assert.ErrorIs(t, err, ErrBadURL)
}

func TestRawTrack(t *testing.T) {
	payload := "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nhi\n"
	client := newTestClient(t, playerWithTracks, payload)

	got, err := client.RawTrack(context.Background(), testWatchURL,
		caption.Selection{Language: "en", Origin: caption.OriginManual})
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestRawTrackGone(t *testing.T) {
	client := newTestClient(t, playerWithTracks, "")

	_, err := client.RawTrack(context.Background(), testWatchURL,
		caption.Selection{Language: "ja", Origin: caption.OriginManual})
	assert.ErrorIs(t, err, ErrTrackGone)
}
