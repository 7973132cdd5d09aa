package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Up14/youtube-video-transcriptor/internal/caption"
	"github.com/Up14/youtube-video-transcriptor/internal/config"
)

var (
	// ErrUnavailable means the video is private, removed, or restricted.
	ErrUnavailable = errors.New("youtube: video unavailable")
	// ErrTrackGone means a previously-catalogued track disappeared between
	// the catalog fetch and the payload fetch.
	ErrTrackGone = errors.New("youtube: caption track no longer available")
)

const defaultBaseURL = "https://www.youtube.com"

// Client talks to the Innertube player endpoint to discover caption
// tracks and download their payloads. It is the concrete implementation
// of the service's Fetcher boundary.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	clientName    string
	clientVersion string
	apiKey        string
}

// NewClient builds a client from configuration.
func NewClient(cfg config.YouTubeConfig) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:       defaultBaseURL,
		clientName:    cfg.ClientName,
		clientVersion: cfg.ClientVersion,
		apiKey:        cfg.InnertubeKey,
	}
}

// playerResponse is the subset of the Innertube player payload we read.
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

func (t captionTrack) origin() caption.Origin {
	if t.Kind == "asr" {
		return caption.OriginAuto
	}
	return caption.OriginManual
}

// TrackCatalog lists caption availability per language, in the order the
// platform reported the tracks. That order is passed through untouched
// so auto-detect resolution can use it as a relevance ranking.
func (c *Client) TrackCatalog(ctx context.Context, videoURL string) (caption.Catalog, error) {
	tracks, err := c.fetchTracks(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	var catalog caption.Catalog
	index := make(map[string]int)
	for _, track := range tracks {
		i, seen := index[track.LanguageCode]
		if !seen {
			catalog = append(catalog, caption.CatalogEntry{Language: track.LanguageCode})
			i = len(catalog) - 1
			index[track.LanguageCode] = i
		}
		if track.origin() == caption.OriginManual {
			catalog[i].HasManual = true
		} else {
			catalog[i].HasAuto = true
		}
	}
	return catalog, nil
}

// RawTrack downloads the caption payload for a resolved selection. The
// player metadata is requested again rather than carried over, so a track
// withdrawn mid-request surfaces as ErrTrackGone.
func (c *Client) RawTrack(ctx context.Context, videoURL string, sel caption.Selection) (string, error) {
	tracks, err := c.fetchTracks(ctx, videoURL)
	if err != nil {
		return "", err
	}

	var chosen *captionTrack
	for i := range tracks {
		if tracks[i].LanguageCode == sel.Language && tracks[i].origin() == sel.Origin {
			chosen = &tracks[i]
			break
		}
	}
	if chosen == nil || chosen.BaseURL == "" {
		return "", ErrTrackGone
	}

	payloadURL, err := withFormat(chosen.BaseURL, "vtt")
	if err != nil {
		return "", fmt.Errorf("youtube: bad track url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, payloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("youtube: build track request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("youtube: fetch track: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube: fetch track: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("youtube: read track body: %w", err)
	}
	return string(body), nil
}

func (c *Client) fetchTracks(ctx context.Context, videoURL string) ([]captionTrack, error) {
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	player, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}

	switch player.PlayabilityStatus.Status {
	case "", "OK":
	case "LOGIN_REQUIRED", "UNPLAYABLE", "ERROR", "CONTENT_CHECK_REQUIRED", "AGE_CHECK_REQUIRED":
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, player.PlayabilityStatus.Reason)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, player.PlayabilityStatus.Status)
	}

	return player.Captions.Renderer.CaptionTracks, nil
}

func (c *Client) player(ctx context.Context, videoID string) (*playerResponse, error) {
	reqBody := map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    c.clientName,
				"clientVersion": c.clientVersion,
			},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("youtube: marshal player request: %w", err)
	}

	endpoint := c.baseURL + "/youtubei/v1/player"
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("youtube: build player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: player request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube: player request: unexpected status %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("youtube: decode player response: %w", err)
	}
	return &player, nil
}

// withFormat rewrites a track baseUrl to request the given payload format.
func withFormat(base, format string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("fmt", format)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
