package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Up14/youtube-video-transcriptor/internal/caption"
	"github.com/Up14/youtube-video-transcriptor/internal/history"
	"github.com/Up14/youtube-video-transcriptor/internal/logging"
	"github.com/Up14/youtube-video-transcriptor/internal/quota"
	"github.com/Up14/youtube-video-transcriptor/internal/service"
)

// captionService is the surface the handlers need from the orchestrator.
type captionService interface {
	FetchAndConvert(ctx context.Context, rawURL, language string, formats []caption.Format) (*service.Result, error)
	AvailableLanguages(ctx context.Context, rawURL string) (caption.Catalog, error)
}

type API struct {
	service captionService
	history *history.Store
	quota   *quota.Store
	logger  *logging.Logger
}

type convertRequest struct {
	URL      string   `json:"url" binding:"required"`
	Language string   `json:"language"`
	Formats  []string `json:"formats"`
}

type convertResponse struct {
	VideoID  string            `json:"video_id"`
	Language string            `json:"language"`
	Origin   string            `json:"origin"`
	CueCount int               `json:"cue_count"`
	Outputs  map[string]string `json:"outputs"`
}

type languageEntry struct {
	Language  string `json:"language"`
	HasManual bool   `json:"has_manual"`
	HasAuto   bool   `json:"has_auto"`
}

// Health check endpoint
func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if api.quota != nil {
		if err := api.quota.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	if api.history != nil {
		if err := api.history.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// Convert captions endpoint
func (api *API) convertCaptions(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: url is required"})
		return
	}

	formats := make([]caption.Format, 0, len(req.Formats))
	for _, name := range req.Formats {
		format, err := caption.ParseFormat(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		formats = append(formats, format)
	}

	result, err := api.service.FetchAndConvert(c.Request.Context(), req.URL, req.Language, formats)
	if err != nil {
		api.recordHistory(c, req, nil, err)
		api.renderError(c, err)
		return
	}

	api.recordHistory(c, req, result, nil)

	outputs := make(map[string]string, len(result.Outputs))
	for format, out := range result.Outputs {
		outputs[string(format)] = out
	}

	c.JSON(http.StatusOK, convertResponse{
		VideoID:  result.VideoID,
		Language: result.Language,
		Origin:   string(result.Origin),
		CueCount: result.CueCount,
		Outputs:  outputs,
	})
}

// List available caption languages endpoint
func (api *API) listLanguages(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter url is required"})
		return
	}

	catalog, err := api.service.AvailableLanguages(c.Request.Context(), rawURL)
	if err != nil {
		api.renderError(c, err)
		return
	}

	entries := make([]languageEntry, 0, len(catalog))
	for _, entry := range catalog {
		entries = append(entries, languageEntry{
			Language:  entry.Language,
			HasManual: entry.HasManual,
			HasAuto:   entry.HasAuto,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"languages": entries,
	})
}

// Recent request history endpoint
func (api *API) recentHistory(c *gin.Context) {
	if api.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request history is not enabled"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := api.history.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
	})
}

// renderError maps the caption error taxonomy onto HTTP statuses. Errors
// outside the taxonomy stay opaque 500s.
func (api *API) renderError(c *gin.Context, err error) {
	kind, ok := caption.KindOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{
		"error": err.Error(),
		"kind":  string(kind),
	}
	if langs := caption.AvailableLanguages(err); langs != nil {
		body["available_languages"] = langs
	}

	c.JSON(statusFor(kind), body)
}

func statusFor(kind caption.Kind) int {
	switch kind {
	case caption.KindInvalidURL:
		return http.StatusBadRequest
	case caption.KindVideoUnavailable, caption.KindNoCaptions, caption.KindLanguageNotAvailable:
		return http.StatusNotFound
	case caption.KindEmptyTrack:
		return http.StatusUnprocessableEntity
	case caption.KindMalformedPayload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// recordHistory writes an audit entry when history is enabled. Failures
// are logged and swallowed; auditing never breaks a request.
func (api *API) recordHistory(c *gin.Context, req convertRequest, result *service.Result, reqErr error) {
	if api.history == nil {
		return
	}

	entry := &history.Entry{
		Language: req.Language,
		Formats:  req.Formats,
		Outcome:  "ok",
	}
	if result != nil {
		entry.VideoID = result.VideoID
		entry.Language = result.Language
		entry.Origin = string(result.Origin)
		entry.CueCount = result.CueCount
	}
	if reqErr != nil {
		if kind, ok := caption.KindOf(reqErr); ok {
			entry.Outcome = string(kind)
		} else {
			entry.Outcome = "error"
		}
	}

	if err := api.history.Record(c.Request.Context(), entry); err != nil {
		api.logger.WithError(err).Warn("Failed to record request history")
	}
}
