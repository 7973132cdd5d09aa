// Package service orchestrates one caption request end to end: URL
// validation, track resolution, payload fetch, parsing, and output
// serialization. Everything is request-scoped and synchronous; the only
// blocking points are the two upstream fetch calls.
package service

import (
	"context"
	"time"

	"github.com/Up14/youtube-video-transcriptor/internal/caption"
	"github.com/Up14/youtube-video-transcriptor/internal/logging"
	"github.com/Up14/youtube-video-transcriptor/internal/metrics"
	"github.com/Up14/youtube-video-transcriptor/internal/tracing"
	"github.com/Up14/youtube-video-transcriptor/internal/youtube"
)

// Fetcher is the boundary to the extraction layer that talks to the
// video platform. Implementations own their transport, timeouts, and
// retries; the orchestrator sees a single pass/fail outcome per call.
type Fetcher interface {
	TrackCatalog(ctx context.Context, url string) (caption.Catalog, error)
	RawTrack(ctx context.Context, url string, sel caption.Selection) (string, error)
}

// Service composes the resolver, parsers, and serializers around a
// Fetcher.
type Service struct {
	fetcher Fetcher
	logger  *logging.Logger
}

// Result holds converted output for every requested format, plus the
// resolution context the shell displays alongside it.
type Result struct {
	VideoID  string
	Language string
	Origin   caption.Origin
	CueCount int
	Outputs  map[caption.Format]string
}

// New creates a caption service backed by the given fetcher.
func New(fetcher Fetcher, logger *logging.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// FetchAndConvert runs one full request. Any failure short-circuits;
// partial results are never returned. With no formats requested, every
// supported format is produced.
func (s *Service) FetchAndConvert(ctx context.Context, rawURL, language string, formats []caption.Format) (*Result, error) {
	span, ctx := tracing.StartSpan(ctx, "captions.fetch_and_convert")
	defer tracing.FinishSpan(span)

	started := time.Now()

	result, err := s.fetchAndConvert(ctx, rawURL, language, formats)
	if err != nil {
		tracing.LogError(span, err)
		metrics.RecordCaptionRequest(outcomeOf(err))
		s.logger.WithError(err).WithLanguage(language).Warn("Caption request failed")
		return nil, err
	}

	tracing.TagVideo(span, result.VideoID)
	tracing.TagSelection(span, result.Language, string(result.Origin), result.CueCount)

	metrics.RecordCaptionRequest("ok")
	s.logger.LogConversion(result.VideoID, result.Language, string(result.Origin),
		result.CueCount, formatNames(result.Outputs), time.Since(started))
	return result, nil
}

func (s *Service) fetchAndConvert(ctx context.Context, rawURL, language string, formats []caption.Format) (*Result, error) {
	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, caption.ErrInvalidURL
	}

	if len(formats) == 0 {
		formats = caption.AllFormats()
	}

	catalog, err := s.trackCatalog(ctx, rawURL, videoID)
	if err != nil {
		return nil, err
	}

	selection, err := caption.Resolve(catalog, language)
	if err != nil {
		return nil, err
	}
	metrics.RecordTrackSelection(string(selection.Origin))

	raw, err := s.rawTrack(ctx, rawURL, videoID, selection)
	if err != nil {
		return nil, err
	}

	cues, err := caption.Parse(raw)
	if err != nil {
		return nil, err
	}
	metrics.RecordParsedTrack(len(cues))

	track := caption.Track{
		Language: selection.Language,
		Origin:   selection.Origin,
		Cues:     cues,
	}

	outputs := make(map[caption.Format]string, len(formats))
	for _, format := range formats {
		if _, done := outputs[format]; done {
			continue
		}
		out, err := caption.Serialize(track, format)
		if err != nil {
			return nil, err
		}
		outputs[format] = out
		metrics.RecordConversion(string(format))
	}

	return &Result{
		VideoID:  videoID,
		Language: selection.Language,
		Origin:   selection.Origin,
		CueCount: len(cues),
		Outputs:  outputs,
	}, nil
}

// AvailableLanguages fetches the track catalog without downloading any
// payload, for language pickers and the CLI listing.
func (s *Service) AvailableLanguages(ctx context.Context, rawURL string) (caption.Catalog, error) {
	span, ctx := tracing.StartSpan(ctx, "captions.available_languages")
	defer tracing.FinishSpan(span)

	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, caption.ErrInvalidURL
	}
	tracing.TagVideo(span, videoID)

	catalog, err := s.trackCatalog(ctx, rawURL, videoID)
	if err != nil {
		tracing.LogError(span, err)
		return nil, err
	}
	return catalog, nil
}

func (s *Service) trackCatalog(ctx context.Context, rawURL, videoID string) (caption.Catalog, error) {
	started := time.Now()
	catalog, err := s.fetcher.TrackCatalog(ctx, rawURL)
	metrics.RecordFetch("track_catalog", time.Since(started).Seconds(), err)
	s.logger.LogFetchOperation("track_catalog", videoID, time.Since(started), err)
	if err != nil {
		return nil, translateFetchError(err)
	}
	return catalog, nil
}

func (s *Service) rawTrack(ctx context.Context, rawURL, videoID string, sel caption.Selection) (string, error) {
	started := time.Now()
	raw, err := s.fetcher.RawTrack(ctx, rawURL, sel)
	metrics.RecordFetch("raw_track", time.Since(started).Seconds(), err)
	s.logger.LogFetchOperation("raw_track", videoID, time.Since(started), err)
	if err != nil {
		return "", translateFetchError(err)
	}
	return raw, nil
}

func formatNames(outputs map[caption.Format]string) []string {
	names := make([]string, 0, len(outputs))
	for format := range outputs {
		names = append(names, string(format))
	}
	return names
}
