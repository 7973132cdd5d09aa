package main

import (
	"context"
	"fmt"

	"github.com/Up14/youtube-video-transcriptor/internal/caption"
	"github.com/Up14/youtube-video-transcriptor/internal/config"
	"github.com/Up14/youtube-video-transcriptor/internal/logging"
	"github.com/Up14/youtube-video-transcriptor/internal/service"
	"github.com/Up14/youtube-video-transcriptor/internal/youtube"
)

// captionClient is the slice of the caption service the commands use.
type captionClient interface {
	FetchAndConvert(ctx context.Context, rawURL, language string, formats []caption.Format) (*service.Result, error)
	AvailableLanguages(ctx context.Context, rawURL string) (caption.Catalog, error)
}

// commandContext wires commands to the caption service. Tests swap
// newClient for a fake.
type commandContext struct {
	newClient func() (captionClient, error)
}

func newCommandContext() *commandContext {
	return &commandContext{
		newClient: func() (captionClient, error) {
			cfg := config.Default()

			logger, err := logging.NewConsoleLogger()
			if err != nil {
				return nil, fmt.Errorf("initialize logger: %w", err)
			}

			fetcher := youtube.NewClient(cfg.YouTube)
			return service.New(fetcher, logger), nil
		},
	}
}

func (c *commandContext) withClient(fn func(client captionClient) error) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}
	return fn(client)
}
