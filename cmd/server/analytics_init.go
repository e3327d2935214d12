// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/stylist/internal/analytics"
	"github.com/tomtom215/stylist/internal/config"
	"github.com/tomtom215/stylist/internal/logging"
)

// AnalyticsComponents holds the strategy analytics pipeline.
type AnalyticsComponents struct {
	server    *analytics.EmbeddedServer
	publisher message.Publisher
	sink      *analytics.Sink
}

// InitAnalytics builds the analytics sink when enabled. It returns nil, nil
// when analytics are disabled; the engine then keeps its no-op sink.
func InitAnalytics(ctx context.Context, cfg *config.AnalyticsConfig) (*AnalyticsComponents, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Strategy analytics disabled (ANALYTICS_ENABLED=false)")
		return nil, nil
	}

	components := &AnalyticsComponents{}
	url := cfg.URL

	if cfg.EmbeddedServer {
		srv, err := analytics.StartEmbeddedServer(analytics.ServerConfig{
			Host:     cfg.ServerHost,
			Port:     cfg.ServerPort,
			StoreDir: cfg.StoreDir,
		})
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		components.server = srv
		url = srv.ClientURL()
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", url).Msg("Using external NATS server")
	}

	publisher, err := analytics.NewNATSPublisher(ctx, analytics.PublisherConfig{
		URL:           url,
		Stream:        cfg.Stream,
		Subjects:      []string{cfg.Topic},
		MaxAge:        cfg.StreamMaxAge,
		MaxReconnects: cfg.MaxReconnects,
		ReconnectWait: cfg.ReconnectWait,
	}, logging.Logger())
	if err != nil {
		components.Shutdown(ctx)
		return nil, fmt.Errorf("create analytics publisher: %w", err)
	}
	components.publisher = publisher

	components.sink = analytics.NewSink(publisher, analytics.SinkConfig{
		Topic:         cfg.Topic,
		BufferSize:    cfg.BufferSize,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.Burst,
	}, logging.Logger())

	logging.Info().
		Str("topic", cfg.Topic).
		Str("stream", cfg.Stream).
		Msg("Strategy analytics initialized")
	return components, nil
}

// Sink returns the analytics sink, or nil when analytics are disabled.
func (c *AnalyticsComponents) Sink() *analytics.Sink {
	if c == nil {
		return nil
	}
	return c.sink
}

// Check reports an open publish circuit as unhealthy.
func (c *AnalyticsComponents) Check(_ context.Context) error {
	if c == nil || c.sink == nil {
		return nil
	}
	if state := c.sink.BreakerState(); state == "open" {
		return errors.New("analytics publisher circuit open")
	}
	return nil
}

// Shutdown closes the publisher and the embedded server. The sink itself is
// stopped by its supervisor service.
func (c *AnalyticsComponents) Shutdown(ctx context.Context) {
	if c == nil {
		return
	}
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing analytics publisher")
		}
	}
	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down embedded NATS server")
		}
	}
}
