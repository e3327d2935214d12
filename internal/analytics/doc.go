// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package analytics publishes strategy execution events.

The engine reports every generation to an outfit.AnalyticsSink and must
never wait on it. Sink satisfies that with a bounded queue drained by one
goroutine:

	engine -> Sink.RecordStrategyExecution -> queue -> circuit breaker -> watermill publisher

Events are dropped, and counted in analytics_events_dropped_total,
when the queue is full, when the optional rate limit is exceeded, when the
publisher fails or its breaker is open, and after Stop.

NewNATSPublisher builds a watermill-nats JetStream publisher and makes sure
the backing stream exists. StartEmbeddedServer runs NATS in process for
single-node deployments:

	srv, err := analytics.StartEmbeddedServer(analytics.ServerConfig{Host: "127.0.0.1"})
	pub, err := analytics.NewNATSPublisher(ctx, analytics.PublisherConfig{
		URL:      srv.ClientURL(),
		Stream:   "STYLIST_ANALYTICS",
		Subjects: []string{"outfit.strategy.executed"},
	}, logger)
	sink := analytics.NewSink(pub, analytics.SinkConfig{Topic: "outfit.strategy.executed"}, logger)
	engine.SetAnalyticsSink(sink)

Any message.Publisher works; tests use watermill's gochannel.
*/
package analytics
