// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analytics

import (
	"context"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"
)

func startTestServer(t *testing.T) *EmbeddedServer {
	t.Helper()

	srv, err := StartEmbeddedServer(ServerConfig{
		Host:         "127.0.0.1",
		StoreDir:     t.TempDir(),
		ReadyTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("StartEmbeddedServer() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx) //nolint:errcheck // test cleanup
	})
	return srv
}

func TestEmbeddedServer_Lifecycle(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)
	if !srv.IsRunning() {
		t.Fatal("IsRunning() = false after start")
	}
	if srv.ClientURL() == "" {
		t.Fatal("ClientURL() is empty")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after Shutdown")
	}
}

func TestNATSPublisher_SinkToStream(t *testing.T) {
	t.Parallel()

	srv := startTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	cfg := PublisherConfig{
		URL:           srv.ClientURL(),
		Stream:        "STYLIST_TEST",
		Subjects:      []string{testTopic},
		MaxAge:        time.Hour,
		MaxReconnects: 1,
	}
	pub, err := NewNATSPublisher(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewNATSPublisher() error = %v", err)
	}
	// A second call updates the existing stream.
	if err := ensureStream(ctx, cfg); err != nil {
		t.Fatalf("ensureStream() on existing stream error = %v", err)
	}

	sink := NewSink(pub, SinkConfig{Topic: testTopic, BufferSize: 4}, zerolog.Nop())
	if err := sink.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	sink.RecordStrategyExecution(event("nats-1"))
	sink.RecordStrategyExecution(event("nats-1"))
	sink.Stop()
	if err := pub.Close(); err != nil {
		t.Errorf("publisher Close() error = %v", err)
	}

	if st := sink.Stats(); st.Published != 2 {
		t.Fatalf("Stats() = %+v, want 2 published", st)
	}

	nc, err := natsgo.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer nc.Close()
	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("jetstream.New() error = %v", err)
	}
	stream, err := js.Stream(ctx, "STYLIST_TEST")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	info, err := stream.Info(ctx)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	// Same outfit id: the second publish is deduplicated.
	if info.State.Msgs != 1 {
		t.Errorf("stream holds %d messages, want 1", info.State.Msgs)
	}
}
