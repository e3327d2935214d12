// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/stylist/internal/outfit"
)

const testTopic = "outfit.strategy.executed"

func newPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64, Persistent: true}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() }) //nolint:errcheck // test cleanup
	return ps
}

func event(id string) outfit.StrategyExecution {
	return outfit.StrategyExecution{
		OutfitID:  id,
		UserID:    "u1",
		Strategy:  outfit.StrategyTraditional,
		ItemCount: 3,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func receive(t *testing.T, msgs <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-msgs:
		msg.Ack()
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for analytics message")
		return nil
	}
}

func TestSink_PublishesEvents(t *testing.T) {
	t.Parallel()

	ps := newPubSub(t)
	msgs, err := ps.Subscribe(context.Background(), testTopic)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	s := NewSink(ps, SinkConfig{Topic: testTopic, BufferSize: 8}, zerolog.Nop())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(s.Stop)

	ev := event("outfit-1")
	ev.Emergency = true
	s.RecordStrategyExecution(ev)

	msg := receive(t, msgs)
	if msg.UUID != "outfit-1" {
		t.Errorf("UUID = %s, want outfit-1", msg.UUID)
	}
	if got := msg.Metadata.Get(natsgo.MsgIdHdr); got != "outfit-1" {
		t.Errorf("msg id header = %q", got)
	}
	if msg.Metadata.Get("strategy") != "traditional" || msg.Metadata.Get("emergency") != "true" {
		t.Errorf("metadata = %v", msg.Metadata)
	}

	var got outfit.StrategyExecution
	if err := json.Unmarshal(msg.Payload, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.OutfitID != "outfit-1" || got.ItemCount != 3 || !got.Emergency {
		t.Errorf("decoded event = %+v", got)
	}
}

func TestSink_BuffersBeforeStartAndDropsOverflow(t *testing.T) {
	t.Parallel()

	ps := newPubSub(t)
	msgs, err := ps.Subscribe(context.Background(), testTopic)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	s := NewSink(ps, SinkConfig{Topic: testTopic, BufferSize: 2}, zerolog.Nop())
	for i := 0; i < 3; i++ {
		s.RecordStrategyExecution(event(fmt.Sprintf("o%d", i)))
	}
	if st := s.Stats(); st.Dropped != 1 || st.Queued != 2 {
		t.Fatalf("Stats() = %+v, want 1 dropped and 2 queued", st)
	}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(s.Stop)

	first := receive(t, msgs)
	second := receive(t, msgs)
	if first.UUID != "o0" || second.UUID != "o1" {
		t.Errorf("published %s, %s; want o0, o1", first.UUID, second.UUID)
	}
}

func TestSink_RateLimited(t *testing.T) {
	t.Parallel()

	s := NewSink(newPubSub(t), SinkConfig{Topic: testTopic, BufferSize: 10, RatePerSecond: 0.001, Burst: 1}, zerolog.Nop())
	s.RecordStrategyExecution(event("a"))
	s.RecordStrategyExecution(event("b"))
	s.RecordStrategyExecution(event("c"))

	if st := s.Stats(); st.Queued != 1 || st.Dropped != 2 {
		t.Errorf("Stats() = %+v, want 1 queued and 2 dropped", st)
	}
	s.Stop()
}

// failingPublisher always fails and counts calls.
type failingPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *failingPublisher) Publish(string, ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return errors.New("broker unavailable")
}

func (p *failingPublisher) Close() error { return nil }

func (p *failingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestSink_PublishFailuresOpenBreaker(t *testing.T) {
	t.Parallel()

	pub := &failingPublisher{}
	s := NewSink(pub, SinkConfig{
		Topic:              testTopic,
		BufferSize:         10,
		BreakerName:        "test-analytics",
		BreakerMaxFailures: 2,
		BreakerTimeout:     time.Hour,
	}, zerolog.Nop())

	for i := 0; i < 5; i++ {
		s.RecordStrategyExecution(event(fmt.Sprintf("o%d", i)))
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Stop drains the queue before returning.
	s.Stop()

	st := s.Stats()
	if st.Published != 0 || st.Dropped != 5 {
		t.Errorf("Stats() = %+v, want 0 published and 5 dropped", st)
	}
	if pub.count() != 2 {
		t.Errorf("publisher calls = %d, want 2 (breaker open after two failures)", pub.count())
	}
	if s.BreakerState() != gobreaker.StateOpen.String() {
		t.Errorf("BreakerState() = %s, want open", s.BreakerState())
	}
}

func TestSink_Lifecycle(t *testing.T) {
	t.Parallel()

	s := NewSink(newPubSub(t), SinkConfig{Topic: testTopic}, zerolog.Nop())
	if s.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Errorf("second Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}

	s.Stop()
	s.Stop()
	if s.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
	if err := s.Start(context.Background()); !errors.Is(err, ErrSinkStopped) {
		t.Errorf("Start() after Stop error = %v, want ErrSinkStopped", err)
	}

	s.RecordStrategyExecution(event("late"))
	if st := s.Stats(); st.Dropped != 1 {
		t.Errorf("late event: Stats() = %+v, want 1 dropped", st)
	}
}

func TestSink_ConcurrentRecordAndStop(t *testing.T) {
	t.Parallel()

	s := NewSink(newPubSub(t), SinkConfig{Topic: testTopic, BufferSize: 16}, zerolog.Nop())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.RecordStrategyExecution(event(fmt.Sprintf("w%d-%d", w, i)))
			}
		}(w)
	}
	s.Stop()
	wg.Wait()

	st := s.Stats()
	if st.Published+st.Dropped != 200 {
		t.Errorf("published %d + dropped %d != 200", st.Published, st.Dropped)
	}
}
