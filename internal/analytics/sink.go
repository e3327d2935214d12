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
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/outfit"
)

var _ outfit.AnalyticsSink = (*Sink)(nil)

// ErrSinkStopped is returned by Start after Stop.
var ErrSinkStopped = errors.New("analytics sink stopped")

var errEncode = errors.New("encode strategy execution")

// Drop reasons, used as metric labels.
const (
	DropBufferFull   = "buffer_full"
	DropRateLimited  = "rate_limited"
	DropPublishError = "publish_error"
	DropClosed       = "closed"
	DropEncodeError  = "encode_error"
)

// SinkConfig configures NewSink.
type SinkConfig struct {
	Topic      string
	BufferSize int

	// RatePerSecond caps accepted events; 0 disables throttling.
	RatePerSecond float64
	Burst         int

	BreakerName        string
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// SinkStats counts what the sink did with the events it received.
type SinkStats struct {
	Published int64
	Dropped   int64
	Queued    int
}

// Sink queues strategy execution events and publishes them in the
// background. RecordStrategyExecution never blocks: events that do not fit
// the buffer, exceed the rate or arrive after Stop are dropped and counted.
type Sink struct {
	publisher message.Publisher
	topic     string
	queue     chan outfit.StrategyExecution
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[interface{}]
	breakerID string
	logger    zerolog.Logger

	mu      sync.RWMutex
	running bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	published atomic.Int64
	dropped   atomic.Int64
}

// NewSink creates a sink publishing to publisher. Call Start to begin
// publishing; events recorded before Start wait in the buffer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSink(publisher message.Publisher, cfg SinkConfig, logger zerolog.Logger) *Sink {
	if cfg.BufferSize < 1 {
		cfg.BufferSize = 1024
	}
	if cfg.BreakerName == "" {
		cfg.BreakerName = "analytics-publisher"
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	s := &Sink{
		publisher: publisher,
		topic:     cfg.Topic,
		queue:     make(chan outfit.StrategyExecution, cfg.BufferSize),
		breakerID: cfg.BreakerName,
		logger:    logger.With().Str("component", "analytics").Logger(),
	}
	if cfg.RatePerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst)
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.BreakerName).Set(0)
	s.breaker = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cfg.BreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Analytics circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from, to)
		},
	})
	return s
}

// RecordStrategyExecution implements outfit.AnalyticsSink.
//
//nolint:gocritic // hugeParam: the event is queued by value
func (s *Sink) RecordStrategyExecution(event outfit.StrategyExecution) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		s.drop(DropClosed)
		return
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.drop(DropRateLimited)
		return
	}

	select {
	case s.queue <- event:
		metrics.AnalyticsQueueDepth.Set(float64(len(s.queue)))
	default:
		s.drop(DropBufferFull)
	}
}

func (s *Sink) drop(reason string) {
	s.dropped.Add(1)
	metrics.RecordAnalyticsDrop(reason)
}

// Start begins publishing queued events.
func (s *Sink) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSinkStopped
	}
	if s.running {
		return nil
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go s.run()

	s.logger.Info().Str("topic", s.topic).Int("buffer", cap(s.queue)).Msg("Analytics sink started")
	return nil
}

// Stop publishes what is already queued, then stops. Events recorded after
// Stop are dropped. A stopped sink cannot be restarted.
func (s *Sink) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	wasRunning := s.running
	s.running = false
	close(s.queue)
	s.mu.Unlock()

	if wasRunning {
		s.wg.Wait()
		s.cancel()
	}
	s.logger.Info().
		Int64("published", s.published.Load()).
		Int64("dropped", s.dropped.Load()).
		Msg("Analytics sink stopped")
}

// IsRunning reports whether the publish loop is active.
func (s *Sink) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Stats returns event counters.
func (s *Sink) Stats() SinkStats {
	return SinkStats{
		Published: s.published.Load(),
		Dropped:   s.dropped.Load(),
		Queued:    len(s.queue),
	}
}

// BreakerState returns the publish breaker state name.
func (s *Sink) BreakerState() string {
	return s.breaker.State().String()
}

func (s *Sink) run() {
	defer s.wg.Done()

	for event := range s.queue {
		metrics.AnalyticsQueueDepth.Set(float64(len(s.queue)))
		if err := s.publish(event); err != nil {
			if errors.Is(err, errEncode) {
				s.drop(DropEncodeError)
			} else {
				s.drop(DropPublishError)
			}
			s.logger.Debug().Err(err).Str("outfit_id", event.OutfitID).Msg("Analytics event not published")
			continue
		}
		s.published.Add(1)
		metrics.AnalyticsEventsPublished.Inc()
	}
}

//nolint:gocritic // hugeParam: see RecordStrategyExecution
func (s *Sink) publish(event outfit.StrategyExecution) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	msg.SetContext(s.ctx)

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.publisher.Publish(s.topic, msg)
	})
	metrics.RecordBreakerResult(s.breakerID, err)
	return err
}

// newMessage encodes event as JSON. The outfit id doubles as the NATS
// message id so redelivered publishes are deduplicated.
//
//nolint:gocritic // hugeParam: see RecordStrategyExecution
func newMessage(event outfit.StrategyExecution) (*message.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errEncode, err)
	}
	id := event.OutfitID
	if id == "" {
		id = watermill.NewUUID()
	}
	msg := message.NewMessage(id, data)
	msg.Metadata.Set(natsgo.MsgIdHdr, id)
	msg.Metadata.Set("strategy", string(event.Strategy))
	msg.Metadata.Set("user_id", event.UserID)
	if event.Emergency {
		msg.Metadata.Set("emergency", "true")
	}
	return msg, nil
}
