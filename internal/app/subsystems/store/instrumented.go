package store

import (
	"context"
	"log/slog"

	"github.com/meshbridge/meshbridge/internal/metrics"
	"github.com/meshbridge/meshbridge/pkg/correlation"
)

type instrumented[T any] struct {
	Store[T]
	flow    string
	metrics *metrics.Metrics
}

// Instrument wraps a store so that every successful transition is counted
// and logged under the given flow name.
func Instrument[T any](s Store[T], flow string, m *metrics.Metrics) Store[T] {
	return &instrumented[T]{Store: s, flow: flow, metrics: m}
}

func (s *instrumented[T]) Create(ctx context.Context) (*correlation.Record[T], error) {
	r, err := s.Store.Create(ctx)
	if err == nil {
		s.observe(r)
	}
	return r, err
}

func (s *instrumented[T]) CreateWithId(ctx context.Context, id string, tags map[string]string) (*correlation.Record[T], error) {
	r, err := s.Store.CreateWithId(ctx, id, tags)
	if err == nil {
		s.observe(r)
	}
	return r, err
}

func (s *instrumented[T]) Complete(ctx context.Context, id string, status correlation.Status, payload T) (*correlation.Record[T], error) {
	r, err := s.Store.Complete(ctx, id, status, payload)
	if err == nil {
		s.observe(r)
	}
	return r, err
}

func (s *instrumented[T]) Expire(ctx context.Context, now int64) (int, error) {
	n, err := s.Store.Expire(ctx, now)
	if err == nil && n > 0 {
		s.metrics.RecordsExpired.WithLabelValues(s.flow).Add(float64(n))
		slog.Debug("expired records", "flow", s.flow, "count", n)
	}
	return n, err
}

func (s *instrumented[T]) observe(r *correlation.Record[T]) {
	s.metrics.RecordsTotal.WithLabelValues(s.flow, r.Status.String()).Inc()
	slog.Debug("record transition", "flow", s.flow, "request_id", r.Id, "status", r.Status)
}
