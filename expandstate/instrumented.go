package expandstate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultConflict = "conflict"
	resultError    = "error"
)

// InstrumentedStore counts and times the operations of another Store.
type InstrumentedStore struct {
	next     Store
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewInstrumentedStore registers its metrics with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default handler.
func NewInstrumentedStore(next Store, reg prometheus.Registerer) *InstrumentedStore {
	factory := promauto.With(reg)
	return &InstrumentedStore{
		next: next,
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "expandstate_ops_total",
			Help: "Expanded state store operations by result.",
		}, []string{"op", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "expandstate_op_seconds",
			Help:    "Expanded state store operation latency.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
	}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	result := resultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrStateNotFound):
		result = resultNotFound
	case errors.Is(err, ErrStateConflict):
		result = resultConflict
	default:
		result = resultError
	}
	s.ops.WithLabelValues(op, result).Inc()
}

func (s *InstrumentedStore) Put(ctx context.Context, st State) error {
	start := time.Now()
	err := s.next.Put(ctx, st)
	s.observe("put", start, err)
	return err
}

func (s *InstrumentedStore) Get(ctx context.Context, listID uuid.UUID) (State, error) {
	start := time.Now()
	st, err := s.next.Get(ctx, listID)
	s.observe("get", start, err)
	return st, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, listID uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, listID)
	s.observe("delete", start, err)
	return err
}
