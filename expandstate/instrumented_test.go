package expandstate

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	blobs, fake := newTestBlobStore(t)
	s := NewInstrumentedStore(blobs, reg)

	require.NoError(t, s.Put(ctx, State{ListID: testListID}))
	_, err := s.Get(ctx, testListID)
	require.NoError(t, err)
	_, err = s.Get(ctx, uuid.New())
	require.ErrorIs(t, err, ErrStateNotFound)

	fake.putErr = fmt.Errorf("fake: %w", ErrStateConflict)
	require.Error(t, s.Put(ctx, State{ListID: testListID}))
	fake.putErr = fmt.Errorf("fake: disk on fire")
	require.Error(t, s.Put(ctx, State{ListID: testListID}))

	require.NoError(t, s.Delete(ctx, testListID))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues("put", resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues("put", resultConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues("put", resultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues("get", resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues("get", resultNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues("delete", resultOK)))

	// one histogram series per op
	assert.Equal(t, 3, testutil.CollectAndCount(s.duration))
}

func TestInstrumentedStoreDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := openTestBadgerStore(t, InMemoryConfig())
	NewInstrumentedStore(s, reg)
	assert.Panics(t, func() { NewInstrumentedStore(s, reg) })
}
