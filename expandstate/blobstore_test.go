package expandstate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlob struct {
	data []byte
	etag string
}

// fakeStorer keeps blobs in memory. It does not interpret the etag options,
// conflicts are injected with putErr.
type fakeStorer struct {
	blobs   map[string]fakeBlob
	version int
	putErr  error
	puts    []string
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{blobs: make(map[string]fakeBlob)}
}

func (f *fakeStorer) Put(
	ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option,
) (*azblob.WriteResponse, error) {
	f.puts = append(f.puts, identity)
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	f.version++
	etag := strconv.Itoa(f.version)
	f.blobs[identity] = fakeBlob{data: data, etag: etag}
	return &azblob.WriteResponse{ETag: &etag}, nil
}

func (f *fakeStorer) Reader(
	ctx context.Context, identity string, opts ...azblob.Option,
) (*azblob.ReaderResponse, error) {
	b, ok := f.blobs[identity]
	if !ok {
		return nil, fmt.Errorf("fake %s: %w", identity, ErrStateNotFound)
	}
	etag := b.etag
	return &azblob.ReaderResponse{Reader: io.NopCloser(bytes.NewReader(b.data)), ETag: &etag}, nil
}

func (f *fakeStorer) Delete(ctx context.Context, identity string) error {
	if _, ok := f.blobs[identity]; !ok {
		return fmt.Errorf("fake %s: %w", identity, ErrStateNotFound)
	}
	delete(f.blobs, identity)
	return nil
}

func newTestBlobStore(t *testing.T, opts ...BlobStoreOption) (*BlobStore, *fakeStorer) {
	t.Helper()
	logger.New("NOOP")
	fake := newFakeStorer()
	s, err := NewBlobStore(logger.Sugar.WithServiceName(t.Name()), fake, opts...)
	require.NoError(t, err)
	return s, fake
}

func TestBlobStorePutGet(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestBlobStore(t)

	require.NoError(t, s.Put(ctx, State{ListID: testListID, Expanded: []uint32{3, 6}}))
	path := "v1/expandstate/" + testListID.String() + ".cbor"
	assert.Equal(t, path, s.BlobPath(testListID))
	assert.Equal(t, []string{path}, fake.puts)
	assert.Equal(t, "1", s.etag(testListID))

	got, err := s.Get(ctx, testListID)
	require.NoError(t, err)
	assert.Equal(t, []uint32{3, 6}, got.Expanded)
	assert.Equal(t, "1", s.etag(testListID))

	require.NoError(t, s.Put(ctx, State{ListID: testListID, Expanded: []uint32{6}}))
	assert.Equal(t, "2", s.etag(testListID))
}

func TestBlobStoreNotFound(t *testing.T) {
	s, _ := newTestBlobStore(t)
	_, err := s.Get(context.Background(), testListID)
	assert.ErrorIs(t, err, ErrStateNotFound)

	// deleting absent state is fine
	assert.NoError(t, s.Delete(context.Background(), testListID))
}

func TestBlobStoreConflictForgetsETag(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestBlobStore(t)
	require.NoError(t, s.Put(ctx, State{ListID: testListID}))
	require.NotEmpty(t, s.etag(testListID))

	fake.putErr = fmt.Errorf("fake: %w", ErrStateConflict)
	err := s.Put(ctx, State{ListID: testListID, Expanded: []uint32{1}})
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Empty(t, s.etag(testListID))

	// re-reading picks up the current etag
	fake.putErr = nil
	_, err = s.Get(ctx, testListID)
	require.NoError(t, err)
	assert.Equal(t, "1", s.etag(testListID))
}

func TestBlobStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestBlobStore(t, WithBlobPrefix("test/expandstate"))
	require.NoError(t, s.Put(ctx, State{ListID: testListID}))
	require.Contains(t, fake.blobs, "test/expandstate/"+testListID.String()+".cbor")

	require.NoError(t, s.Delete(ctx, testListID))
	assert.Empty(t, fake.blobs)
	assert.Empty(t, s.etag(testListID))
}

func TestBlobStoreCorruptBlob(t *testing.T) {
	s, fake := newTestBlobStore(t)
	fake.blobs[s.BlobPath(testListID)] = fakeBlob{data: []byte("not cbor"), etag: "9"}

	_, err := s.Get(context.Background(), testListID)
	assert.ErrorIs(t, err, ErrStateMalformed)
	assert.Empty(t, s.etag(testListID))
}

func TestWrapBlobError(t *testing.T) {
	assert.NoError(t, wrapBlobError(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, wrapBlobError(plain))

	_, ok := asStorageError(plain)
	assert.False(t, ok)
}
