package expandstate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
)

const (
	V1ExpandStatePrefix = "v1/expandstate"
)

// BlobStorer is the part of the azblob Storer used by BlobStore.
type BlobStorer interface {
	Put(ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option) (*azblob.WriteResponse, error)
	Reader(ctx context.Context, identity string, opts ...azblob.Option) (*azblob.ReaderResponse, error)
	Delete(ctx context.Context, identity string) error
}

type BlobStoreOption func(*BlobStore)

// WithBlobPrefix replaces V1ExpandStatePrefix as the path under which
// state blobs are kept.
func WithBlobPrefix(prefix string) BlobStoreOption {
	return func(s *BlobStore) {
		s.prefix = prefix
	}
}

// BlobStore keeps expanded state in azure blob storage, one blob per list.
//
// Writes are guarded by the blob etag. A Put for a list that was not read
// by this store (or whose last write failed) only succeeds if no blob
// exists yet. A Put after a Get only succeeds if nobody else has written
// the blob since. Either failure is reported as ErrStateConflict, after
// which the caller is expected to Get and retry.
type BlobStore struct {
	log    logger.Logger
	store  BlobStorer
	codec  Codec
	prefix string

	mu    sync.Mutex
	etags map[uuid.UUID]string
}

func NewBlobStore(log logger.Logger, store BlobStorer, opts ...BlobStoreOption) (*BlobStore, error) {
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	s := &BlobStore{
		log:    log,
		store:  store,
		codec:  codec,
		prefix: V1ExpandStatePrefix,
		etags:  make(map[uuid.UUID]string),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// BlobPath returns the path of the blob holding the state for listID.
func (s *BlobStore) BlobPath(listID uuid.UUID) string {
	return fmt.Sprintf("%s/%s.cbor", s.prefix, listID)
}

func (s *BlobStore) etag(listID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.etags[listID]
}

func (s *BlobStore) setETag(listID uuid.UUID, etag *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if etag == nil || *etag == "" {
		delete(s.etags, listID)
		return
	}
	s.etags[listID] = *etag
}

func (s *BlobStore) Put(ctx context.Context, st State) error {
	data, err := s.codec.Encode(st)
	if err != nil {
		return err
	}

	blobPath := s.BlobPath(st.ListID)

	var opts []azblob.Option
	if etag := s.etag(st.ListID); etag != "" {
		opts = append(opts, azblob.WithEtagMatch(etag))
	} else {
		// fail rather than overwrite a blob we have not seen
		opts = append(opts, azblob.WithEtagNoneMatch("*"))
	}

	wr, err := s.store.Put(ctx, blobPath, azblob.NewBytesReaderCloser(data), opts...)
	if err != nil {
		s.setETag(st.ListID, nil)
		err = wrapBlobError(err)
		if s.log != nil {
			s.log.Infof("Put %s: %v", blobPath, err)
		}
		return err
	}
	if wr != nil {
		s.setETag(st.ListID, wr.ETag)
	}
	return nil
}

func (s *BlobStore) Get(ctx context.Context, listID uuid.UUID) (State, error) {
	blobPath := s.BlobPath(listID)

	rr, err := s.store.Reader(ctx, blobPath)
	if err != nil {
		return State{}, wrapBlobError(err)
	}
	defer rr.Reader.Close()

	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return State{}, fmt.Errorf("read %s: %w", blobPath, err)
	}
	st, err := s.codec.Decode(data)
	if err != nil {
		return State{}, fmt.Errorf("decode %s: %w", blobPath, err)
	}
	s.setETag(listID, rr.ETag)
	return st, nil
}

func (s *BlobStore) Delete(ctx context.Context, listID uuid.UUID) error {
	s.setETag(listID, nil)
	err := wrapBlobError(s.store.Delete(ctx, s.BlobPath(listID)))
	if errors.Is(err, ErrStateNotFound) {
		return nil
	}
	return err
}
