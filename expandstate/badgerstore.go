package expandstate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const badgerKeyPrefix = "expandstate/"

type Config struct {
	// Path is the directory for the database files. Ignored when InMemory
	// is set.
	Path string

	InMemory bool

	SyncWrites bool

	// Log receives badger's own logging. Badger is silent when it is nil.
	Log logger.Logger
}

func DefaultConfig() Config {
	return Config{
		SyncWrites: true,
	}
}

// InMemoryConfig is for tests. Nothing is written to disk.
func InMemoryConfig() Config {
	return Config{
		InMemory: true,
	}
}

// badgerLogger adapts logger.Logger to badger's Logger interface.
type badgerLogger struct {
	log logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any)   { l.log.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...any) { l.log.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...any)    { l.log.Infof(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...any)   { l.log.Debugf(format, args...) }

// BadgerStore keeps expanded state in an embedded badger database. It is
// safe for concurrent use.
type BadgerStore struct {
	db    *badger.DB
	codec Codec
}

// Open opens, creating if necessary, the database described by cfg. The
// caller must Close the store.
func Open(cfg Config) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, ErrStorePathMissing
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Log != nil {
		opts = opts.WithLogger(&badgerLogger{log: cfg.Log})
	} else {
		opts = opts.WithLogger(nil)
	}

	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db, codec: codec}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func badgerKey(listID uuid.UUID) []byte {
	return []byte(badgerKeyPrefix + listID.String())
}

func (s *BadgerStore) Put(ctx context.Context, st State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.codec.Encode(st)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(st.ListID), data)
	})
}

func (s *BadgerStore) Get(ctx context.Context, listID uuid.UUID) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(listID))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return State{}, fmt.Errorf("%w: %s", ErrStateNotFound, listID)
	}
	if err != nil {
		return State{}, err
	}
	return s.codec.Decode(data)
}

func (s *BadgerStore) Delete(ctx context.Context, listID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(listID))
	})
}

// ListIDs returns the ids of all lists with stored state.
func (s *BadgerStore) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			id, err := uuid.Parse(key[len(badgerKeyPrefix):])
			if err != nil {
				return fmt.Errorf("bad key %q: %w", key, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	return ids, err
}
