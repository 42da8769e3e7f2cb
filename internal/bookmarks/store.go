package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// Key is the single namespace key the bookmark list is stored under.
const Key = "enron-bookmarks"

var (
	// ErrNotFound is returned when removing a bookmark that does not exist.
	ErrNotFound = errors.New("bookmark not found")

	// ErrStoreClosed is returned when the store is used after Close.
	ErrStoreClosed = errors.New("bookmark store is closed")
)

// Store persists the whole bookmark list as one value.
type Store interface {
	Load(ctx context.Context) ([]api.Email, error)
	Save(ctx context.Context, mails []api.Email) error
	Close() error
}

// BadgerStore keeps bookmarks in a BadgerDB directory.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ Store = (*BadgerStore)(nil)

// badgerLogger adapts slog.Logger to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (bl *badgerLogger) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLogger) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

// Infof is logged at debug level.
func (bl *badgerLogger) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLogger) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBadger opens the store at dir, creating the directory if needed. An in-memory
// store ignores dir.
func OpenBadger(dir string, inMemory bool, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "bookmarks")

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = &badgerLogger{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open bookmark store: %w", err)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create bookmark dir: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// withTx runs fn in a transaction. Write transactions are committed when fn succeeds.
func (s *BadgerStore) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if s.db.IsClosed() {
		return ErrStoreClosed
	}
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	if isWrite {
		return tx.Commit()
	}
	return nil
}

// Load returns the stored list, or an empty list when nothing was saved yet.
func (s *BadgerStore) Load(ctx context.Context) ([]api.Email, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mails := []api.Email{}
	err := s.withTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(Key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &mails)
		})
	}, false)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	return mails, nil
}

// Save replaces the stored list.
func (s *BadgerStore) Save(ctx context.Context, mails []api.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mails == nil {
		mails = []api.Email{}
	}
	data, err := json.Marshal(mails)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	err = s.withTx(func(tx *badger.Txn) error {
		return tx.Set([]byte(Key), data)
	}, true)
	if err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	s.logger.Debug("bookmarks saved", "count", len(mails))
	return nil
}

// Close closes the database. Closing twice is a no-op.
func (s *BadgerStore) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}
