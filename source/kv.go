package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/pagination/internal/kvutil"
	"github.com/arloliu/pagination/internal/logging"
	"github.com/arloliu/pagination/types"
)

// ErrWatcherClosed is returned by Run when the bucket watcher stops delivering
// updates while the context is still live.
var ErrWatcherClosed = errors.New("kv watcher closed")

// Decoder turns a KV entry into a record. The record's collection key must be
// the entry key, so deletes can be matched to records.
type Decoder[T any] func(key string, value []byte) (T, error)

// KVOption configures a KV source.
type KVOption func(*kvOptions)

type kvOptions struct {
	pattern string
	locker  sync.Locker
	logger  types.Logger
}

// WithKeyPattern limits the source to keys matching a NATS subject pattern
// such as "orders.>". The default mirrors every key.
func WithKeyPattern(pattern string) KVOption {
	return func(o *kvOptions) {
		o.pattern = pattern
	}
}

// WithLocker makes the source hold l while it mutates the container.
//
// Collections and pagers are not safe for concurrent use; hold the same lock
// while reading or navigating from other goroutines.
func WithLocker(l sync.Locker) KVOption {
	return func(o *kvOptions) {
		o.locker = l
	}
}

// WithKVLogger sets the logger. The default discards everything.
func WithKVLogger(logger types.Logger) KVOption {
	return func(o *kvOptions) {
		o.logger = logger
	}
}

// KV mirrors the records of a JetStream KeyValue bucket into a container.
//
// The initial snapshot of the bucket replaces the container contents (Reset).
// Afterwards a put inserts a new record or replaces an existing one in place,
// and a delete or purge removes it. Entries that fail to decode are logged and
// skipped.
//
// Thread Safety:
//   - Load and Run mutate the container from the calling goroutine
//   - Use WithLocker when the container is read from other goroutines
type KV[T any] struct {
	bucket  jetstream.KeyValue
	decode  Decoder[T]
	pattern string
	locker  sync.Locker
	logger  types.Logger

	synced   chan struct{}
	syncOnce sync.Once
	applied  atomic.Uint64
	skipped  atomic.Uint64
}

var _ Loader[int] = (*KV[int])(nil)

// NewKV creates a source over an open bucket.
//
// Parameters:
//   - bucket: JetStream KeyValue bucket holding one record per key
//   - decode: Entry decoder (required)
//   - opts: Optional configuration (WithKeyPattern, WithLocker, WithKVLogger)
//
// Returns:
//   - *KV[T]: Initialized source
//   - error: types.ErrNilCollection for a nil bucket, types.ErrNilKeyFunc for a nil decoder
func NewKV[T any](bucket jetstream.KeyValue, decode Decoder[T], opts ...KVOption) (*KV[T], error) {
	if bucket == nil {
		return nil, fmt.Errorf("%w: nil bucket", types.ErrNilCollection)
	}
	if decode == nil {
		return nil, fmt.Errorf("%w: nil decoder", types.ErrNilKeyFunc)
	}

	o := &kvOptions{pattern: ">"}
	for _, opt := range opts {
		opt(o)
	}
	if o.locker == nil {
		o.locker = nopLocker{}
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	return &KV[T]{
		bucket:  bucket,
		decode:  decode,
		pattern: o.pattern,
		locker:  o.locker,
		logger:  o.logger,
		synced:  make(chan struct{}),
	}, nil
}

// OpenKV creates or opens the record bucket named bucket and returns a source over it.
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	src, err := source.OpenKV(ctx, js, "orders", decodeOrder, source.WithLocker(&mu))
//	if err != nil { /* handle */ }
//	go func() { _ = src.Run(ctx, full) }()
func OpenKV[T any](ctx context.Context, js jetstream.JetStream, bucket string, decode Decoder[T], opts ...KVOption) (*KV[T], error) {
	kv, err := kvutil.EnsureBucket(ctx, js, kvutil.RecordBucketConfig(bucket), 0)
	if err != nil {
		return nil, err
	}

	return NewKV(kv, decode, opts...)
}

// Load resets c to the current contents of the bucket and returns.
//
// Returns:
//   - error: Watch or context errors, or the error of c.Reset
func (s *KV[T]) Load(ctx context.Context, c types.Container[T]) error {
	if c == nil {
		return types.ErrNilCollection
	}

	watcher, err := s.watch(ctx)
	if err != nil {
		return err
	}
	defer s.stop(watcher)

	return s.replay(ctx, watcher, c)
}

// Run loads the bucket into c and keeps applying bucket changes until ctx is
// done. Synced is closed once the initial snapshot has been applied.
//
// Errors returned by container mutations (for example pager handler errors)
// are logged; the source keeps running.
//
// Returns:
//   - error: nil when ctx is done, ErrWatcherClosed, a watch error or the
//     error of the initial c.Reset
func (s *KV[T]) Run(ctx context.Context, c types.Container[T]) error {
	if c == nil {
		return types.ErrNilCollection
	}

	watcher, err := s.watch(ctx)
	if err != nil {
		return err
	}
	defer s.stop(watcher)

	if err := s.replay(ctx, watcher, c); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return err
	}
	s.logger.Info("kv source synced", "bucket", s.bucket.Bucket())
	s.syncOnce.Do(func() { close(s.synced) })

	for {
		select {
		case <-ctx.Done():
			return nil
		case entry, ok := <-watcher.Updates():
			if !ok {
				return ErrWatcherClosed
			}
			if entry == nil {
				continue
			}
			s.apply(c, entry)
		}
	}
}

// Synced is closed after Run applied the initial snapshot.
func (s *KV[T]) Synced() <-chan struct{} {
	return s.synced
}

// Applied returns the number of bucket changes applied after the initial snapshot.
func (s *KV[T]) Applied() uint64 {
	return s.applied.Load()
}

// Skipped returns the number of entries that could not be decoded or applied.
func (s *KV[T]) Skipped() uint64 {
	return s.skipped.Load()
}

func (s *KV[T]) watch(ctx context.Context) (jetstream.KeyWatcher, error) {
	watcher, err := s.bucket.Watch(ctx, s.pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to watch bucket %s: %w", s.bucket.Bucket(), err)
	}

	return watcher, nil
}

func (s *KV[T]) stop(watcher jetstream.KeyWatcher) {
	if err := watcher.Stop(); err != nil {
		s.logger.Warn("failed to stop kv watcher", "bucket", s.bucket.Bucket(), "error", err)
	}
}

// replay collects the initial values up to the nil marker and resets c to them.
func (s *KV[T]) replay(ctx context.Context, watcher jetstream.KeyWatcher, c types.Container[T]) error {
	var records []T
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-watcher.Updates():
			if !ok {
				return ErrWatcherClosed
			}
			if entry == nil {
				s.logger.Debug("kv snapshot loaded", "bucket", s.bucket.Bucket(), "records", len(records))
				s.locker.Lock()
				defer s.locker.Unlock()

				return c.Reset(records)
			}
			if entry.Operation() != jetstream.KeyValuePut {
				// delete marker of a key removed before the snapshot
				continue
			}

			record, err := s.decodeEntry(c, entry)
			if err != nil {
				s.skipped.Add(1)
				s.logger.Warn("skipping kv entry", "key", entry.Key(), "error", err)

				continue
			}
			records = append(records, record)
		}
	}
}

// apply mirrors one bucket change into c.
func (s *KV[T]) apply(c types.Container[T], entry jetstream.KeyValueEntry) {
	key := entry.Key()

	s.locker.Lock()
	defer s.locker.Unlock()

	var err error
	switch entry.Operation() {
	case jetstream.KeyValuePut:
		var record T
		record, err = s.decodeEntry(c, entry)
		if err != nil {
			s.skipped.Add(1)
			s.logger.Warn("skipping kv entry", "key", key, "revision", entry.Revision(), "error", err)

			return
		}
		err = s.put(c, key, record)
	case jetstream.KeyValueDelete, jetstream.KeyValuePurge:
		s.logger.Debug("kv record removed", "key", key, "op", entry.Operation().String())
		_, _, err = c.Remove(key)
	default:
		return
	}

	s.applied.Add(1)
	if err != nil {
		s.logger.Error("failed to apply kv change", "key", key, "op", entry.Operation().String(), "error", err)
	}
}

// put inserts a new record, or replaces an existing one at its position.
func (s *KV[T]) put(c types.Container[T], key string, record T) error {
	idx := c.IndexOf(key)
	if idx < 0 {
		s.logger.Debug("kv record added", "key", key)
		return c.Insert(record)
	}

	s.logger.Debug("kv record replaced", "key", key, "index", idx)
	_, _, removeErr := c.Remove(key)
	insertErr := c.Insert(record, types.At(min(idx, c.Len())))

	return errors.Join(removeErr, insertErr)
}

func (s *KV[T]) decodeEntry(c types.Container[T], entry jetstream.KeyValueEntry) (T, error) {
	record, err := s.decode(entry.Key(), entry.Value())
	if err != nil {
		return record, fmt.Errorf("%w: %w", types.ErrType, err)
	}
	if got := c.Key(record); got != entry.Key() {
		return record, fmt.Errorf("%w: decoded record key %q does not match entry key %q", types.ErrType, got, entry.Key())
	}

	return record, nil
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}
