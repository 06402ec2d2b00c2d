package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Partition keys. One JSON-encoded array of records per entity kind; the key
// names match the original browser-storage layout so existing blobs stay
// readable.
const (
	PartitionUsers         = "ojt_db_users"
	PartitionLogbook       = "ojt_db_logbook_entries"
	PartitionDocuments     = "ojt_db_documents"
	PartitionAnnouncements = "ojt_db_announcements"
	PartitionEvaluations   = "ojt_db_evaluations"
	PartitionContact       = "ojt_db_contact_submissions"
)

// Blob abstracts the underlying key-value byte storage for partitions.
type Blob interface {
	// Get returns the raw partition payload, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the partition payload wholesale.
	Put(ctx context.Context, key string, data []byte) error
}

// Read/write outcomes reported to the Observer.
const (
	OutcomeOK        = "ok"
	OutcomeMissing   = "missing"
	OutcomeCorrupted = "corrupted"
	OutcomeError     = "error"
)

// Observer receives per-partition read and write outcomes. Metrics hook in
// here so the store stays free of any instrumentation dependency.
type Observer interface {
	ObserveStoreRead(partition, outcome string)
	ObserveStoreWrite(partition, outcome string)
}

// Store provides typed read/write access over named partitions of a Blob.
// Every write replaces the full partition; there is no append primitive, so
// callers mutate via read-modify-write inside Do.
type Store struct {
	blob     Blob
	logger   *zap.Logger
	observer Observer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New constructs a Store over the given blob backend.
func New(blob Blob, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{blob: blob, logger: logger, locks: make(map[string]*sync.Mutex)}
}

// SetObserver installs an outcome observer. Call before serving traffic; the
// field is not guarded against concurrent mutation.
func (s *Store) SetObserver(obs Observer) {
	s.observer = obs
}

func (s *Store) observeRead(partition, outcome string) {
	if s.observer != nil {
		s.observer.ObserveStoreRead(partition, outcome)
	}
}

func (s *Store) observeWrite(partition, outcome string) {
	if s.observer != nil {
		s.observer.ObserveStoreWrite(partition, outcome)
	}
}

// Read decodes the partition array into dest (a pointer to a slice). A missing
// or corrupted partition yields the empty slice; read failures are logged and
// swallowed so a store read never fails its caller.
func (s *Store) Read(ctx context.Context, partition string, dest interface{}) {
	raw, err := s.blob.Get(ctx, partition)
	if err != nil {
		s.logger.Warn("store read failed", zap.String("partition", partition), zap.Error(err))
		s.observeRead(partition, OutcomeError)
		return
	}
	if len(raw) == 0 {
		s.observeRead(partition, OutcomeMissing)
		return
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("store partition corrupted", zap.String("partition", partition), zap.Error(err))
		s.observeRead(partition, OutcomeCorrupted)
		return
	}
	s.observeRead(partition, OutcomeOK)
}

// Write serializes value and persists it as the new partition content. It
// returns false when the blob write fails, letting the caller surface a
// recoverable storage error instead of panicking.
func (s *Store) Write(ctx context.Context, partition string, value interface{}) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("store marshal failed", zap.String("partition", partition), zap.Error(err))
		s.observeWrite(partition, OutcomeError)
		return false
	}
	if err := s.blob.Put(ctx, partition, raw); err != nil {
		s.logger.Error("store write failed", zap.String("partition", partition), zap.Error(err))
		s.observeWrite(partition, OutcomeError)
		return false
	}
	s.observeWrite(partition, OutcomeOK)
	return true
}

// Do runs fn while holding the partition's mutex. The original design left
// read-modify-write cycles unguarded because it ran on a single thread; this
// server handles requests concurrently, so repositories wrap every mutation
// in Do to keep the cycle atomic per partition.
func (s *Store) Do(partition string, fn func() error) error {
	lock := s.lockFor(partition)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

func (s *Store) lockFor(partition string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[partition]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[partition] = lock
	}
	return lock
}
