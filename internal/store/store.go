// Package store holds the process-wide record set behind an atomic
// snapshot: readers always see a complete dataset, and a reload swaps the
// whole snapshot in one pointer write.
package store

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Lqint/RMBSVolReport/internal/domain"
	"github.com/Lqint/RMBSVolReport/internal/observability"
)

// Source loads the complete activity record set from some backend.
type Source interface {
	Load(ctx context.Context) ([]domain.ActivityRecord, error)
}

// Snapshot is one immutable view of the dataset. Never mutate a snapshot
// after publishing it.
type Snapshot struct {
	Records  []domain.ActivityRecord
	Org      domain.OrgStats
	LoadedAt time.Time
}

// Store serves snapshots to any number of concurrent readers.
type Store struct {
	source   Source
	orgPath  string
	snapshot atomic.Pointer[Snapshot]
	logger   *log.Logger
}

// Option configures optional behaviour for the Store.
type Option func(*Store)

// WithLogger overrides the logger used for reload reporting.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New constructs a Store. Call Reload before serving.
func New(source Source, orgPath string, opts ...Option) *Store {
	s := &Store{
		source:  source,
		orgPath: orgPath,
		logger:  log.New(log.Writer(), "[store] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload loads records and org metadata and atomically replaces the current
// snapshot. On record-source failure the previous snapshot stays in place.
// A broken metadata file degrades to the built-in defaults rather than
// blocking the reload.
func (s *Store) Reload(ctx context.Context) error {
	records, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	org, err := LoadOrgStats(s.orgPath)
	if err != nil {
		s.logger.Printf("org stats unreadable, using defaults: %v", err)
		org = domain.DefaultOrgStats()
	}

	snap := &Snapshot{Records: records, Org: org, LoadedAt: time.Now().UTC()}
	s.snapshot.Store(snap)
	observability.RecordStoreReload(len(records), snap.LoadedAt)
	s.logger.Printf("snapshot replaced (%d records)", len(records))
	return nil
}

// Snapshot returns the current dataset. Before the first successful Reload
// it returns an empty snapshot so callers never see a nil dataset.
func (s *Store) Snapshot() *Snapshot {
	if snap := s.snapshot.Load(); snap != nil {
		return snap
	}
	return &Snapshot{Org: domain.DefaultOrgStats()}
}
