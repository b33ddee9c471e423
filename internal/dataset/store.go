package dataset

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pzsluna26/Dashboard/internal/metrics"
	"github.com/pzsluna26/Dashboard/internal/models"
)

// Store holds the currently loaded dataset behind a read-write lock. Views
// read a consistent snapshot while the refresher swaps in new data.
type Store struct {
	clock clockwork.Clock

	mu       sync.RWMutex
	current  models.RawDataset
	loadedAt time.Time
	version  int
}

// NewStore creates a store seeded with the initial dataset.
func NewStore(ds models.RawDataset, clock clockwork.Clock) *Store {
	s := &Store{clock: clock}
	s.Replace(ds)
	return s
}

// Get returns the current dataset. Callers must treat it as read-only; views
// never mutate their input, so sharing the map is safe.
func (s *Store) Get() models.RawDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a freshly loaded dataset and bumps the version.
func (s *Store) Replace(ds models.RawDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ds
	s.loadedAt = s.clock.Now()
	s.version++

	metrics.DatasetLoadedTimestamp.Set(float64(s.loadedAt.Unix()))
	metrics.DatasetCategories.Set(float64(len(ds)))
}

// LoadedAt returns when the current dataset was installed.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Version returns a counter that increments on every Replace. Clients use it
// to detect refreshes.
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
