package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blakemt/pufflog/internal/core/models"
)

// MemoryStore is the in-process backend: mutex-guarded maps, no
// persistence across runs. Used for tests, dry runs, and as the
// fallback when no database path is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]models.Session
	locations   map[string]*models.Location // by composite key
	imports     []ImportRecord
	nextLocID   int64
	nowOverride func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:  make(map[string]models.Session),
		locations: make(map[string]*models.Location),
		nextLocID: 1,
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) SaveSession(ctx context.Context, s *models.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *s
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = m.now()
	}
	m.sessions[stored.ID] = stored
	return nil
}

func (m *MemoryStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) ListSessions(ctx context.Context, f SessionFilter) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Session
	for _, s := range m.sessions {
		if matchesFilter(&s, f) {
			out = append(out, s)
		}
	}
	// Newest first, like the sqlite backend's ORDER BY.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) UpsertLocation(ctx context.Context, loc *models.Location) (*models.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := loc.Key()
	if existing, ok := m.locations[key]; ok {
		existing.UsageCount++
		// Backfill fields the stored entity is missing.
		if existing.Latitude == nil && loc.Latitude != nil {
			existing.Latitude, existing.Longitude = loc.Latitude, loc.Longitude
		}
		if existing.Country == "" {
			existing.Country = loc.Country
		}
		if existing.PostalCode == "" {
			existing.PostalCode = loc.PostalCode
		}
		copied := *existing
		return &copied, nil
	}

	stored := *loc
	stored.ID = m.nextLocID
	m.nextLocID++
	if stored.UsageCount == 0 {
		stored.UsageCount = 1
	}
	m.locations[key] = &stored
	copied := stored
	return &copied, nil
}

func (m *MemoryStore) ListLocations(ctx context.Context) ([]models.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Location, 0, len(m.locations))
	for _, l := range m.locations {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MemoryStore) UpdateLocation(ctx context.Context, loc *models.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, existing := range m.locations {
		if existing.ID == loc.ID {
			stored := *loc
			m.locations[key] = &stored
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) RecordImport(ctx context.Context, rec ImportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ImportedAt.IsZero() {
		rec.ImportedAt = m.now()
	}
	m.imports = append(m.imports, rec)
	return nil
}

func (m *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	sessions, err := m.ListSessions(ctx, SessionFilter{})
	if err != nil {
		return nil, err
	}
	return ComputeStats(sessions, m.now()), nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) now() time.Time {
	if m.nowOverride != nil {
		return m.nowOverride()
	}
	return time.Now()
}
