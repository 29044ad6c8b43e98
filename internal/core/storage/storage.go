// Package storage defines the capability set session persistence must
// provide, with two swappable backends: sqlite (internal/core/db) and an
// in-memory store for tests and throwaway runs. Callers pick a backend
// at construction time; nothing branches on backend type at runtime.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blakemt/pufflog/internal/core/models"
)

// ErrNotFound is returned when a session id has no stored record.
var ErrNotFound = errors.New("storage: not found")

// SessionFilter narrows ListSessions. Zero values mean "no filter".
type SessionFilter struct {
	Vessel   string
	Strain   string
	Location string
	Since    time.Time
	Until    time.Time
	Limit    int
}

// ImportRecord logs one committed import run.
type ImportRecord struct {
	SourceFile string
	TotalRows  int
	Inserted   int
	Failed     int
	Status     string // "success", "partial", "failed"
	ImportedAt time.Time
}

// Store is the persistence capability set shared by all backends.
type Store interface {
	SaveSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListSessions(ctx context.Context, f SessionFilter) ([]models.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// UpsertLocation stores a location by its composite key, incrementing
	// the usage count when the key already exists, and returns the stored
	// entity.
	UpsertLocation(ctx context.Context, loc *models.Location) (*models.Location, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	UpdateLocation(ctx context.Context, loc *models.Location) error

	RecordImport(ctx context.Context, rec ImportRecord) error
	Stats(ctx context.Context) (*Stats, error)

	Close() error
}

// matchesFilter is the single definition of filter semantics, shared by
// backends so they stay interchangeable.
func matchesFilter(s *models.Session, f SessionFilter) bool {
	if f.Vessel != "" && !equalFold(s.Vessel, f.Vessel) {
		return false
	}
	if f.Strain != "" && !containsFold(s.StrainName, f.Strain) {
		return false
	}
	if f.Location != "" && !containsFold(s.Location, f.Location) {
		return false
	}
	if !f.Since.IsZero() && s.Date < f.Since.Format("2006-01-02") {
		return false
	}
	if !f.Until.IsZero() && s.Date > f.Until.Format("2006-01-02") {
		return false
	}
	return true
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
