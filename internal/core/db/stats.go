package db

import (
	"context"
	"time"

	"github.com/blakemt/pufflog/internal/core/storage"
)

// Stats loads every session and hands off to the shared aggregation so
// both backends report identical numbers.
func (db *DB) Stats(ctx context.Context) (*storage.Stats, error) {
	sessions, err := db.ListSessions(ctx, storage.SessionFilter{})
	if err != nil {
		return nil, err
	}
	return storage.ComputeStats(sessions, time.Now()), nil
}
