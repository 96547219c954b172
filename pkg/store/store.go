// Package store persists solved schedules.
//
// Two backends implement [Store]:
//   - file: one JSON document per schedule, for the CLI
//   - mongo: a MongoDB collection, for the HTTP server
//
// Records are keyed by the UUID of their [schedule.Result]. [Store.List]
// returns summaries, newest first, without the embedded result; fetch a
// single record with [Store.Get] for the full schedule.
package store

import (
	"context"
	"errors"

	"github.com/matzehuels/curricula/pkg/schedule"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("schedule not found")

// DefaultListLimit is the number of records List returns for a limit of 0.
const DefaultListLimit = 50

// Store saves and retrieves schedule records.
type Store interface {
	// Save inserts or replaces the record with rec.ID.
	Save(ctx context.Context, rec *schedule.Record) error

	// Get returns the full record, or ErrNotFound.
	Get(ctx context.Context, id string) (*schedule.Record, error)

	// List returns up to limit record summaries, newest first.
	List(ctx context.Context, limit int) ([]*schedule.Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// summary returns a copy of rec without the embedded result.
func summary(rec *schedule.Record) *schedule.Record {
	out := *rec
	out.Result = nil
	return &out
}
