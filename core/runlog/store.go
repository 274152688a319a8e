package runlog

import (
	"context"
	"slices"
	"time"

	"github.com/kilianp07/parcelsim/core/model"
	"github.com/kilianp07/parcelsim/core/scheduler"
)

// Record captures one scheduling run and its outcome.
type Record struct {
	RunID       string           `json:"run_id"`
	Timestamp   time.Time        `json:"timestamp"`
	Scenario    string           `json:"scenario"`
	Algorithm   string           `json:"algorithm"`
	Config      scheduler.Config `json:"config"`
	Allocations map[int][]int    `json:"allocations"`
	Unscheduled []int            `json:"unscheduled"`
	Stats       model.Stats      `json:"stats"`
}

// Query defines filters for retrieving records. Zero or nil fields match
// anything.
type Query struct {
	Start     time.Time
	End       time.Time
	Algorithm string
	RunID     string
	// ParcelID, when set, matches runs in which the parcel was allocated
	// or left unscheduled.
	ParcelID *int
}

// Match reports whether r satisfies every filter of q.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Algorithm != "" && r.Algorithm != q.Algorithm {
		return false
	}
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.ParcelID != nil {
		return r.mentions(*q.ParcelID)
	}
	return true
}

func (r Record) mentions(parcelID int) bool {
	if slices.Contains(r.Unscheduled, parcelID) {
		return true
	}
	for _, ids := range r.Allocations {
		if slices.Contains(ids, parcelID) {
			return true
		}
	}
	return false
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error          { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                   { return nil }
