// Package store persists the single session record.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/workfetch/internal/model"
)

// ErrCorruptState is wrapped by Load when the stored record cannot be parsed.
var ErrCorruptState = errors.New("corrupt session state")

// SessionStore holds at most one session record.
type SessionStore interface {
	// Load returns the stored record, or nil when none exists.
	Load(ctx context.Context) (*model.SessionRecord, error)
	// Save replaces the stored record.
	Save(ctx context.Context, rec model.SessionRecord) error
	// Clear removes the stored record.
	Clear(ctx context.Context) error
	// Location describes where the record lives.
	Location() string
	Close() error
}

// Open opens the store for the named backend at path.
func Open(backend, path string) (SessionStore, error) {
	switch backend {
	case "", "json":
		return NewFileStore(path), nil
	case "sqlite":
		st, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

type recordDoc struct {
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time"`
}

func encodeRecord(rec model.SessionRecord) recordDoc {
	return recordDoc{
		Date:      rec.Date.String(),
		StartTime: rec.StartTime.Format(time.RFC3339Nano),
	}
}

// decodeRecord converts a stored document. A missing date is derived from
// the local calendar day of the start time.
func decodeRecord(doc recordDoc) (*model.SessionRecord, error) {
	if doc.StartTime == "" {
		return nil, fmt.Errorf("%w: missing start_time", ErrCorruptState)
	}
	start, err := time.Parse(time.RFC3339Nano, doc.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	start = start.Local()
	date := model.DateOf(start)
	if doc.Date != "" {
		date, err = model.ParseDate(doc.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
	}
	return &model.SessionRecord{Date: date, StartTime: start}, nil
}
