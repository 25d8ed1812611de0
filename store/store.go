// Package store is the storage gateway: every read and write against the
// embedded database goes through a Store method, serialized by a single
// process-wide lock, mirroring the one-writer model of the underlying
// SQLite file.
package store

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

// Store owns the shared database handle. Each exported method acquires the
// lock for the duration of its statement or transaction and releases it
// before returning; multi-step operations (the order pipeline, customer
// merge and delete) compose these locked primitives without holding the
// lock across steps, so their stages are individually serialized but not
// atomic as a whole.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

// New creates a Store around an injected database handle. The handle is
// owned by the caller; the store never opens or closes it.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// IsNotFound reports whether err is a lookup miss. Absence of a row is not
// exceptional here: the save paths use it as the insert-vs-update
// discriminator.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
