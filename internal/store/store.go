// Package store is the gorm-backed persistence layer for the catalog, meals,
// meal logs, weekly trackers and the aggregate queries behind insights.
package store

import (
	"errors"

	"gorm.io/gorm"

	"ecobite/internal/apperr"
)

// Store wraps a gorm connection. All methods are safe for concurrent use.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by database.
func New(database *gorm.DB) *Store {
	return &Store{db: database}
}

// DB exposes the underlying connection for callers that manage their own transactions.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	return nil
}

// notFound maps gorm's record-not-found error to the domain error for resource.
func notFound(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource, id)
	}
	return err
}
