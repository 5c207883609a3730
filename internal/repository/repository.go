// Package repository is the persistence boundary for contacts. Three
// backends implement the same interface: a MongoDB document store (the
// default), a MySQL store, and an in-memory store for tests and
// database-free development.
package repository

import (
	"context"
	"errors"

	"github.com/KENZY004/contact-management/internal/model"
)

// ErrNotFound is returned when no contact matches the given id or email.
var ErrNotFound = errors.New("contact not found")

// ErrDuplicateEmail is returned when a write would leave two contacts
// with the same normalized email. Each backend enforces this with a
// storage-level constraint in addition to the API's pre-check, so two
// concurrent writes cannot slip past the check-then-write window.
var ErrDuplicateEmail = errors.New("duplicate email")

// ContactRepository is the persistence interface for contacts. Callers
// pass emails already normalized (lower-cased, trimmed); the repository
// stores and compares them verbatim.
type ContactRepository interface {
	// List returns all contacts ordered by creation time, newest first.
	List(ctx context.Context) ([]model.Contact, error)

	// FindByEmail returns the contact with the given normalized email,
	// or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (model.Contact, error)

	// FindByEmailExcluding is FindByEmail but ignores the contact with
	// the given id, so an update may keep its own address.
	FindByEmailExcluding(ctx context.Context, email, excludeID string) (model.Contact, error)

	// Create stores a new contact with a fresh id and the current
	// timestamp and returns the stored record.
	Create(ctx context.Context, fields model.Fields) (model.Contact, error)

	// UpdateByID replaces the four mutable fields of the contact with
	// the given id, leaving id and CreatedAt untouched. Returns the
	// updated record or ErrNotFound.
	UpdateByID(ctx context.Context, id string, fields model.Fields) (model.Contact, error)

	// DeleteByID removes the contact with the given id and returns the
	// removed record, or ErrNotFound.
	DeleteByID(ctx context.Context, id string) (model.Contact, error)

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}
