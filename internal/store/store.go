// Package store owns the client-side contact list. The list is fetched
// once at startup and afterwards updated incrementally from API results:
// a create prepends, an update replaces in place, a delete removes. UI
// layers read snapshots instead of mutating the list directly.
package store

import (
	"context"

	"github.com/KENZY004/contact-management/internal/model"
)

// API is the subset of the contact API client the store depends on.
type API interface {
	List(ctx context.Context) ([]model.Contact, error)
	Create(ctx context.Context, fields model.Fields) (model.Contact, error)
	Update(ctx context.Context, id string, fields model.Fields) (model.Contact, error)
	Delete(ctx context.Context, id string) (model.Contact, error)
}

// Store holds the authoritative in-memory contact list. It is not safe
// for concurrent use; all client frontends drive it from a single
// goroutine.
type Store struct {
	api      API
	contacts []model.Contact
	version  uint64
	loaded   bool
}

// New creates an empty store backed by the given API client.
func New(a API) *Store {
	return &Store{api: a}
}

// Load fetches the full list from the server. This is the only full
// refresh; every later change is applied incrementally.
func (s *Store) Load(ctx context.Context) error {
	contacts, err := s.api.List(ctx)
	if err != nil {
		return err
	}
	s.contacts = contacts
	s.loaded = true
	s.version++
	return nil
}

// Loaded reports whether the initial fetch has completed.
func (s *Store) Loaded() bool {
	return s.loaded
}

// All returns a copy of the current list.
func (s *Store) All() []model.Contact {
	snapshot := make([]model.Contact, len(s.contacts))
	copy(snapshot, s.contacts)
	return snapshot
}

// Len returns the number of contacts held.
func (s *Store) Len() int {
	return len(s.contacts)
}

// Version increases on every successful mutation, so observers can detect
// change without comparing lists.
func (s *Store) Version() uint64 {
	return s.version
}

// Add creates the contact on the server and prepends the stored record.
func (s *Store) Add(ctx context.Context, fields model.Fields) (model.Contact, error) {
	contact, err := s.api.Create(ctx, fields)
	if err != nil {
		return model.Contact{}, err
	}
	s.contacts = append([]model.Contact{contact}, s.contacts...)
	s.version++
	return contact, nil
}

// Update replaces the contact on the server and swaps the matching record
// in place, keeping its position in the list.
func (s *Store) Update(ctx context.Context, id string, fields model.Fields) (model.Contact, error) {
	contact, err := s.api.Update(ctx, id, fields)
	if err != nil {
		return model.Contact{}, err
	}
	for i := range s.contacts {
		if s.contacts[i].ID == contact.ID {
			s.contacts[i] = contact
			break
		}
	}
	s.version++
	return contact, nil
}

// Remove deletes the contact on the server and drops the matching record.
func (s *Store) Remove(ctx context.Context, id string) (model.Contact, error) {
	contact, err := s.api.Delete(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			break
		}
	}
	s.version++
	return contact, nil
}
