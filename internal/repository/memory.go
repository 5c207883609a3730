package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KENZY004/contact-management/internal/model"
)

// MemoryRepository is a mutex-guarded in-memory implementation of
// ContactRepository. It backs the service tests and the `memory` driver,
// which runs the server without any database. Like the other backends it
// enforces email uniqueness itself.
type MemoryRepository struct {
	mu       sync.Mutex
	contacts map[string]model.Contact
}

var _ ContactRepository = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{contacts: make(map[string]model.Contact)}
}

// Ping always succeeds.
func (r *MemoryRepository) Ping(context.Context) error {
	return nil
}

// List returns all contacts, newest first. Ties on the timestamp are
// broken by id so the order is deterministic.
func (r *MemoryRepository) List(context.Context) ([]model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contacts := make([]model.Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		contacts = append(contacts, contact)
	}
	sort.Slice(contacts, func(i, j int) bool {
		if !contacts[i].CreatedAt.Equal(contacts[j].CreatedAt) {
			return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
		}
		return contacts[i].ID > contacts[j].ID
	})
	return contacts, nil
}

// FindByEmail returns the contact with the given normalized email.
func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (model.Contact, error) {
	return r.findByEmail(email, "")
}

// FindByEmailExcluding returns the contact with the given normalized
// email, ignoring the contact with id excludeID.
func (r *MemoryRepository) FindByEmailExcluding(_ context.Context, email, excludeID string) (model.Contact, error) {
	return r.findByEmail(email, excludeID)
}

func (r *MemoryRepository) findByEmail(email, excludeID string) (model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, contact := range r.contacts {
		if contact.Email == email && contact.ID != excludeID {
			return contact, nil
		}
	}
	return model.Contact{}, ErrNotFound
}

// Create stores a new contact with a fresh id and the current timestamp.
func (r *MemoryRepository) Create(_ context.Context, fields model.Fields) (model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, contact := range r.contacts {
		if contact.Email == fields.Email {
			return model.Contact{}, ErrDuplicateEmail
		}
	}
	contact := model.Contact{
		ID:        model.NewID(),
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Message:   fields.Message,
		CreatedAt: time.Now().UTC(),
	}
	r.contacts[contact.ID] = contact
	return contact, nil
}

// UpdateByID replaces the four mutable fields of the contact with the
// given id, leaving id and CreatedAt untouched.
func (r *MemoryRepository) UpdateByID(_ context.Context, id string, fields model.Fields) (model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok {
		return model.Contact{}, ErrNotFound
	}
	for _, other := range r.contacts {
		if other.Email == fields.Email && other.ID != id {
			return model.Contact{}, ErrDuplicateEmail
		}
	}
	contact.Name = fields.Name
	contact.Email = fields.Email
	contact.Phone = fields.Phone
	contact.Message = fields.Message
	r.contacts[id] = contact
	return contact, nil
}

// DeleteByID removes the contact with the given id.
func (r *MemoryRepository) DeleteByID(_ context.Context, id string) (model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok {
		return model.Contact{}, ErrNotFound
	}
	delete(r.contacts, id)
	return contact, nil
}
