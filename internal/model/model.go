package model

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Contact is the data structure for a person captured through the contact
// form. The id is assigned by the repository at creation time and never
// changes afterwards, as is CreatedAt. Message is the only optional field.
type Contact struct {
	ID        string    `json:"id"                db:"id"`
	Name      string    `json:"name"              db:"name"`
	Email     string    `json:"email"             db:"email"`
	Phone     string    `json:"phone"             db:"phone"`
	Message   string    `json:"message,omitempty" db:"message"`
	CreatedAt time.Time `json:"createdAt"         db:"created_at"`
}

// Fields holds the four mutable contact fields as submitted by a client,
// before ids and timestamps come into play.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// idPattern matches the 24-character hexadecimal id encoding used by all
// repository backends.
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ValidID reports whether s has the shape of a contact id. Ids that fail
// this check are rejected before any lookup is attempted.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}

// NewID returns a fresh 24-character hexadecimal id. Every backend uses
// this generator so that ids look the same regardless of the store.
func NewID() string {
	return bson.NewObjectID().Hex()
}
