// Package view derives the displayed projection of the contact list: a
// case-insensitive filter followed by a stable sort, plus CSV export of
// whatever projection is currently shown.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KENZY004/contact-management/internal/model"
)

// SortKey selects the field the list is ordered by.
type SortKey int

const (
	SortByName SortKey = iota
	SortByEmail
	SortByDate
)

// SortOrder selects the direction of the sort.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// collator compares name and email the way the browser's localeCompare
// does, instead of by code point.
var collator = collate.New(language.English)

// Projection is the filter and sort state applied to the contact list.
// The zero value is not meaningful; use DefaultProjection.
type Projection struct {
	Query string
	Key   SortKey
	Order SortOrder
}

// DefaultProjection returns the initial list state: unfiltered, newest
// contacts first.
func DefaultProjection() Projection {
	return Projection{Key: SortByDate, Order: SortDescending}
}

// Toggle applies the sort-control click rules: selecting the active key
// flips the direction, selecting another key switches to it ascending.
func (p *Projection) Toggle(key SortKey) {
	if p.Key == key {
		if p.Order == SortAscending {
			p.Order = SortDescending
		} else {
			p.Order = SortAscending
		}
		return
	}
	p.Key = key
	p.Order = SortAscending
}

// Apply returns the filtered and sorted view of contacts. The input slice
// is left untouched.
func (p Projection) Apply(contacts []model.Contact) []model.Contact {
	filtered := make([]model.Contact, 0, len(contacts))
	query := strings.ToLower(p.Query)
	for _, contact := range contacts {
		if matches(contact, query) {
			filtered = append(filtered, contact)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		var comparison int
		switch p.Key {
		case SortByName:
			comparison = collator.CompareString(filtered[i].Name, filtered[j].Name)
		case SortByEmail:
			comparison = collator.CompareString(filtered[i].Email, filtered[j].Email)
		case SortByDate:
			switch {
			case filtered[i].CreatedAt.Before(filtered[j].CreatedAt):
				comparison = -1
			case filtered[i].CreatedAt.After(filtered[j].CreatedAt):
				comparison = 1
			}
		}
		if p.Order == SortDescending {
			comparison = -comparison
		}
		return comparison < 0
	})
	return filtered
}

// matches reports whether the query appears in any displayed field. The
// message is only searched when present. An empty query matches
// everything.
func matches(contact model.Contact, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(contact.Name), query) ||
		strings.Contains(strings.ToLower(contact.Email), query) ||
		strings.Contains(contact.Phone, query) {
		return true
	}
	return contact.Message != "" && strings.Contains(strings.ToLower(contact.Message), query)
}
