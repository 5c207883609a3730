package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KENZY004/contact-management/internal/model"
)

func sampleContacts() []model.Contact {
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	return []model.Contact{
		{ID: "1", Name: "Carla", Email: "carla@ex.com", Phone: "1112223333", CreatedAt: base},
		{ID: "2", Name: "aaron", Email: "aaron@ex.com", Phone: "2223334444", Message: "likes golf", CreatedAt: base.Add(time.Hour)},
		{ID: "3", Name: "Berta", Email: "berta@ex.com", Phone: "3334445555", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func ids(contacts []model.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, contact.ID)
	}
	return out
}

func TestDefaultProjectionIsDateDescending(t *testing.T) {
	projection := DefaultProjection()
	result := projection.Apply(sampleContacts())
	assert.Equal(t, []string{"3", "2", "1"}, ids(result))
}

func TestFilterIsCaseInsensitiveAcrossFields(t *testing.T) {
	projection := DefaultProjection()

	projection.Query = "CARLA"
	assert.Equal(t, []string{"1"}, ids(projection.Apply(sampleContacts())))

	projection.Query = "berta@"
	assert.Equal(t, []string{"3"}, ids(projection.Apply(sampleContacts())))

	projection.Query = "222333"
	assert.Equal(t, []string{"2"}, ids(projection.Apply(sampleContacts())))

	// Message is only searched when present.
	projection.Query = "GOLF"
	assert.Equal(t, []string{"2"}, ids(projection.Apply(sampleContacts())))

	projection.Query = ""
	assert.Len(t, projection.Apply(sampleContacts()), 3)
}

func TestSortByNameIsLocaleAware(t *testing.T) {
	projection := Projection{Key: SortByName, Order: SortAscending}
	result := projection.Apply(sampleContacts())
	// Case does not split the order the way code points would.
	assert.Equal(t, []string{"2", "3", "1"}, ids(result))
}

func TestToggleRules(t *testing.T) {
	projection := DefaultProjection()

	// Clicking the active key toggles the direction.
	projection.Toggle(SortByDate)
	assert.Equal(t, SortByDate, projection.Key)
	assert.Equal(t, SortAscending, projection.Order)

	// Clicking a different key switches and resets to ascending.
	projection.Toggle(SortByName)
	assert.Equal(t, SortByName, projection.Key)
	assert.Equal(t, SortAscending, projection.Order)

	projection.Toggle(SortByName)
	assert.Equal(t, SortDescending, projection.Order)
}

func TestApplyIsIdempotent(t *testing.T) {
	projection := Projection{Query: "ex.com", Key: SortByEmail, Order: SortDescending}
	once := projection.Apply(sampleContacts())
	twice := projection.Apply(once)
	assert.Equal(t, ids(once), ids(twice))
}

func TestDoubleToggleRestoresOrder(t *testing.T) {
	projection := DefaultProjection()
	before := ids(projection.Apply(sampleContacts()))
	projection.Toggle(SortByDate)
	projection.Toggle(SortByDate)
	after := ids(projection.Apply(sampleContacts()))
	assert.Equal(t, before, after)
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	contacts := sampleContacts()
	projection := Projection{Key: SortByName, Order: SortAscending}
	projection.Apply(contacts)
	assert.Equal(t, []string{"1", "2", "3"}, ids(contacts))
}
