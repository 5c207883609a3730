package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/KENZY004/contact-management/internal/model"
)

// createMockRepository builds a repository on top of a mock database and
// registers the expectations for the prepared statements.
func createMockRepository(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	mock.ExpectPrepare("INSERT INTO contacts")
	mock.ExpectPrepare("SELECT \\* FROM contacts ORDER BY created_at DESC")
	mock.ExpectPrepare("SELECT \\* FROM contacts WHERE id=")
	mock.ExpectPrepare("SELECT \\* FROM contacts WHERE email=")
	mock.ExpectPrepare("SELECT \\* FROM contacts WHERE email=. AND id<>")
	mock.ExpectPrepare("UPDATE contacts SET")
	mock.ExpectPrepare("DELETE FROM contacts WHERE id=")
	repo, err := NewSQLRepository(db)
	if err != nil {
		t.Fatalf("unexpected error preparing statements: %s", err)
	}
	return repo, mock, db
}

func contactColumns() []string {
	return []string{"id", "name", "email", "phone", "message", "created_at"}
}

func TestSQLList(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	newer := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	rows := mock.NewRows(contactColumns()).
		AddRow("aaaaaaaaaaaaaaaaaaaaaaab", "Bob", "bob@ex.com", "2345678901", "", newer).
		AddRow("aaaaaaaaaaaaaaaaaaaaaaaa", "Ann", "ann@ex.com", "1234567890", "hi", older)
	mock.ExpectQuery("SELECT \\* FROM contacts ORDER BY created_at DESC").
		WillReturnRows(rows)

	contacts, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, "Bob", contacts[0].Name)
	assert.Equal(t, "ann@ex.com", contacts[1].Email)
	assert.Equal(t, "hi", contacts[1].Message)
	assert.Equal(t, older, contacts[1].CreatedAt)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLCreate(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO contacts").
		WithArgs(sqlmock.AnyArg(), "Ann", "ann@ex.com", "1234567890", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	contact, err := repo.Create(context.Background(), model.Fields{
		Name: "Ann", Email: "ann@ex.com", Phone: "1234567890",
	})
	assert.NoError(t, err)
	assert.True(t, model.ValidID(contact.ID))
	assert.Equal(t, "Ann", contact.Name)
	assert.False(t, contact.CreatedAt.IsZero())

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLCreateDuplicateEmail(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO contacts").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), model.Fields{
		Name: "Ann", Email: "ann@ex.com", Phone: "1234567890",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLFindByEmail(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	created := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM contacts WHERE email=").
		WithArgs("ann@ex.com").
		WillReturnRows(mock.NewRows(contactColumns()).
			AddRow("aaaaaaaaaaaaaaaaaaaaaaaa", "Ann", "ann@ex.com", "1234567890", "", created))

	contact, err := repo.FindByEmail(context.Background(), "ann@ex.com")
	assert.NoError(t, err)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", contact.ID)

	mock.ExpectQuery("SELECT \\* FROM contacts WHERE email=").
		WithArgs("nobody@ex.com").
		WillReturnRows(mock.NewRows(contactColumns()))

	_, err = repo.FindByEmail(context.Background(), "nobody@ex.com")
	assert.ErrorIs(t, err, ErrNotFound)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLUpdate(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	id := "aaaaaaaaaaaaaaaaaaaaaaaa"
	created := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM contacts WHERE id=").
		WithArgs(id).
		WillReturnRows(mock.NewRows(contactColumns()).
			AddRow(id, "Ann", "ann@ex.com", "1234567890", "", created))
	mock.ExpectExec("UPDATE contacts SET").
		WithArgs("Ann B", "annb@ex.com", "9876543210", "new", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateByID(context.Background(), id, model.Fields{
		Name: "Ann B", Email: "annb@ex.com", Phone: "9876543210", Message: "new",
	})
	assert.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "annb@ex.com", updated.Email)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLUpdateNotFound(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	id := "ffffffffffffffffffffffff"
	mock.ExpectQuery("SELECT \\* FROM contacts WHERE id=").
		WithArgs(id).
		WillReturnRows(mock.NewRows(contactColumns()))

	_, err := repo.UpdateByID(context.Background(), id, model.Fields{
		Name: "Ann", Email: "ann@ex.com", Phone: "1234567890",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLDelete(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	id := "aaaaaaaaaaaaaaaaaaaaaaaa"
	created := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM contacts WHERE id=").
		WithArgs(id).
		WillReturnRows(mock.NewRows(contactColumns()).
			AddRow(id, "Ann", "ann@ex.com", "1234567890", "", created))
	mock.ExpectExec("DELETE FROM contacts WHERE id=").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.DeleteByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "Ann", removed.Name)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLDeleteNotFound(t *testing.T) {
	repo, mock, db := createMockRepository(t)
	defer db.Close()

	id := "ffffffffffffffffffffffff"
	mock.ExpectQuery("SELECT \\* FROM contacts WHERE id=").
		WithArgs(id).
		WillReturnRows(mock.NewRows(contactColumns()))

	_, err := repo.DeleteByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
