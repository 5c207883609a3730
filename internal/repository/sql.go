package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/KENZY004/contact-management/internal/model"
)

// mysqlDuplicateEntry is the MySQL error number for a violated unique key.
const mysqlDuplicateEntry = 1062

// OpenMySQL opens a MySQL database handle for the given DSN.
func OpenMySQL(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return sqlDB, nil
}

// SQLRepository is the MySQL implementation of ContactRepository. Ids are
// generated in the application (model.NewID) so they share the 24-hex
// encoding of the document store.
type SQLRepository struct {
	db *sqlx.DB

	// Prepared statements offer a significant speed increase if executed
	// many times.
	insert         *sqlx.NamedStmt
	selectAll      *sqlx.Stmt
	selectByID     *sqlx.Stmt
	selectByEmail  *sqlx.Stmt
	selectByEmailX *sqlx.Stmt
	update         *sqlx.Stmt
	deleteByID     *sqlx.Stmt
}

var _ ContactRepository = (*SQLRepository)(nil)

// NewSQLRepository wraps the specified sql database and prepares all
// statements. The database argument can be a real database for production
// use or a mock database within unit tests.
func NewSQLRepository(sqlDB *sql.DB) (*SQLRepository, error) {
	r := &SQLRepository{db: sqlx.NewDb(sqlDB, "mysql")}

	var err error
	r.insert, err = r.db.PrepareNamed(`
		INSERT INTO contacts (id, name, email, phone, message, created_at)
		VALUES (:id, :name, :email, :phone, :message, :created_at)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	r.selectAll, err = r.db.Preparex(`
		SELECT * FROM contacts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select all: %w", err)
	}
	r.selectByID, err = r.db.Preparex(`
		SELECT * FROM contacts WHERE id=?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select by id: %w", err)
	}
	r.selectByEmail, err = r.db.Preparex(`
		SELECT * FROM contacts WHERE email=?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select by email: %w", err)
	}
	r.selectByEmailX, err = r.db.Preparex(`
		SELECT * FROM contacts WHERE email=? AND id<>?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select by email excluding: %w", err)
	}
	r.update, err = r.db.Preparex(`
		UPDATE contacts SET name=?, email=?, phone=?, message=? WHERE id=?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare update: %w", err)
	}
	r.deleteByID, err = r.db.Preparex(`
		DELETE FROM contacts WHERE id=?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	return r, nil
}

// Ping verifies the database connection.
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// List returns all contacts, newest first.
func (r *SQLRepository) List(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := r.selectAll.SelectContext(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByEmail returns the contact with the given normalized email.
func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (model.Contact, error) {
	var contact model.Contact
	err := r.selectByEmail.GetContext(ctx, &contact, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// FindByEmailExcluding returns the contact with the given normalized
// email, ignoring the contact with id excludeID.
func (r *SQLRepository) FindByEmailExcluding(ctx context.Context, email, excludeID string) (model.Contact, error) {
	var contact model.Contact
	err := r.selectByEmailX.GetContext(ctx, &contact, email, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// Create inserts a new contact row with a fresh id and the current
// timestamp.
func (r *SQLRepository) Create(ctx context.Context, fields model.Fields) (model.Contact, error) {
	contact := model.Contact{
		ID:        model.NewID(),
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Message:   fields.Message,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.insert.ExecContext(ctx, contact); err != nil {
		if isDuplicateEntry(err) {
			return model.Contact{}, ErrDuplicateEmail
		}
		return model.Contact{}, err
	}
	return contact, nil
}

// UpdateByID replaces the four mutable fields of the row with the given
// id. The row is fetched first so that a no-op update still reports the
// correct result; MySQL counts unchanged rows as zero affected.
func (r *SQLRepository) UpdateByID(ctx context.Context, id string, fields model.Fields) (model.Contact, error) {
	existing, err := r.getByID(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	_, err = r.update.ExecContext(ctx, fields.Name, fields.Email, fields.Phone, fields.Message, id)
	if err != nil {
		if isDuplicateEntry(err) {
			return model.Contact{}, ErrDuplicateEmail
		}
		return model.Contact{}, err
	}
	existing.Name = fields.Name
	existing.Email = fields.Email
	existing.Phone = fields.Phone
	existing.Message = fields.Message
	return existing, nil
}

// DeleteByID removes the row with the given id and returns the removed
// contact.
func (r *SQLRepository) DeleteByID(ctx context.Context, id string) (model.Contact, error) {
	existing, err := r.getByID(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	result, err := r.deleteByID.ExecContext(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Contact{}, err
	}
	if rowsAffected == 0 {
		return model.Contact{}, ErrNotFound
	}
	return existing, nil
}

func (r *SQLRepository) getByID(ctx context.Context, id string) (model.Contact, error) {
	var contact model.Contact
	err := r.selectByID.GetContext(ctx, &contact, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
