// Package contact implements the contact repository using PostgreSQL.
// Phones live in a child table and are replaced wholesale on update, mirroring
// how snapshots treat the phone collection.
package contact

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmkorzh/contacts-backend/internal/adapter/postgres"
	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides contact persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contact repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a contact with its phones by primary key.
// Returns domain.ErrNotFound if the contact does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	query, args, err := psql.Select("id", "name", "email", "company", "notes", "created_at", "updated_at").
		From("contacts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select contact: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Contact
	err = q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Email, &c.Company, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "contact", id)
	}

	phones, err := r.loadPhones(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Phones = phones

	return &c, nil
}

// List returns contacts ordered by name ASC with pagination, phones included.
// Returns contacts, total count, and error.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.Contact, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var totalCount int
	if err := q.QueryRow(ctx, `SELECT count(*) FROM contacts`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	query, args, err := psql.Select("id", "name", "email", "company", "notes", "created_at", "updated_at").
		From("contacts").
		OrderBy("name ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list contacts: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contacts: %w", err)
	}

	for _, c := range contacts {
		phones, err := r.loadPhones(ctx, c.ID)
		if err != nil {
			return nil, 0, err
		}
		c.Phones = phones
	}

	return contacts, totalCount, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a contact and its phones.
func (r *Repo) Create(ctx context.Context, c *domain.Contact) error {
	query, args, err := psql.Insert("contacts").
		Columns("id", "name", "email", "company", "notes", "created_at", "updated_at").
		Values(c.ID, c.Name, c.Email, c.Company, c.Notes, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert contact: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "contact", c.ID)
	}

	return r.insertPhones(ctx, c.ID, c.Phones)
}

// Update rewrites the contact's scalar fields and replaces its phones
// wholesale. Returns domain.ErrNotFound if the contact does not exist.
func (r *Repo) Update(ctx context.Context, c *domain.Contact) error {
	query, args, err := psql.Update("contacts").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("company", c.Company).
		Set("notes", c.Notes).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update contact: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "contact", c.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", c.ID, domain.ErrNotFound)
	}

	if _, err := q.Exec(ctx, `DELETE FROM contact_phones WHERE contact_id = $1`, c.ID); err != nil {
		return fmt.Errorf("delete contact phones: %w", err)
	}

	return r.insertPhones(ctx, c.ID, c.Phones)
}

// Delete removes a contact; phones cascade. Returns domain.ErrNotFound if
// the contact does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "contact", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Phones
// ---------------------------------------------------------------------------

func (r *Repo) loadPhones(ctx context.Context, contactID uuid.UUID) ([]domain.Phone, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT label, number FROM contact_phones WHERE contact_id = $1 ORDER BY position`,
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contact phones: %w", err)
	}
	defer rows.Close()

	var phones []domain.Phone
	for rows.Next() {
		var p domain.Phone
		if err := rows.Scan(&p.Label, &p.Number); err != nil {
			return nil, fmt.Errorf("scan contact phone: %w", err)
		}
		phones = append(phones, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact phones: %w", err)
	}

	return phones, nil
}

func (r *Repo) insertPhones(ctx context.Context, contactID uuid.UUID, phones []domain.Phone) error {
	if len(phones) == 0 {
		return nil
	}

	builder := psql.Insert("contact_phones").Columns("contact_id", "position", "label", "number")
	for i, p := range phones {
		builder = builder.Values(contactID, i, p.Label, p.Number)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert phones: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "contact", contactID)
	}

	return nil
}
