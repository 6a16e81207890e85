package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agence-lumen/website-api/internal/entity"
)

// SubmissionsRepository declares persistence for contact form submissions.
// The table is append-only: insert is the only operation this pipeline ever
// performs.
type SubmissionsRepository interface {
	Insert(ctx context.Context, submission *entity.ContactSubmission) error
}

// pgxPool is the subset of pgxpool.Pool the repository needs, extracted so
// tests can stub the database.
type pgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXSubmissionsRepository implements SubmissionsRepository with pgx.
type PGXSubmissionsRepository struct {
	pool pgxPool
}

// NewPGXSubmissionsRepository instantiates a submissions repository.
func NewPGXSubmissionsRepository(pool *pgxpool.Pool) *PGXSubmissionsRepository {
	return &PGXSubmissionsRepository{pool: pool}
}

// Insert writes one submission row and fills in the generated id and
// timestamp. Empty optionals are stored as NULL; an empty service selection
// is stored as NULL rather than an empty array.
func (r *PGXSubmissionsRepository) Insert(ctx context.Context, submission *entity.ContactSubmission) error {
	if submission == nil {
		return fmt.Errorf("submission payload is nil")
	}

	var services any
	if len(submission.Services) > 0 {
		services = submission.Services
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO contact_submissions (first_name, last_name, email, phone, company_name, services, message)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `, submission.FirstName, submission.LastName, submission.Email, submission.Phone,
		submission.CompanyName, services, submission.Message)

	if err := row.Scan(&submission.ID, &submission.CreatedAt); err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}
