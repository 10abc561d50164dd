package recruiter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hirewire/job-market/internal/apperror"

	"github.com/gosimple/slug"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) RecruiterProfileByUserID(ctx context.Context, userID string) (Recruiter, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, name, email, company_name, job_title, phone, company_url, slug, created_at, updated_at FROM recruiter_profile WHERE user_id = $1`, userID)
	obj := Recruiter{}
	err := row.Scan(
		&obj.UserID,
		&obj.Name,
		&obj.Email,
		&obj.CompanyName,
		&obj.JobTitle,
		&obj.Phone,
		&obj.CompanyURL,
		&obj.Slug,
		&obj.CreatedAt,
		&obj.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return Recruiter{}, apperror.NotFound("recruiter profile not found")
	}
	if err != nil {
		return Recruiter{}, err
	}
	return obj, nil
}

// SaveRecruiterProfile creates the profile exactly once per user. A second
// create is a hard DUPLICATE, unlike application-create it is never
// treated as idempotent success.
func (r *Repository) SaveRecruiterProfile(ctx context.Context, obj Recruiter) (Recruiter, error) {
	now := time.Now().UTC()
	obj.Slug = slug.Make(fmt.Sprintf("%s %d", obj.Name, now.Unix()))
	obj.CreatedAt = now
	obj.UpdatedAt = now
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO recruiter_profile (user_id, name, email, company_name, job_title, phone, company_url, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		obj.UserID,
		obj.Name,
		obj.Email,
		obj.CompanyName,
		obj.JobTitle,
		obj.Phone,
		obj.CompanyURL,
		obj.Slug,
		obj.CreatedAt,
		obj.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return Recruiter{}, apperror.Duplicate("recruiter profile already exists")
	}
	if err != nil {
		return Recruiter{}, err
	}
	return obj, nil
}
