package job

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hirewire/job-market/internal/apperror"

	"github.com/gosimple/slug"
	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveJob(ctx context.Context, rq *JobRq, employerID string) (Job, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return Job{}, err
	}
	status := rq.Status
	if status == "" {
		status = StatusOpen
	}
	var deadline *time.Time
	if rq.Deadline != "" {
		t, err := time.Parse(time.RFC3339, rq.Deadline)
		if err != nil {
			return Job{}, apperror.Validation("deadline", "deadline must be a RFC3339 timestamp")
		}
		deadline = &t
	}
	requirements := Requirements{Questions: rq.SupplementalQuestions}
	requirementsJSON, err := json.Marshal(requirements)
	if err != nil {
		return Job{}, err
	}
	now := time.Now().UTC()
	j := Job{
		ID:           id.String(),
		EmployerID:   employerID,
		Title:        rq.Title,
		Company:      rq.Company,
		Location:     rq.Location,
		Description:  rq.Description,
		SalaryRange:  rq.SalaryRange,
		Requirements: requirements,
		Status:       status,
		Slug:         slug.Make(fmt.Sprintf("%s %s %d", rq.Title, rq.Company, now.Unix())),
		Deadline:     deadline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO job (id, employer_id, title, company, location, description, salary_range, requirements, status, slug, deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		j.ID,
		sql.NullString{String: j.EmployerID, Valid: j.EmployerID != ""},
		j.Title,
		j.Company,
		j.Location,
		j.Description,
		j.SalaryRange,
		requirementsJSON,
		j.Status,
		j.Slug,
		j.Deadline,
		j.CreatedAt,
		j.UpdatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	return j, nil
}

func (r *Repository) JobByID(ctx context.Context, id string) (Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, employer_id, title, company, location, description, salary_range, requirements, status, slug, deadline, created_at, updated_at FROM job WHERE id = $1`, id)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return Job{}, apperror.NotFound("job not found")
	}
	if err != nil {
		return Job{}, err
	}
	return j, nil
}

// filterClause builds the WHERE clause for the deadline filter. Urgent,
// week and month are windows from now, no_deadline matches only jobs
// without one, and the unfiltered listing hides already-expired deadlines
// unless showExpired is set.
func filterClause(params ListParams) string {
	where := `status = 'open'`
	switch params.Filter {
	case FilterUrgent:
		where += ` AND deadline IS NOT NULL AND deadline >= NOW() AND deadline < NOW() + INTERVAL '3 DAYS'`
	case FilterWeek:
		where += ` AND deadline IS NOT NULL AND deadline >= NOW() AND deadline < NOW() + INTERVAL '7 DAYS'`
	case FilterMonth:
		where += ` AND deadline IS NOT NULL AND deadline >= NOW() AND deadline < NOW() + INTERVAL '30 DAYS'`
	case FilterNoDeadline:
		where += ` AND deadline IS NULL`
	default:
		if !params.ShowExpired {
			where += ` AND (deadline IS NULL OR deadline >= NOW())`
		}
	}
	return where
}

// orderClause maps the sort parameter to its ORDER BY expression. Deadline
// sorts always push jobs without a deadline last.
func orderClause(sort string) string {
	switch sort {
	case SortDeadlineDesc:
		return `deadline DESC NULLS LAST`
	case SortRecent:
		return `created_at DESC`
	case SortAlphabetical:
		return `title ASC`
	default:
		return `deadline ASC NULLS LAST`
	}
}

// OpenJobs lists open jobs honouring the deadline filter and sort order.
func (r *Repository) OpenJobs(ctx context.Context, params ListParams) ([]Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, employer_id, title, company, location, description, salary_range, requirements, status, slug, deadline, created_at, updated_at FROM job WHERE `+filterClause(params)+` ORDER BY `+orderClause(params.Sort))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return jobs, err
	}
	return jobs, nil
}

func (r *Repository) JobsByEmployer(ctx context.Context, employerID string) ([]Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, employer_id, title, company, location, description, salary_range, requirements, status, slug, deadline, created_at, updated_at FROM job WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return jobs, err
	}
	return jobs, nil
}

// UpdateJobStatus is recruiter driven and unconstrained between the three
// job states.
func (r *Repository) UpdateJobStatus(ctx context.Context, jobID, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE job SET status = $1, updated_at = NOW() WHERE id = $2`, status, jobID)
	return err
}

func (r *Repository) NewJobsLastWeekOrMonth(ctx context.Context) (int, int, error) {
	var week, month int
	row := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 DAYS') AS week,
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '30 DAYS') AS month
		FROM job WHERE status = 'open'`)
	if err := row.Scan(&week, &month); err != nil {
		return 0, 0, err
	}
	return week, month, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (Job, error) {
	j := Job{}
	var employerID sql.NullString
	var deadline sql.NullTime
	var requirementsJSON []byte
	err := row.Scan(
		&j.ID,
		&employerID,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.Description,
		&j.SalaryRange,
		&requirementsJSON,
		&j.Status,
		&j.Slug,
		&deadline,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return j, err
	}
	if employerID.Valid {
		j.EmployerID = employerID.String
	}
	if deadline.Valid {
		t := deadline.Time
		j.Deadline = &t
	}
	if len(requirementsJSON) > 0 {
		if err := json.Unmarshal(requirementsJSON, &j.Requirements); err != nil {
			return j, err
		}
	}
	return j, nil
}
