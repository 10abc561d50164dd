package application

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/hirewire/job-market/internal/apperror"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// Create inserts the application row. Two concurrent applies for the same
// (job, candidate) race on the unique index, the loser's duplicate-key
// error comes back as a typed DUPLICATE.
func (r *Repository) Create(ctx context.Context, app *Application) error {
	answersJSON, err := json.Marshal(app.SupplementalAnswers)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO application (id, job_id, candidate_id, status, resume_url, cover_letter, supplemental_answers, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		app.ID,
		app.JobID,
		app.CandidateID,
		string(app.Status),
		app.ResumeURL,
		app.CoverLetter,
		answersJSON,
		app.AppliedAt,
		app.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return apperror.Duplicate("already applied to this job")
	}
	return err
}

func (r *Repository) ByID(ctx context.Context, id string) (Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, job_id, candidate_id, status, resume_url, cover_letter, supplemental_answers, applied_at, updated_at FROM application WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return Application{}, apperror.NotFound("application not found")
	}
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

func (r *Repository) ByJobAndCandidate(ctx context.Context, jobID, candidateID string) (Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, job_id, candidate_id, status, resume_url, cover_letter, supplemental_answers, applied_at, updated_at FROM application WHERE job_id = $1 AND candidate_id = $2`, jobID, candidateID)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return Application{}, apperror.NotFound("application not found")
	}
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

func (r *Repository) SetStatus(ctx context.Context, id string, status Status) (Application, error) {
	row := r.db.QueryRowContext(
		ctx,
		`UPDATE application SET status = $1, updated_at = NOW() WHERE id = $2
		RETURNING id, job_id, candidate_id, status, resume_url, cover_letter, supplemental_answers, applied_at, updated_at`,
		string(status),
		id,
	)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return Application{}, apperror.NotFound("application not found")
	}
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

// ForJob joins each application with the candidate's profile at read time.
func (r *Repository) ForJob(ctx context.Context, jobID string) ([]ApplicantRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.resume_url, a.cover_letter, a.supplemental_answers, a.applied_at, a.updated_at,
			p.name, p.email, p.phone, p.resume_url, p.linkedin_url, p.github_url, p.portfolio_url, p.offer_deadline
		FROM application a
		LEFT JOIN candidate_profile p ON p.user_id = a.candidate_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := []ApplicantRecord{}
	for rows.Next() {
		rec := ApplicantRecord{}
		var answersJSON []byte
		var name, email, phone, resumeURL, linkedinURL, githubURL, portfolioURL sql.NullString
		var offerDeadline sql.NullTime
		err := rows.Scan(
			&rec.ID,
			&rec.JobID,
			&rec.CandidateID,
			&rec.Status,
			&rec.ResumeURL,
			&rec.CoverLetter,
			&answersJSON,
			&rec.AppliedAt,
			&rec.UpdatedAt,
			&name,
			&email,
			&phone,
			&resumeURL,
			&linkedinURL,
			&githubURL,
			&portfolioURL,
			&offerDeadline,
		)
		if err != nil {
			return records, err
		}
		if len(answersJSON) > 0 {
			if err := json.Unmarshal(answersJSON, &rec.SupplementalAnswers); err != nil {
				return records, err
			}
		}
		if name.Valid {
			snapshot := &CandidateSnapshot{
				Name:         name.String,
				Email:        email.String,
				Phone:        phone.String,
				ResumeURL:    resumeURL.String,
				LinkedinURL:  linkedinURL.String,
				GithubURL:    githubURL.String,
				PortfolioURL: portfolioURL.String,
			}
			if offerDeadline.Valid {
				t := offerDeadline.Time
				snapshot.OfferDeadline = &t
			}
			rec.Candidate = snapshot
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return records, err
	}
	return records, nil
}

func (r *Repository) ForCandidate(ctx context.Context, candidateID string) ([]CandidateApplication, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.resume_url, a.cover_letter, a.supplemental_answers, a.applied_at, a.updated_at,
			j.title, j.company, j.status
		FROM application a
		JOIN job j ON j.id = a.job_id
		WHERE a.candidate_id = $1
		ORDER BY a.applied_at DESC`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apps := []CandidateApplication{}
	for rows.Next() {
		app := CandidateApplication{}
		var answersJSON []byte
		err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.CandidateID,
			&app.Status,
			&app.ResumeURL,
			&app.CoverLetter,
			&answersJSON,
			&app.AppliedAt,
			&app.UpdatedAt,
			&app.JobTitle,
			&app.Company,
			&app.JobStatus,
		)
		if err != nil {
			return apps, err
		}
		if len(answersJSON) > 0 {
			if err := json.Unmarshal(answersJSON, &app.SupplementalAnswers); err != nil {
				return apps, err
			}
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return apps, err
	}
	return apps, nil
}

func scanApplication(row *sql.Row) (Application, error) {
	app := Application{}
	var answersJSON []byte
	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.CandidateID,
		&app.Status,
		&app.ResumeURL,
		&app.CoverLetter,
		&answersJSON,
		&app.AppliedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return app, err
	}
	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &app.SupplementalAnswers); err != nil {
			return app, err
		}
	}
	return app, nil
}
