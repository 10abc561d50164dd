package candidate

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// ProfileByUserID returns nil without error when the user has no profile
// yet, absence is not a failure.
func (r *Repository) ProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, name, email, phone, education, resume_url, skills, experience, certifications, linkedin_url, github_url, portfolio_url, offer_deadline, created_at, updated_at FROM candidate_profile WHERE user_id = $1`, userID)
	p := Profile{}
	var skills pq.StringArray
	var experienceJSON, certificationsJSON []byte
	var offerDeadline sql.NullTime
	err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Education,
		&p.ResumeURL,
		&skills,
		&experienceJSON,
		&certificationsJSON,
		&p.LinkedinURL,
		&p.GithubURL,
		&p.PortfolioURL,
		&offerDeadline,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Skills = skills
	if len(experienceJSON) > 0 {
		if err := json.Unmarshal(experienceJSON, &p.Experience); err != nil {
			return nil, err
		}
	}
	if len(certificationsJSON) > 0 {
		if err := json.Unmarshal(certificationsJSON, &p.Certifications); err != nil {
			return nil, err
		}
	}
	if offerDeadline.Valid {
		t := offerDeadline.Time
		p.OfferDeadline = &t
	}
	return &p, nil
}

// mergeProfile applies a partial update over the stored profile, or over a
// fresh profile when none exists yet. Nil request fields keep their stored
// value, skills are taken verbatim (order preserved, never deduplicated).
func mergeProfile(existing *Profile, userID, userEmail string, rq *ProfileRq, now time.Time) (Profile, error) {
	p := Profile{
		UserID:         userID,
		Email:          userEmail,
		Skills:         []string{},
		Experience:     []ExperienceEntry{},
		Certifications: []Certification{},
		CreatedAt:      now,
	}
	if existing != nil {
		p = *existing
	}
	if rq.Name != nil {
		p.Name = *rq.Name
	}
	if rq.Email != nil {
		p.Email = *rq.Email
	}
	if rq.Phone != nil {
		p.Phone = *rq.Phone
	}
	if rq.Education != nil {
		p.Education = *rq.Education
	}
	if rq.Skills != nil {
		p.Skills = *rq.Skills
	}
	if rq.Experience != nil {
		p.Experience = *rq.Experience
	}
	if rq.Certifications != nil {
		p.Certifications = *rq.Certifications
	}
	if rq.LinkedinURL != nil {
		p.LinkedinURL = *rq.LinkedinURL
	}
	if rq.GithubURL != nil {
		p.GithubURL = *rq.GithubURL
	}
	if rq.PortfolioURL != nil {
		p.PortfolioURL = *rq.PortfolioURL
	}
	if rq.OfferDeadline != nil {
		if *rq.OfferDeadline == "" {
			p.OfferDeadline = nil
		} else {
			t, err := time.Parse(time.RFC3339, *rq.OfferDeadline)
			if err != nil {
				return Profile{}, err
			}
			p.OfferDeadline = &t
		}
	}
	p.UpdatedAt = now
	return p, nil
}

// UpsertProfile creates the profile on first save and applies a partial
// update afterwards. Validation happens before this is called.
func (r *Repository) UpsertProfile(ctx context.Context, userID, userEmail string, rq *ProfileRq) (*Profile, error) {
	existing, err := r.ProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := mergeProfile(existing, userID, userEmail, rq, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	experienceJSON, err := json.Marshal(p.Experience)
	if err != nil {
		return nil, err
	}
	certificationsJSON, err := json.Marshal(p.Certifications)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO candidate_profile (user_id, name, email, phone, education, resume_url, skills, experience, certifications, linkedin_url, github_url, portfolio_url, offer_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			education = EXCLUDED.education,
			resume_url = EXCLUDED.resume_url,
			skills = EXCLUDED.skills,
			experience = EXCLUDED.experience,
			certifications = EXCLUDED.certifications,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			portfolio_url = EXCLUDED.portfolio_url,
			offer_deadline = EXCLUDED.offer_deadline,
			updated_at = EXCLUDED.updated_at`,
		p.UserID,
		p.Name,
		p.Email,
		p.Phone,
		p.Education,
		p.ResumeURL,
		pq.StringArray(p.Skills),
		experienceJSON,
		certificationsJSON,
		p.LinkedinURL,
		p.GithubURL,
		p.PortfolioURL,
		p.OfferDeadline,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) UpdateResumeURL(ctx context.Context, userID, resumeURL string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE candidate_profile SET resume_url = $1, updated_at = NOW() WHERE user_id = $2`, resumeURL, userID)
	return err
}
