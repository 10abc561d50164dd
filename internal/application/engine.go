package application

import (
	"context"
	"fmt"
	"time"

	"github.com/hirewire/job-market/internal/apperror"
	"github.com/hirewire/job-market/internal/candidate"
	"github.com/hirewire/job-market/internal/job"

	"github.com/segmentio/ksuid"
)

// Store is the persistence surface the engine needs. Create must surface
// a unique-constraint violation on (job_id, candidate_id) as a DUPLICATE
// typed error so the engine can answer idempotently.
type Store interface {
	Create(ctx context.Context, app *Application) error
	ByID(ctx context.Context, id string) (Application, error)
	ByJobAndCandidate(ctx context.Context, jobID, candidateID string) (Application, error)
	SetStatus(ctx context.Context, id string, status Status) (Application, error)
	ForJob(ctx context.Context, jobID string) ([]ApplicantRecord, error)
	ForCandidate(ctx context.Context, candidateID string) ([]CandidateApplication, error)
}

type JobStore interface {
	JobByID(ctx context.Context, id string) (job.Job, error)
}

type ProfileStore interface {
	ProfileByUserID(ctx context.Context, userID string) (*candidate.Profile, error)
}

// Notifier lets the engine tell a candidate their application moved.
// Failures are logged by the caller and never block the write path.
type Notifier func(toEmail, jobTitle, company string, newStatus Status) error

// Engine mediates creation and status mutation of applications, enforcing
// authorization, uniqueness and supplemental-answer validation.
type Engine struct {
	store    Store
	jobs     JobStore
	profiles ProfileStore
	notify   Notifier
}

func NewEngine(store Store, jobs JobStore, profiles ProfileStore, notify Notifier) *Engine {
	return &Engine{store: store, jobs: jobs, profiles: profiles, notify: notify}
}

// Apply creates an application for the caller. A second apply for the same
// job is an idempotent no-op: the existing application is returned with
// created=false and its current status intact.
func (e *Engine) Apply(ctx context.Context, candidateID string, rq ApplyRq) (Application, bool, error) {
	if candidateID == "" {
		return Application{}, false, apperror.Unauthenticated()
	}
	if rq.JobID == "" {
		return Application{}, false, apperror.Validation("job_id", "job_id is required")
	}
	j, err := e.jobs.JobByID(ctx, rq.JobID)
	if err != nil {
		return Application{}, false, err
	}
	if j.Status != job.StatusOpen {
		return Application{}, false, apperror.NotFound("job is not open for applications")
	}
	if err := validateRequiredAnswers(j.Requirements, rq.SupplementalAnswers); err != nil {
		return Application{}, false, err
	}

	var resumeURL string
	profile, err := e.profiles.ProfileByUserID(ctx, candidateID)
	if err != nil {
		return Application{}, false, err
	}
	if profile != nil {
		resumeURL = profile.ResumeURL
	}

	id, err := ksuid.NewRandom()
	if err != nil {
		return Application{}, false, err
	}
	now := time.Now().UTC()
	app := Application{
		ID:                  id.String(),
		JobID:               rq.JobID,
		CandidateID:         candidateID,
		Status:              StatusApplied,
		ResumeURL:           resumeURL,
		CoverLetter:         rq.CoverLetter,
		SupplementalAnswers: rq.SupplementalAnswers,
		AppliedAt:           now,
		UpdatedAt:           now,
	}
	err = e.store.Create(ctx, &app)
	if err == nil {
		app.StatusDisplay = app.Status.Display()
		return app, true, nil
	}
	if apperror.KindOf(err) != apperror.KindDuplicate {
		return Application{}, false, err
	}
	// lost the race or re-applied: report the stored application as-is
	existing, err := e.store.ByJobAndCandidate(ctx, rq.JobID, candidateID)
	if err != nil {
		return Application{}, false, err
	}
	existing.StatusDisplay = existing.Status.Display()
	return existing, false, nil
}

// UpdateStatus moves an application to any of the six recognised statuses.
// Only the recruiter owning the parent job may do so.
func (e *Engine) UpdateStatus(ctx context.Context, callerID, applicationID, newStatus string) (Application, error) {
	if callerID == "" {
		return Application{}, apperror.Unauthenticated()
	}
	status, ok := ParseStatus(newStatus)
	if !ok {
		return Application{}, apperror.Validation("status", fmt.Sprintf("%q is not a recognised status", newStatus))
	}
	app, err := e.store.ByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	j, err := e.jobs.JobByID(ctx, app.JobID)
	if err != nil {
		return Application{}, err
	}
	if j.EmployerID == "" || j.EmployerID != callerID {
		return Application{}, apperror.Forbidden("only the recruiter owning this job can update applications")
	}
	updated, err := e.store.SetStatus(ctx, applicationID, status)
	if err != nil {
		return Application{}, err
	}
	updated.StatusDisplay = updated.Status.Display()
	if e.notify != nil {
		if profile, perr := e.profiles.ProfileByUserID(ctx, updated.CandidateID); perr == nil && profile != nil {
			// notification is best effort, the status change already landed
			_ = e.notify(profile.Email, j.Title, j.Company, status)
		}
	}
	return updated, nil
}

// ApplicantsForJob lists a job's applications with each candidate's current
// profile snapshot. Only the owning recruiter may read them.
func (e *Engine) ApplicantsForJob(ctx context.Context, callerID, jobID string) ([]ApplicantRecord, error) {
	if callerID == "" {
		return nil, apperror.Unauthenticated()
	}
	j, err := e.jobs.JobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID == "" || j.EmployerID != callerID {
		return nil, apperror.Forbidden("only the recruiter owning this job can list applications")
	}
	records, err := e.store.ForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].StatusDisplay = records[i].Status.Display()
	}
	return records, nil
}

// OwnApplications lists the caller's applications joined with their jobs.
func (e *Engine) OwnApplications(ctx context.Context, candidateID string) ([]CandidateApplication, error) {
	if candidateID == "" {
		return nil, apperror.Unauthenticated()
	}
	apps, err := e.store.ForCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		apps[i].StatusDisplay = apps[i].Status.Display()
	}
	return apps, nil
}

func validateRequiredAnswers(req job.Requirements, answers map[string]string) error {
	for _, q := range req.Questions {
		if !q.Required {
			continue
		}
		answer, ok := answers[q.ID]
		if !ok || answer == "" {
			return apperror.Validation(q.ID, fmt.Sprintf("answer to required question %q is missing", q.ID))
		}
	}
	return nil
}
