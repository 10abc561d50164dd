package application

import (
	"strings"
	"time"
)

// Status is the single canonical representation of an application's
// position in the pipeline. Storage always uses the lower-snake form,
// presentation goes through Display.
type Status string

const (
	StatusApplied     Status = "applied"
	StatusUnderReview Status = "under_review"
	StatusInterview   Status = "interview"
	StatusOffer       Status = "offer"
	StatusHired       Status = "hired"
	StatusRejected    Status = "rejected"
)

var displayNames = map[Status]string{
	StatusApplied:     "Applied",
	StatusUnderReview: "Under Review",
	StatusInterview:   "Interview",
	StatusOffer:       "Offer",
	StatusHired:       "Hired",
	StatusRejected:    "Rejected",
}

// ParseStatus normalises any recognised spelling ("Interview",
// "Under Review", "under_review") to the canonical form.
func ParseStatus(s string) (Status, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	status := Status(norm)
	if _, ok := displayNames[status]; !ok {
		return "", false
	}
	return status, true
}

func (s Status) Display() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

// PipelineOrder is the conventional presentation order. It is not an
// enforced state machine, any status may follow any other.
func PipelineOrder() []Status {
	return []Status{StatusApplied, StatusUnderReview, StatusInterview, StatusOffer, StatusHired, StatusRejected}
}

type Application struct {
	ID                  string            `json:"id"`
	JobID               string            `json:"job_id"`
	CandidateID         string            `json:"candidate_id"`
	Status              Status            `json:"status"`
	StatusDisplay       string            `json:"status_display,omitempty"`
	ResumeURL           string            `json:"resume_url,omitempty"`
	CoverLetter         string            `json:"cover_letter,omitempty"`
	SupplementalAnswers map[string]string `json:"supplemental_answers,omitempty"`
	AppliedAt           time.Time         `json:"applied_at"`
	UpdatedAt           time.Time         `json:"updated_at"`

	TimeAgo string `json:"time_ago,omitempty"`
}

// CandidateSnapshot is the applicant's profile joined at read time. It is
// never cached or materialised, recruiters always see current data.
type CandidateSnapshot struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	ResumeURL     string     `json:"resume_url,omitempty"`
	LinkedinURL   string     `json:"linkedin_url,omitempty"`
	GithubURL     string     `json:"github_url,omitempty"`
	PortfolioURL  string     `json:"portfolio_url,omitempty"`
	OfferDeadline *time.Time `json:"offer_deadline,omitempty"`
}

type ApplicantRecord struct {
	Application
	Candidate *CandidateSnapshot `json:"candidate,omitempty"`
}

// CandidateApplication is an application joined with its job, shown on the
// candidate's own dashboard.
type CandidateApplication struct {
	Application
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
	JobStatus string `json:"job_status"`
}

type ApplyRq struct {
	JobID               string            `json:"job_id"`
	CoverLetter         string            `json:"cover_letter,omitempty"`
	SupplementalAnswers map[string]string `json:"supplemental_answers,omitempty"`
}

type StatusRq struct {
	Status string `json:"status"`
}
