package job

import (
	"time"

	"github.com/microcosm-cc/bluemonday"
	blackfriday "gopkg.in/russross/blackfriday.v2"
)

const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Deadline filters accepted by the job list endpoint.
const (
	FilterAll        = "all"
	FilterUrgent     = "urgent" // deadline within 3 days
	FilterWeek       = "week"   // deadline within 7 days
	FilterMonth      = "month"  // deadline within 30 days
	FilterNoDeadline = "no_deadline"
)

const (
	SortDeadlineAsc  = "deadline_asc" // soonest first, jobs without deadline last
	SortDeadlineDesc = "deadline_desc"
	SortRecent       = "recent"
	SortAlphabetical = "alphabetical"
)

// Urgency is derived from the deadline at read time, never persisted.
const (
	UrgencyExpired = "expired"
	UrgencyUrgent  = "urgent"
	UrgencySoon    = "soon"
	UrgencyNormal  = "normal"
	UrgencyNone    = "none"
)

const (
	QuestionTypeText     = "text"
	QuestionTypeTextarea = "textarea"
	QuestionTypeSelect   = "select"
)

type SupplementalQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Requirements is the free-form structured document stored on the job row.
// Supplemental questions live inside it.
type Requirements struct {
	Text      string                 `json:"text,omitempty"`
	Questions []SupplementalQuestion `json:"questions,omitempty"`
}

type Job struct {
	ID              string       `json:"id"`
	EmployerID      string       `json:"employer_id,omitempty"`
	Title           string       `json:"title"`
	Company         string       `json:"company"`
	Location        string       `json:"location"`
	Description     string       `json:"description"`
	DescriptionHTML string       `json:"description_html,omitempty"`
	SalaryRange     string       `json:"salary_range,omitempty"`
	Requirements    Requirements `json:"requirements"`
	Status          string       `json:"status"`
	Slug            string       `json:"slug"`
	Deadline        *time.Time   `json:"deadline,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	TimeAgo string `json:"time_ago,omitempty"`
	Urgency string `json:"urgency,omitempty"`
}

type JobRq struct {
	Title                 string                 `json:"title"`
	Company               string                 `json:"company"`
	Location              string                 `json:"location"`
	Description           string                 `json:"description,omitempty"`
	SalaryRange           string                 `json:"salary_range,omitempty"`
	Deadline              string                 `json:"deadline,omitempty"`
	Status                string                 `json:"status,omitempty"`
	SupplementalQuestions []SupplementalQuestion `json:"supplementalQuestions,omitempty"`
}

type ListParams struct {
	Filter      string
	Sort        string
	ShowExpired bool
}

func ValidStatus(status string) bool {
	return status == StatusDraft || status == StatusOpen || status == StatusClosed
}

func ValidFilter(filter string) bool {
	switch filter {
	case FilterAll, FilterUrgent, FilterWeek, FilterMonth, FilterNoDeadline:
		return true
	}
	return false
}

func ValidSort(sort string) bool {
	switch sort {
	case SortDeadlineAsc, SortDeadlineDesc, SortRecent, SortAlphabetical:
		return true
	}
	return false
}

func ValidQuestionType(t string) bool {
	return t == QuestionTypeText || t == QuestionTypeTextarea || t == QuestionTypeSelect
}

// UrgencyFor classifies how close a deadline is relative to now.
func UrgencyFor(deadline *time.Time, now time.Time) string {
	if deadline == nil {
		return UrgencyNone
	}
	until := deadline.Sub(now)
	switch {
	case until < 0:
		return UrgencyExpired
	case until < 3*24*time.Hour:
		return UrgencyUrgent
	case until < 7*24*time.Hour:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// MarkdownToHTML renders a job description to sanitized HTML.
func MarkdownToHTML(md string) string {
	return string(bluemonday.UGCPolicy().SanitizeBytes(blackfriday.Run([]byte(md))))
}

// RequiredQuestionIDs returns the ids of questions that must be answered
// when applying.
func (r Requirements) RequiredQuestionIDs() []string {
	ids := make([]string, 0, len(r.Questions))
	for _, q := range r.Questions {
		if q.Required {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
