package candidate

import "time"

type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"` // coarse year-month, e.g. 2021-04
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Certification struct {
	Name      string `json:"name"`
	Issuer    string `json:"issuer"`
	Date      string `json:"date"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type Profile struct {
	UserID         string            `json:"user_id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone,omitempty"`
	Education      string            `json:"education,omitempty"`
	ResumeURL      string            `json:"resume_url,omitempty"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Certifications []Certification   `json:"certifications"`
	LinkedinURL    string            `json:"linkedin_url,omitempty"`
	GithubURL      string            `json:"github_url,omitempty"`
	PortfolioURL   string            `json:"portfolio_url,omitempty"`
	OfferDeadline  *time.Time        `json:"offer_deadline,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProfileRq is a partial update, nil fields keep their stored value.
type ProfileRq struct {
	Name           *string            `json:"name,omitempty"`
	Email          *string            `json:"email,omitempty"`
	Phone          *string            `json:"phone,omitempty"`
	Education      *string            `json:"education,omitempty"`
	Skills         *[]string          `json:"skills,omitempty"`
	Experience     *[]ExperienceEntry `json:"experience,omitempty"`
	Certifications *[]Certification   `json:"certifications,omitempty"`
	LinkedinURL    *string            `json:"linkedin_url,omitempty"`
	GithubURL      *string            `json:"github_url,omitempty"`
	PortfolioURL   *string            `json:"portfolio_url,omitempty"`
	OfferDeadline  *string            `json:"offer_deadline,omitempty"`
}
