package recruiter

import "time"

type Recruiter struct {
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name"`
	JobTitle    string    `json:"job_title,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CompanyURL  string    `json:"company_url,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RecruiterRq struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyURL  string `json:"company_url,omitempty"`
}
