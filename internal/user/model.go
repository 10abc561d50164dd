package user

import "time"

const (
	UserTypeCandidate = "candidate"
	UserTypeRecruiter = "recruiter"
)

type User struct {
	ID                 string
	Email              string
	Type               string
	CreatedAt          time.Time
	CreatedAtHumanised string
}

func (u User) IsRecruiter() bool {
	return u.Type == UserTypeRecruiter
}

func (u User) IsCandidate() bool {
	return u.Type == UserTypeCandidate
}
