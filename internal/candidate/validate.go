package candidate

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/hirewire/job-market/internal/apperror"
)

const (
	maxSkills     = 50
	maxSkillLen   = 50
	maxExperience = 20
	maxNameLen    = 100
)

var (
	emailRe  = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	phoneRe  = regexp.MustCompile(`^[0-9+()\-. ]{7,30}$`)
	periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// ValidateProfileRq checks field shapes only. Skills are not deduplicated
// or normalised here, that is a separate best-effort concern.
func ValidateProfileRq(rq *ProfileRq) error {
	if rq.Name != nil && (len(*rq.Name) < 1 || len(*rq.Name) > maxNameLen) {
		return apperror.Validation("name", "name must be between 1 and 100 characters")
	}
	if rq.Email != nil && !emailRe.MatchString(*rq.Email) {
		return apperror.Validation("email", "email is invalid")
	}
	if rq.Phone != nil && *rq.Phone != "" && !phoneRe.MatchString(*rq.Phone) {
		return apperror.Validation("phone", "phone is invalid")
	}
	if rq.Skills != nil {
		if len(*rq.Skills) > maxSkills {
			return apperror.Validation("skills", "at most 50 skills allowed")
		}
		for _, s := range *rq.Skills {
			if len(s) > maxSkillLen {
				return apperror.Validation("skills", fmt.Sprintf("skill %q exceeds 50 characters", s))
			}
		}
	}
	if rq.Experience != nil {
		if len(*rq.Experience) > maxExperience {
			return apperror.Validation("experience", "at most 20 experience entries allowed")
		}
		for i, e := range *rq.Experience {
			if !periodRe.MatchString(e.StartDate) {
				return apperror.Validation("experience", fmt.Sprintf("entry %d start_date must be YYYY-MM", i))
			}
			if e.EndDate != "" && !periodRe.MatchString(e.EndDate) {
				return apperror.Validation("experience", fmt.Sprintf("entry %d end_date must be YYYY-MM", i))
			}
		}
	}
	for _, u := range []struct {
		field string
		val   *string
	}{
		{"linkedin_url", rq.LinkedinURL},
		{"github_url", rq.GithubURL},
		{"portfolio_url", rq.PortfolioURL},
	} {
		if u.val == nil || *u.val == "" {
			continue
		}
		parsed, err := url.ParseRequestURI(*u.val)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return apperror.Validation(u.field, "must be a well-formed http(s) URL")
		}
	}
	if rq.OfferDeadline != nil && *rq.OfferDeadline != "" {
		if _, err := time.Parse(time.RFC3339, *rq.OfferDeadline); err != nil {
			return apperror.Validation("offer_deadline", "offer_deadline must be a RFC3339 timestamp")
		}
	}
	return nil
}
