package candidate

import (
	"strings"
	"testing"

	"github.com/hirewire/job-market/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateProfileRqEmptyIsValid(t *testing.T) {
	assert.NoError(t, ValidateProfileRq(&ProfileRq{}))
}

func TestValidateProfileRqName(t *testing.T) {
	assert.NoError(t, ValidateProfileRq(&ProfileRq{Name: strPtr("Dana Jones")}))

	err := ValidateProfileRq(&ProfileRq{Name: strPtr("")})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "name", apperror.FieldOf(err))

	err = ValidateProfileRq(&ProfileRq{Name: strPtr(strings.Repeat("a", 101))})
	require.Error(t, err)
	assert.Equal(t, "name", apperror.FieldOf(err))
}

func TestValidateProfileRqEmail(t *testing.T) {
	assert.NoError(t, ValidateProfileRq(&ProfileRq{Email: strPtr("dana@example.com")}))

	for _, bad := range []string{"", "dana", "dana@", "@example.com", "dana @example.com"} {
		err := ValidateProfileRq(&ProfileRq{Email: strPtr(bad)})
		require.Error(t, err, "email %q", bad)
		assert.Equal(t, "email", apperror.FieldOf(err))
	}
}

func TestValidateProfileRqPhone(t *testing.T) {
	assert.NoError(t, ValidateProfileRq(&ProfileRq{Phone: strPtr("+1 (555) 123-4567")}))
	assert.NoError(t, ValidateProfileRq(&ProfileRq{Phone: strPtr("")}), "empty phone clears the stored value")

	err := ValidateProfileRq(&ProfileRq{Phone: strPtr("call me")})
	require.Error(t, err)
	assert.Equal(t, "phone", apperror.FieldOf(err))

	err = ValidateProfileRq(&ProfileRq{Phone: strPtr("123")})
	require.Error(t, err)
	assert.Equal(t, "phone", apperror.FieldOf(err))
}

func TestValidateProfileRqSkills(t *testing.T) {
	ok := []string{"go", "postgres", "kubernetes"}
	assert.NoError(t, ValidateProfileRq(&ProfileRq{Skills: &ok}))

	tooMany := make([]string, 51)
	for i := range tooMany {
		tooMany[i] = "skill"
	}
	err := ValidateProfileRq(&ProfileRq{Skills: &tooMany})
	require.Error(t, err)
	assert.Equal(t, "skills", apperror.FieldOf(err))

	tooLong := []string{strings.Repeat("x", 51)}
	err = ValidateProfileRq(&ProfileRq{Skills: &tooLong})
	require.Error(t, err)
	assert.Equal(t, "skills", apperror.FieldOf(err))
}

func TestValidateProfileRqExperience(t *testing.T) {
	ok := []ExperienceEntry{
		{Company: "Acme", Title: "Engineer", StartDate: "2019-03", EndDate: "2021-11"},
		{Company: "Initech", Title: "Senior Engineer", StartDate: "2021-12"},
	}
	assert.NoError(t, ValidateProfileRq(&ProfileRq{Experience: &ok}))

	tooMany := make([]ExperienceEntry, 21)
	for i := range tooMany {
		tooMany[i] = ExperienceEntry{StartDate: "2020-01"}
	}
	err := ValidateProfileRq(&ProfileRq{Experience: &tooMany})
	require.Error(t, err)
	assert.Equal(t, "experience", apperror.FieldOf(err))

	for _, bad := range []string{"2020", "2020-13", "2020-00", "03-2020", "march 2020"} {
		entries := []ExperienceEntry{{StartDate: bad}}
		err := ValidateProfileRq(&ProfileRq{Experience: &entries})
		require.Error(t, err, "start_date %q", bad)
		assert.Equal(t, "experience", apperror.FieldOf(err))
	}

	badEnd := []ExperienceEntry{{StartDate: "2020-01", EndDate: "soon"}}
	err = ValidateProfileRq(&ProfileRq{Experience: &badEnd})
	require.Error(t, err)
	assert.Equal(t, "experience", apperror.FieldOf(err))
}

func TestValidateProfileRqURLs(t *testing.T) {
	assert.NoError(t, ValidateProfileRq(&ProfileRq{
		LinkedinURL:  strPtr("https://linkedin.com/in/dana"),
		GithubURL:    strPtr("https://github.com/dana"),
		PortfolioURL: strPtr("http://dana.dev"),
	}))
	assert.NoError(t, ValidateProfileRq(&ProfileRq{GithubURL: strPtr("")}), "empty URL clears the stored value")

	err := ValidateProfileRq(&ProfileRq{LinkedinURL: strPtr("linkedin.com/in/dana")})
	require.Error(t, err)
	assert.Equal(t, "linkedin_url", apperror.FieldOf(err))

	err = ValidateProfileRq(&ProfileRq{PortfolioURL: strPtr("ftp://dana.dev")})
	require.Error(t, err)
	assert.Equal(t, "portfolio_url", apperror.FieldOf(err))
}

func TestValidateProfileRqOfferDeadline(t *testing.T) {
	assert.NoError(t, ValidateProfileRq(&ProfileRq{OfferDeadline: strPtr("2021-09-30T00:00:00Z")}))

	err := ValidateProfileRq(&ProfileRq{OfferDeadline: strPtr("next friday")})
	require.Error(t, err)
	assert.Equal(t, "offer_deadline", apperror.FieldOf(err))
}
