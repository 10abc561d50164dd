package candidate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeProfileSkillsPassThrough(t *testing.T) {
	now := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	skills := []string{"go", "postgres", "go", "Go", "postgres"}
	p, err := mergeProfile(nil, "u1", "u1@example.com", &ProfileRq{Skills: &skills}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres", "go", "Go", "postgres"}, p.Skills,
		"skills keep their order and duplicates")
}

func TestMergeProfileFirstSaveDefaults(t *testing.T) {
	now := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	name := "Dana"
	p, err := mergeProfile(nil, "u1", "u1@example.com", &ProfileRq{Name: &name}, now)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "u1@example.com", p.Email, "email defaults to the account address")
	assert.Equal(t, "Dana", p.Name)
	assert.Equal(t, []string{}, p.Skills)
	assert.Equal(t, []ExperienceEntry{}, p.Experience)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestMergeProfilePartialUpdateKeepsStoredFields(t *testing.T) {
	now := time.Date(2021, 6, 2, 12, 0, 0, 0, time.UTC)
	existing := &Profile{
		UserID:    "u1",
		Name:      "Dana",
		Email:     "dana@example.com",
		Phone:     "+1 555 1234567",
		Skills:    []string{"go", "sql"},
		CreatedAt: now.Add(-24 * time.Hour),
	}
	phone := "+44 20 1234 5678"
	p, err := mergeProfile(existing, "u1", "u1@example.com", &ProfileRq{Phone: &phone}, now)
	require.NoError(t, err)
	assert.Equal(t, "+44 20 1234 5678", p.Phone)
	assert.Equal(t, "Dana", p.Name, "nil fields keep their stored value")
	assert.Equal(t, "dana@example.com", p.Email)
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, existing.CreatedAt, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestMergeProfileOfferDeadline(t *testing.T) {
	now := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := "2021-09-30T00:00:00Z"
	p, err := mergeProfile(nil, "u1", "u1@example.com", &ProfileRq{OfferDeadline: &deadline}, now)
	require.NoError(t, err)
	require.NotNil(t, p.OfferDeadline)
	assert.Equal(t, time.Date(2021, 9, 30, 0, 0, 0, 0, time.UTC), p.OfferDeadline.UTC())

	// empty string clears a stored deadline
	existing := &Profile{UserID: "u1", OfferDeadline: p.OfferDeadline}
	clear := ""
	cleared, err := mergeProfile(existing, "u1", "u1@example.com", &ProfileRq{OfferDeadline: &clear}, now)
	require.NoError(t, err)
	assert.Nil(t, cleared.OfferDeadline)
}
