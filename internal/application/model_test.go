package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusCanonicalForms(t *testing.T) {
	for _, s := range []string{"applied", "under_review", "interview", "offer", "hired", "rejected"} {
		got, ok := ParseStatus(s)
		require.True(t, ok, "expected %q to parse", s)
		assert.Equal(t, Status(s), got)
	}
}

func TestParseStatusDisplayForms(t *testing.T) {
	cases := map[string]Status{
		"Interview":    StatusInterview,
		"Under Review": StatusUnderReview,
		"UNDER-REVIEW": StatusUnderReview,
		"  Hired ":     StatusHired,
		"Applied":      StatusApplied,
	}
	for in, want := range cases {
		got, ok := ParseStatus(in)
		require.True(t, ok, "expected %q to parse", in)
		assert.Equal(t, want, got)
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "pending", "archived", "under review now"} {
		_, ok := ParseStatus(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "Under Review", StatusUnderReview.Display())
	assert.Equal(t, "Applied", StatusApplied.Display())
	assert.Equal(t, "Rejected", StatusRejected.Display())
}

func TestPipelineOrderCoversAllStatuses(t *testing.T) {
	order := PipelineOrder()
	require.Len(t, order, 6)
	assert.Equal(t, StatusApplied, order[0])
	seen := map[Status]bool{}
	for _, s := range order {
		seen[s] = true
	}
	assert.Len(t, seen, 6)
}
