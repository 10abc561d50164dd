package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUrgencyFor(t *testing.T) {
	now := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	in := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	var cases = []struct {
		name     string
		deadline *time.Time
		want     string
	}{
		{"no deadline", nil, UrgencyNone},
		{"already passed", in(-time.Hour), UrgencyExpired},
		{"tomorrow", in(24 * time.Hour), UrgencyUrgent},
		{"just under three days", in(3*24*time.Hour - time.Minute), UrgencyUrgent},
		{"five days", in(5 * 24 * time.Hour), UrgencySoon},
		{"just under a week", in(7*24*time.Hour - time.Minute), UrgencySoon},
		{"two weeks", in(14 * 24 * time.Hour), UrgencyNormal},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, UrgencyFor(c.deadline, now))
		})
	}
}

func TestValidFilter(t *testing.T) {
	for _, f := range []string{FilterAll, FilterUrgent, FilterWeek, FilterMonth, FilterNoDeadline} {
		assert.True(t, ValidFilter(f), f)
	}
	assert.False(t, ValidFilter(""))
	assert.False(t, ValidFilter("expired"))
	assert.False(t, ValidFilter("Urgent"))
}

func TestValidSort(t *testing.T) {
	for _, s := range []string{SortDeadlineAsc, SortDeadlineDesc, SortRecent, SortAlphabetical} {
		assert.True(t, ValidSort(s), s)
	}
	assert.False(t, ValidSort(""))
	assert.False(t, ValidSort("salary"))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusDraft))
	assert.True(t, ValidStatus(StatusOpen))
	assert.True(t, ValidStatus(StatusClosed))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestRequiredQuestionIDs(t *testing.T) {
	req := Requirements{
		Questions: []SupplementalQuestion{
			{ID: "q1", Question: "Why us?", Type: QuestionTypeTextarea, Required: true},
			{ID: "q2", Question: "Preferred stack?", Type: QuestionTypeText},
			{ID: "q3", Question: "Visa status?", Type: QuestionTypeSelect, Required: true, Options: []string{"citizen", "visa"}},
		},
	}
	assert.Equal(t, []string{"q1", "q3"}, req.RequiredQuestionIDs())
	assert.Empty(t, Requirements{}.RequiredQuestionIDs())
}

func TestMarkdownToHTMLStripsScripts(t *testing.T) {
	html := MarkdownToHTML("**bold** <script>alert(1)</script>")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}
