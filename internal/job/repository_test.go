package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterClause(t *testing.T) {
	urgent := filterClause(ListParams{Filter: FilterUrgent})
	assert.Contains(t, urgent, "deadline IS NOT NULL")
	assert.Contains(t, urgent, "deadline >= NOW()")
	assert.Contains(t, urgent, "INTERVAL '3 DAYS'", "a job due in two days falls inside the urgent window")

	week := filterClause(ListParams{Filter: FilterWeek})
	assert.Contains(t, week, "INTERVAL '7 DAYS'")

	month := filterClause(ListParams{Filter: FilterMonth})
	assert.Contains(t, month, "INTERVAL '30 DAYS'")

	noDeadline := filterClause(ListParams{Filter: FilterNoDeadline})
	assert.Contains(t, noDeadline, "deadline IS NULL")
	assert.NotContains(t, noDeadline, "deadline IS NOT NULL", "a job with a deadline never matches no_deadline")

	unfiltered := filterClause(ListParams{})
	assert.Contains(t, unfiltered, "deadline IS NULL OR deadline >= NOW()", "expired deadlines hidden by default")

	showExpired := filterClause(ListParams{ShowExpired: true})
	assert.Equal(t, `status = 'open'`, showExpired)

	for _, clause := range []string{urgent, week, month, noDeadline, unfiltered, showExpired} {
		assert.Contains(t, clause, `status = 'open'`)
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, `deadline ASC NULLS LAST`, orderClause(SortDeadlineAsc))
	assert.Equal(t, `deadline ASC NULLS LAST`, orderClause(""), "deadline ascending is the default")
	assert.Equal(t, `deadline DESC NULLS LAST`, orderClause(SortDeadlineDesc))
	assert.Equal(t, `created_at DESC`, orderClause(SortRecent))
	assert.Equal(t, `title ASC`, orderClause(SortAlphabetical))
}
