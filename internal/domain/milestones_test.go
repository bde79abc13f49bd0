package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMilestonesSingleRecordTimeline(t *testing.T) {
	rules := DefaultRules()
	records := []ActivityRecord{
		{ActivityName: "Winter Visit", Category: "Care", Date: day(2024, time.December, 8), Hours: 12},
	}

	ms := rules.Milestones(records)

	require.NotEmpty(t, ms)
	require.Equal(t, "First Steps", ms[0].Title)
	require.Equal(t, "2024.12.08", ms[0].Date)
	require.Equal(t, "Warm Finale", ms[len(ms)-1].Title)

	titles := titlesOf(ms)
	require.Contains(t, titles, "Highlight Moment")
	require.Contains(t, titles, "First Hour Lit", "12 hours in one day crosses the 1-hour threshold")
	require.Contains(t, titles, "Ten-Hour Mark")
	require.NotContains(t, titles, "30-Hour Milestone")
	require.NotContains(t, titles, "Sustained Commitment", "single-day records are not sustained")
}

func TestMilestonesDiversityDatedOnThirdCategory(t *testing.T) {
	rules := DefaultRules()
	records := []ActivityRecord{
		{ActivityName: "Morning Class", Category: "Teaching", Date: day(2024, time.February, 1), Hours: 2},
		{ActivityName: "Elder Visit", Category: "Care", Date: day(2024, time.April, 10), Hours: 2},
		{ActivityName: "River Patrol", Category: "Eco", Date: day(2024, time.June, 5), Hours: 2},
	}

	ms := rules.Milestones(records)

	var diversity *Milestone
	for i := range ms {
		if ms[i].Title == "Many Kinds of Warmth" {
			diversity = &ms[i]
			break
		}
	}
	require.NotNil(t, diversity, "three distinct categories should trigger the diversity milestone")
	require.Equal(t, "2024.06.05", diversity.Date, "dated on the day the third category first appears")
}

func TestMilestonesCappedAndDeduplicated(t *testing.T) {
	rules := DefaultRules()

	// A busy year that can trigger every milestone kind.
	records := []ActivityRecord{
		{ActivityName: "Hope Summer Camp", Category: "Teaching", Date: day(2024, time.July, 14), Hours: 60},
		{ActivityName: "Elder Visit", Category: "Care", Date: day(2024, time.March, 2), Hours: 3},
		{ActivityName: "Elder Visit", Category: "Care", Date: day(2024, time.April, 6), Hours: 3},
		{ActivityName: "Elder Visit", Category: "Care", Date: day(2024, time.May, 11), Hours: 3},
		{ActivityName: "River Patrol", Category: "Eco", Date: day(2024, time.September, 1), Hours: 4},
		{ActivityName: "Buddy Semester", Category: "Buddy Program", Date: day(2024, time.November, 30), Hours: 48},
	}
	sorted := FilterRecordsForTest(records)

	ms := rules.Milestones(sorted)

	require.LessOrEqual(t, len(ms), rules.MaxMilestones)

	seen := make(map[[2]string]bool)
	for _, m := range ms {
		key := [2]string{m.Title, m.Date}
		require.False(t, seen[key], "duplicate milestone %v", key)
		seen[key] = true
	}
}

func TestThresholdMilestonesEmitOncePerThreshold(t *testing.T) {
	rules := DefaultRules()
	ledger := rules.ExpandDaily([]ActivityRecord{
		{ActivityName: "Marathon Support", Category: "Other", Date: day(2024, time.October, 20), Hours: 120},
	})

	ms := rules.thresholdMilestones(ledger)

	require.Len(t, ms, len(rules.CumulativeThresholds), "a 120-hour day crosses every threshold at once")
	titles := titlesOf(ms)
	require.Contains(t, titles, "Hundred-Hour Honor")
	require.Contains(t, titles, "30-Hour Milestone", "thresholds without a custom title fall back to the generic one")
}

func TestMilestonesEmptyInput(t *testing.T) {
	rules := DefaultRules()
	require.Nil(t, rules.Milestones(nil))
}

func titlesOf(ms []Milestone) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Title)
	}
	return out
}

// FilterRecordsForTest sorts records chronologically the way FilterRecords
// does, without requiring an identity match.
func FilterRecordsForTest(records []ActivityRecord) []ActivityRecord {
	for i := range records {
		records[i].Name = "x"
		records[i].VolunteerID = "1"
	}
	return FilterRecords(records, Identity{Name: "x", ID: "1"})
}
