package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Milestone is one dated narrative event on the annual timeline. Date may be
// empty when the event has no single day (or the day is unknown).
type Milestone struct {
	Date    string `json:"date"` // YYYY.MM.DD or ""
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Milestones scans the chronologically sorted records and emits every
// milestone whose trigger holds in the data; absent triggers are simply
// skipped. The result is deduplicated by (title, date) keeping first-seen
// order and capped at MaxMilestones.
func (r Rules) Milestones(records []ActivityRecord) []Milestone {
	if len(records) == 0 {
		return nil
	}

	var out []Milestone
	ledger := r.ExpandDaily(records)

	// First record always opens the timeline.
	first := records[0]
	out = append(out, Milestone{
		Date:    fmtDate(first.Date),
		Title:   "First Steps",
		Content: fmt.Sprintf("That day, you left your very first volunteer record at \"%s\".", first.ActivityName),
	})

	// First multi-day activity in chronological order.
	for _, rec := range records {
		if days := r.DurationDays(rec); days > 1 {
			out = append(out, Milestone{
				Date:    fmtDate(rec.Date),
				Title:   "Sustained Commitment",
				Content: fmt.Sprintf("You stayed with \"%s\" for %d days straight, turning enthusiasm into persistence.", rec.ActivityName, days),
			})
			break
		}
	}

	// Peak moment: highest single-record hours. First max wins on ties.
	peak := records[0]
	for _, rec := range records[1:] {
		if rec.Hours > peak.Hours {
			peak = rec
		}
	}
	if peak.Hours > 0 {
		days := r.DurationDays(peak)
		var content string
		if days > 1 {
			content = fmt.Sprintf("Across the %d-day journey of \"%s\" you contributed %s hours in total. What a run!", days, peak.ActivityName, fmtHours(peak.Hours))
		} else {
			content = fmt.Sprintf("You gave %s hours to \"%s\". That was your brightest moment this year.", fmtHours(peak.Hours), peak.ActivityName)
		}
		out = append(out, Milestone{Date: fmtDate(peak.Date), Title: "Highlight Moment", Content: content})
	}

	// Deepest project: highest estimated duration. First max wins on ties.
	deep := records[0]
	deepDays := r.DurationDays(deep)
	for _, rec := range records[1:] {
		if days := r.DurationDays(rec); days > deepDays {
			deep, deepDays = rec, days
		}
	}
	if deepDays > 1 {
		out = append(out, Milestone{
			Date:    fmtDate(deep.Date),
			Title:   "Deep Dive",
			Content: fmt.Sprintf("You poured %d days into \"%s\"; heart and patience both shone on that road.", deepDays, deep.ActivityName),
		})
	}

	out = append(out, r.thresholdMilestones(ledger)...)

	if m, ok := r.recurringMilestone(records); ok {
		out = append(out, m)
	}
	if m, ok := r.diversityMilestone(records); ok {
		out = append(out, m)
	}
	if m, ok := busiestMonthMilestone(ledger); ok {
		out = append(out, m)
	}

	// Last record closes the timeline.
	last := records[len(records)-1]
	lastDays := r.DurationDays(last)
	var closing string
	if lastDays > 1 {
		closing = fmt.Sprintf("Your final journey of the year, \"%s\" (%d days), closes your volunteer story with warmth.", last.ActivityName, lastDays)
	} else {
		closing = fmt.Sprintf("Your last \"%s\" of the year puts a warm full stop to your volunteer story.", last.ActivityName)
	}
	out = append(out, Milestone{Date: fmtDate(last.Date), Title: "Warm Finale", Content: closing})

	return capMilestones(dedupMilestones(out), r.MaxMilestones)
}

// thresholdMilestones walks the day ledger accumulating hours and emits one
// milestone per threshold on the first day the running total reaches it.
func (r Rules) thresholdMilestones(ledger []DayEntry) []Milestone {
	var out []Milestone
	cum := 0.0
	reached := make(map[int]bool, len(r.CumulativeThresholds))

	for _, entry := range ledger {
		cum += entry.Hours
		for _, th := range r.CumulativeThresholds {
			if reached[th] || cum < float64(th) {
				continue
			}
			title, ok := r.ThresholdTitles[th]
			if !ok {
				title = fmt.Sprintf("%d-Hour Milestone", th)
			}
			out = append(out, Milestone{
				Date:    entry.Day.Format("2006.01.02"),
				Title:   title,
				Content: fmt.Sprintf("Somewhere along \"%s\", your cumulative hours first reached %d.", entry.ActivityName, th),
			})
			reached[th] = true
		}
		if len(reached) == len(r.CumulativeThresholds) {
			break
		}
	}
	return out
}

func (r Rules) recurringMilestone(records []ActivityRecord) (Milestone, bool) {
	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		if counts[rec.ActivityName] == 0 {
			order = append(order, rec.ActivityName)
		}
		counts[rec.ActivityName]++
	}

	topName, topCount := "", 0
	for _, name := range order {
		if counts[name] > topCount {
			topName, topCount = name, counts[name]
		}
	}
	if topCount < r.MinRecurringCount {
		return Milestone{}, false
	}

	var firstDate *time.Time
	for _, rec := range records {
		if rec.ActivityName == topName {
			firstDate = rec.Date
			break
		}
	}
	return Milestone{
		Date:    fmtDate(firstDate),
		Title:   "Frequent Devotion",
		Content: fmt.Sprintf("You showed up for \"%s\" %d times. Love is not a moment; it is returning again and again.", topName, topCount),
	}, true
}

func (r Rules) diversityMilestone(records []ActivityRecord) (Milestone, bool) {
	seen := make(map[string]bool)
	var thirdDate *time.Time
	for _, rec := range records {
		t := strings.TrimSpace(rec.Category)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		if len(seen) == r.MinDiverseTypes && thirdDate == nil {
			thirdDate = rec.Date
		}
	}
	if len(seen) < r.MinDiverseTypes {
		return Milestone{}, false
	}
	return Milestone{
		Date:    fmtDate(thirdDate),
		Title:   "Many Kinds of Warmth",
		Content: fmt.Sprintf("This year you crossed %d kinds of volunteer work; warmth has more than one shape.", len(seen)),
	}, true
}

func busiestMonthMilestone(ledger []DayEntry) (Milestone, bool) {
	if len(ledger) == 0 {
		return Milestone{}, false
	}

	totals := make(map[string]float64)
	for _, entry := range ledger {
		totals[entry.Day.Format("2006-01")] += entry.Hours
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	// Earliest month wins ties so the pick is deterministic.
	bestMonth, bestHours := "", 0.0
	for _, m := range months {
		if totals[m] > bestHours {
			bestMonth, bestHours = m, totals[m]
		}
	}
	if bestHours <= 0 {
		return Milestone{}, false
	}
	return Milestone{
		Date:    "",
		Title:   "Busiest Month",
		Content: fmt.Sprintf("In %s you served %s hours. You must have been glowing that month.", bestMonth, fmtHours(bestHours)),
	}, true
}

func dedupMilestones(in []Milestone) []Milestone {
	seen := make(map[[2]string]bool, len(in))
	out := in[:0]
	for _, m := range in {
		key := [2]string{m.Title, m.Date}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

func capMilestones(in []Milestone, max int) []Milestone {
	if max > 0 && len(in) > max {
		return in[:max]
	}
	return in
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006.01.02")
}

func fmtHours(h float64) string {
	return strconv.FormatFloat(round1(h), 'f', -1, 64)
}
