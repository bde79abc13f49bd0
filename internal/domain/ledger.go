package domain

import (
	"sort"
	"time"
)

// DayEntry is one day of the apportioned ledger: a dated record spread
// evenly across its estimated duration.
type DayEntry struct {
	Day          time.Time
	Hours        float64
	ActivityName string
	Category     string
	EndDate      time.Time
}

// MonthStat is one month's total for the activity chart.
type MonthStat struct {
	Month string  `json:"month"` // YYYY-MM
	Hours float64 `json:"hours"`
}

// ExpandDaily converts every dated record into per-day entries. The record
// date is treated as the end of the activity, so a 14-day camp ending on
// July 1st starts on June 18th. Entries from different records may share a
// calendar day; both contribute. The result is sorted ascending by day,
// stable across equal days.
func (r Rules) ExpandDaily(records []ActivityRecord) []DayEntry {
	var entries []DayEntry
	for _, rec := range records {
		if rec.Date == nil {
			continue
		}

		days := r.DurationDays(rec)
		if days < 1 {
			days = 1
		}
		perDay := rec.Hours / float64(days)

		end := dateOnly(*rec.Date)
		start := end.AddDate(0, 0, -(days - 1))
		for i := 0; i < days; i++ {
			entries = append(entries, DayEntry{
				Day:          start.AddDate(0, 0, i),
				Hours:        perDay,
				ActivityName: rec.ActivityName,
				Category:     rec.Category,
				EndDate:      end,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Day.Before(entries[j].Day)
	})
	return entries
}

// MonthlyHours sums record hours per calendar month, sorted by month.
// Undated records are skipped.
func MonthlyHours(records []ActivityRecord) []MonthStat {
	totals := make(map[string]float64)
	for _, rec := range records {
		if rec.Date == nil {
			continue
		}
		totals[rec.Date.Format("2006-01")] += rec.Hours
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthStat, 0, len(months))
	for _, m := range months {
		out = append(out, MonthStat{Month: m, Hours: round1(totals[m])})
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
