package domain

import (
	"math"
	"strings"
)

// CategoryStats holds cumulative hours per radar dimension key, rounded to
// one decimal. Keys are exactly the configured dimension set.
type CategoryStats map[string]float64

// CategoryHours sums hours into the fixed dimension set and returns the
// dominant category's display label. Unrecognised categories fold into the
// last ("others") bucket. Ties resolve to the earliest dimension in the
// configured order.
func (r Rules) CategoryHours(records []ActivityRecord) (CategoryStats, string) {
	stats := make(CategoryStats, len(r.Dimensions))
	byCategory := make(map[string]string, len(r.Dimensions))
	otherKey := ""
	for _, dim := range r.Dimensions {
		stats[dim.Key] = 0
		byCategory[dim.Category] = dim.Key
		otherKey = dim.Key
	}

	for _, rec := range records {
		key, ok := byCategory[strings.TrimSpace(rec.Category)]
		if !ok {
			key = otherKey
		}
		stats[key] += rec.Hours
	}

	dominantKey := ""
	best := math.Inf(-1)
	for _, dim := range r.Dimensions {
		if stats[dim.Key] > best {
			best = stats[dim.Key]
			dominantKey = dim.Key
		}
	}

	for key := range stats {
		stats[key] = round1(stats[key])
	}

	label := r.FallbackLabel
	for _, dim := range r.Dimensions {
		if dim.Key == dominantKey {
			label = dim.Category
			break
		}
	}
	return stats, label
}

// DimensionKey maps a display label back to its dimension key, falling back
// to the last dimension when the label is unknown.
func (r Rules) DimensionKey(label string) string {
	key := ""
	for _, dim := range r.Dimensions {
		if dim.Category == label {
			return dim.Key
		}
		key = dim.Key
	}
	return key
}

// DurationDays estimates how many consecutive days a record represents. The
// camp keyword in the activity name takes precedence over the category table.
func (r Rules) DurationDays(rec ActivityRecord) int {
	if r.CampKeyword != "" && strings.Contains(rec.ActivityName, r.CampKeyword) {
		return r.CampDays
	}
	if days, ok := r.DurationWeights[strings.TrimSpace(rec.Category)]; ok {
		return days
	}
	return r.DefaultDurationDays
}

// ActiveDays estimates the volunteer's active days across all records,
// capped so one enthusiastic year never exceeds a calendar year.
func (r Rules) ActiveDays(records []ActivityRecord) int {
	days := 0
	for _, rec := range records {
		days += r.DurationDays(rec)
	}
	if days > r.MaxActiveDays {
		return r.MaxActiveDays
	}
	return days
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
