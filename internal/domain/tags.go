package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Tag is an achievement badge shown on the report. Ranking weights are
// internal to the selection and never leave this package.
type Tag struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

type tagCandidate struct {
	tag    Tag
	weight int
}

// AchievementTags builds the weighted candidate pool, ranks it and returns
// at most MaxTags tags. Identities with no records get the head of the
// default pool instead.
func (r Rules) AchievementTags(records []ActivityRecord, totalHours float64, mainType string) []Tag {
	if len(records) == 0 {
		n := r.MaxTags - 1
		if n > len(r.DefaultTags) {
			n = len(r.DefaultTags)
		}
		return append([]Tag(nil), r.DefaultTags[:n]...)
	}

	eventCount := len(records)
	typeCount := countDistinctCategories(records)
	activeMonths := countActiveMonths(records)
	mainShare := r.dominantShare(records, mainType)

	var candidates []tagCandidate
	add := func(wt WeightedTag) {
		candidates = append(candidates, tagCandidate{tag: Tag{Name: wt.Name, Desc: wt.Desc}, weight: wt.Weight})
	}

	// Hour tier: exactly one, highest applicable threshold.
	for _, tier := range r.HourTiers {
		if totalHours >= tier.MinHours {
			desc := strings.ReplaceAll(tier.Desc, "{hours}", strconv.Itoa(int(totalHours)))
			add(WeightedTag{Name: tier.Name, Weight: tier.Weight, Desc: desc})
			break
		}
	}

	// Role tag from the dominant dimension.
	role, ok := r.RoleTags[r.DimensionKey(mainType)]
	if !ok {
		role = r.RoleTags["others"]
	}
	add(role)

	// Specialization beats breadth; only the first satisfied rule fires.
	switch {
	case mainShare >= r.Specialization.MinShare && totalHours >= r.Specialization.MinHours:
		spec := r.Specialization.Tag
		spec.Desc = strings.ReplaceAll(spec.Desc, "{category}", mainType)
		add(spec)
	case typeCount >= r.Breadth.MinCategories:
		add(r.Breadth.Tag)
	}

	// Frequency: at most one rule fires, in configured priority order.
	for _, rule := range r.FrequencyRules {
		matched := (rule.MinEvents > 0 && eventCount >= rule.MinEvents) ||
			(rule.MinMonths > 0 && activeMonths >= rule.MinMonths)
		if matched {
			wt := rule.Tag
			wt.Desc = strings.ReplaceAll(wt.Desc, "{events}", strconv.Itoa(eventCount))
			add(wt)
			break
		}
	}

	add(r.bestSeason(records).Tag)

	// Keyword easter eggs over the joined activity names.
	var names []string
	for _, rec := range records {
		names = append(names, rec.ActivityName)
	}
	joined := strings.Join(names, " ")
	for _, kw := range r.KeywordTags {
		if kw.Pattern.MatchString(joined) {
			add(kw.Tag)
		}
	}

	return r.selectTags(candidates)
}

// selectTags ranks candidates by weight (stable, so insertion order breaks
// ties), deduplicates by name, keeps the top pick plus up to MaxTags-1 more,
// then pads from the default pool.
func (r Rules) selectTags(candidates []tagCandidate) []Tag {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	seen := make(map[string]bool, len(candidates))
	var unique []Tag
	for _, c := range candidates {
		if seen[c.tag.Name] {
			continue
		}
		seen[c.tag.Name] = true
		unique = append(unique, c.tag)
	}

	var final []Tag
	if len(unique) > 0 {
		final = append(final, unique[0])
		rest := unique[1:]
		if len(rest) > r.MaxTags-1 {
			rest = rest[:r.MaxTags-1]
		}
		final = append(final, rest...)
	}

	for _, d := range r.DefaultTags {
		if len(final) >= r.MaxTags {
			break
		}
		if !seen[d.Name] {
			seen[d.Name] = true
			final = append(final, d)
		}
	}

	if len(final) > r.MaxTags {
		final = final[:r.MaxTags]
	}
	return final
}

// dominantShare is the dominant dimension's fraction of all categorised
// hours, zero when nothing is categorised.
func (r Rules) dominantShare(records []ActivityRecord, mainType string) float64 {
	stats, _ := r.CategoryHours(records)
	total := 0.0
	for _, v := range stats {
		total += v
	}
	if total <= 0 {
		return 0
	}
	return stats[r.DimensionKey(mainType)] / total
}

func (r Rules) bestSeason(records []ActivityRecord) Season {
	totals := make(map[string]float64, len(r.Seasons))
	for _, rec := range records {
		if rec.Date == nil {
			continue
		}
		m := int(rec.Date.Month())
		for _, season := range r.Seasons {
			if m == season.Months[0] || m == season.Months[1] || m == season.Months[2] {
				totals[season.Name] += rec.Hours
				break
			}
		}
	}

	best := r.Seasons[0]
	bestHours := totals[best.Name]
	for _, season := range r.Seasons[1:] {
		if totals[season.Name] > bestHours {
			best, bestHours = season, totals[season.Name]
		}
	}
	return best
}

func countDistinctCategories(records []ActivityRecord) int {
	seen := make(map[string]bool)
	for _, rec := range records {
		if t := strings.TrimSpace(rec.Category); t != "" {
			seen[t] = true
		}
	}
	return len(seen)
}

func countActiveMonths(records []ActivityRecord) int {
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.Date != nil {
			seen[rec.Date.Format("2006-01")] = true
		}
	}
	return len(seen)
}
