package domain

import "sort"

// GalleryItem is one card in the "year in pictures" strip.
type GalleryItem struct {
	Type  string  `json:"type"`
	Title string  `json:"title"`
	Date  string  `json:"date"` // YYYY.MM, empty when unknown
	Img   *string `json:"img"`  // resolved image URL, nil when no cover recorded
}

// Gallery picks the most recent records (undated ones last) and projects
// them to gallery cards, resolving cover filenames against imageBase.
func (r Rules) Gallery(records []ActivityRecord, imageBase string) []GalleryItem {
	sorted := append([]ActivityRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	var out []GalleryItem
	for _, rec := range sorted {
		item := GalleryItem{Type: rec.Category, Title: rec.ActivityName}
		if rec.Date != nil {
			item.Date = rec.Date.Format("2006.01")
		}
		if rec.CoverImage != "" {
			url := imageBase + "/" + rec.CoverImage
			item.Img = &url
		}
		out = append(out, item)
		if len(out) >= r.MaxGalleryItems {
			break
		}
	}
	return out
}

// CoVolunteers lists the other people who appeared in any of the identity's
// activities, most frequent first. Ties keep first-encountered order; the
// identity itself is excluded.
func (r Rules) CoVolunteers(userRecords, allRecords []ActivityRecord) []string {
	if len(userRecords) == 0 {
		return nil
	}

	activities := make(map[string]bool, len(userRecords))
	for _, rec := range userRecords {
		if rec.ActivityName != "" {
			activities[rec.ActivityName] = true
		}
	}
	self := userRecords[0].Name

	counts := make(map[string]int)
	var order []string
	for _, rec := range allRecords {
		if !activities[rec.ActivityName] || rec.Name == self {
			continue
		}
		if counts[rec.Name] == 0 {
			order = append(order, rec.Name)
		}
		counts[rec.Name]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > r.MaxCoVolunteers {
		order = order[:r.MaxCoVolunteers]
	}
	return order
}
