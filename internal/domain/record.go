// Package domain implements the aggregation and narrative pipeline that turns
// a volunteer's raw activity log into their personalised annual report.
package domain

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// ActivityRecord is one row of the volunteer activity log. Records are
// immutable once loaded; the whole set is replaced on refresh.
type ActivityRecord struct {
	Name         string
	VolunteerID  string // digits only, see NormalizeID
	ActivityName string
	Category     string
	Date         *time.Time // nil when the source field was blank or unparseable
	Hours        float64
	CoverImage   string
}

// Identity is the lookup key for one volunteer: display name plus the
// normalised phone / student number.
type Identity struct {
	Name string
	ID   string
}

// NewIdentity builds an Identity from raw request input.
func NewIdentity(name, rawID string) Identity {
	return Identity{Name: strings.TrimSpace(name), ID: NormalizeID(rawID)}
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeID strips everything but digits so "138 1234-5678" and
// "13812345678" compare equal.
func NormalizeID(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// FilterRecords selects all records belonging to the identity, sorted
// ascending by date. Records without a date sort last; ordering is stable so
// ties keep their source order.
func FilterRecords(records []ActivityRecord, id Identity) []ActivityRecord {
	if id.Name == "" || id.ID == "" {
		return nil
	}

	var out []ActivityRecord
	for _, rec := range records {
		if rec.Name == id.Name && rec.VolunteerID == id.ID {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}
