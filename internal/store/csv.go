package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Lqint/RMBSVolReport/internal/domain"
)

// CSVSource reads the activity log exported from the association's
// spreadsheet. Malformed fields degrade to neutral values (zero hours, no
// date) instead of failing the whole load.
type CSVSource struct {
	Path string
}

// NewCSVSource builds a CSVSource for the given file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006.01.02"}

// Load reads every row of the CSV. The header row maps columns by name, so
// column order in the export does not matter.
func (s *CSVSource) Load(ctx context.Context) ([]domain.ActivityRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []domain.ActivityRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		records = append(records, domain.ActivityRecord{
			Name:         field(row, "name"),
			VolunteerID:  domain.NormalizeID(field(row, "volunteer_id")),
			ActivityName: field(row, "activity_name"),
			Category:     field(row, "activity_type"),
			Date:         parseDate(field(row, "activity_date")),
			Hours:        parseHours(field(row, "hours")),
			CoverImage:   field(row, "cover_img"),
		})
	}
	return records, nil
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

func parseHours(raw string) float64 {
	if raw == "" {
		return 0
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil || h < 0 {
		return 0
	}
	return h
}
