package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	path := writeCSV(t, `name,volunteer_id,activity_name,activity_type,activity_date,hours,cover_img
Li Hua,138 1234-5678,Rural Classroom,Teaching,2024-03-15,5.5,classroom.jpg
Wang Fang,13800000000,River Patrol,Eco,2024/04/02,3,
`)

	records, err := NewCSVSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	require.Equal(t, "Li Hua", first.Name)
	require.Equal(t, "13812345678", first.VolunteerID, "IDs are normalised on load")
	require.Equal(t, "Rural Classroom", first.ActivityName)
	require.Equal(t, "Teaching", first.Category)
	require.NotNil(t, first.Date)
	require.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), *first.Date)
	require.Equal(t, 5.5, first.Hours)
	require.Equal(t, "classroom.jpg", first.CoverImage)

	require.NotNil(t, records[1].Date, "slash-separated dates parse too")
}

func TestCSVSourceColumnOrderIndependent(t *testing.T) {
	path := writeCSV(t, `hours,name,activity_type,volunteer_id,activity_name
2,Li Hua,Care,1,Elder Visit
`)

	records, err := NewCSVSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Elder Visit", records[0].ActivityName)
	require.Equal(t, 2.0, records[0].Hours)
	require.Nil(t, records[0].Date, "missing columns read as blank")
}

func TestCSVSourceLenientFields(t *testing.T) {
	path := writeCSV(t, `name,volunteer_id,activity_name,activity_type,activity_date,hours
Li Hua,1,Bad Date,Other,someday,abc
Li Hua,1,Negative,Other,2024-01-01,-4
Li Hua,1,Short Row,Other
`)

	records, err := NewCSVSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Nil(t, records[0].Date)
	require.Zero(t, records[0].Hours, "unparseable hours degrade to zero")
	require.Zero(t, records[1].Hours, "negative hours degrade to zero")
	require.Equal(t, "Short Row", records[2].ActivityName, "short rows still load")
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv")).Load(context.Background())
	require.Error(t, err)
}

func TestCSVSourceCancelledContext(t *testing.T) {
	path := writeCSV(t, `name,volunteer_id,activity_name
Li Hua,1,Anything
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource(path).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
