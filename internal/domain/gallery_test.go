package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGalleryPicksNewestFirst(t *testing.T) {
	rules := DefaultRules()
	records := []ActivityRecord{
		{ActivityName: "Spring Planting", Category: "Eco", Date: day(2024, time.March, 12), Hours: 2, CoverImage: "planting.jpg"},
		{ActivityName: "Autumn Visit", Category: "Care", Date: day(2024, time.October, 2), Hours: 2},
		{ActivityName: "Lost Paperwork", Category: "Other", Hours: 1},
	}

	items := rules.Gallery(records, "/media/images")

	require.Len(t, items, 3)
	require.Equal(t, "Autumn Visit", items[0].Title)
	require.Equal(t, "2024.10", items[0].Date)
	require.Nil(t, items[0].Img)

	require.Equal(t, "Spring Planting", items[1].Title)
	require.NotNil(t, items[1].Img)
	require.Equal(t, "/media/images/planting.jpg", *items[1].Img)

	require.Equal(t, "Lost Paperwork", items[2].Title, "undated records sort last")
	require.Empty(t, items[2].Date)
}

func TestGalleryRespectsLimit(t *testing.T) {
	rules := DefaultRules()

	var records []ActivityRecord
	for i := 0; i < rules.MaxGalleryItems+4; i++ {
		records = append(records, ActivityRecord{
			ActivityName: "Weekly Class",
			Category:     "Teaching",
			Date:         day(2024, time.January, i+1),
			Hours:        1,
		})
	}

	items := rules.Gallery(records, "/media/images")
	require.Len(t, items, rules.MaxGalleryItems)
}

func TestCoVolunteersRankedByFrequency(t *testing.T) {
	rules := DefaultRules()

	user := []ActivityRecord{
		{Name: "Li Hua", VolunteerID: "1", ActivityName: "River Patrol"},
		{Name: "Li Hua", VolunteerID: "1", ActivityName: "Elder Visit"},
	}
	all := append([]ActivityRecord{
		{Name: "Wang Fang", ActivityName: "River Patrol"},
		{Name: "Zhao Lei", ActivityName: "River Patrol"},
		{Name: "Wang Fang", ActivityName: "Elder Visit"},
		{Name: "Chen Jie", ActivityName: "Unrelated Gala"},
	}, user...)

	names := rules.CoVolunteers(user, all)

	require.Equal(t, []string{"Wang Fang", "Zhao Lei"}, names)
	require.NotContains(t, names, "Li Hua", "the identity itself is excluded")
	require.NotContains(t, names, "Chen Jie", "only shared activities count")
}

func TestCoVolunteersEmptyUser(t *testing.T) {
	rules := DefaultRules()
	require.Nil(t, rules.CoVolunteers(nil, []ActivityRecord{{Name: "Someone"}}))
}
