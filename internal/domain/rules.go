package domain

import "regexp"

// Rules gathers every weight table, category map and threshold the pipeline
// uses. Keeping them in one structure keeps the scoring tunable and testable
// instead of being scattered through the aggregation code.
type Rules struct {
	// Dimensions define the radar-chart buckets in ranking order. The order
	// matters: dominant-category ties resolve to the first dimension listed.
	Dimensions []Dimension

	// FallbackLabel is the display label used when the dominant dimension
	// cannot be mapped back to a source category.
	FallbackLabel string

	// DurationWeights estimates how many days an activity of a given
	// category keeps a volunteer engaged.
	DurationWeights map[string]int

	// CampKeyword is matched against the activity name before the category
	// table is consulted; long camps are named, not categorised.
	CampKeyword string
	CampDays    int

	DefaultDurationDays int
	MaxActiveDays       int

	// HourTiers are ordered by descending MinHours; the first applicable
	// tier wins.
	HourTiers []HourTier

	// RoleTags map a dimension key to the role tag for volunteers whose
	// hours concentrate there. "others" doubles as the fallback.
	RoleTags map[string]WeightedTag

	Specialization SpecializationRule
	Breadth        BreadthRule

	// FrequencyRules are evaluated in order; at most one fires.
	FrequencyRules []FrequencyRule

	// Seasons in tie-break order. Every month belongs to exactly one season.
	Seasons []Season

	// KeywordTags are easter eggs triggered by patterns in the concatenated
	// activity names. Several may fire independently.
	KeywordTags []KeywordTag

	// DefaultTags pad the final selection and serve as the whole answer for
	// identities with no records.
	DefaultTags []Tag

	MaxTags int

	// CumulativeThresholds are walked in ascending order against the day
	// ledger; each emits one milestone the first day it is reached.
	CumulativeThresholds []int
	ThresholdTitles      map[int]string

	MinRecurringCount  int
	MinDiverseTypes    int
	MaxMilestones      int
	MaxGalleryItems    int
	MaxCoVolunteers    int

	// FallbackLetter is used when the org metadata has no letter for the
	// dominant department, not even the "Other" one.
	FallbackLetter []string

	GuestName string
}

// Dimension binds a stable JSON key to the exact source category it counts.
type Dimension struct {
	Key      string
	Category string
}

// HourTier is an achievement tier selected purely by cumulative hours.
// Descriptions may contain a "{hours}" placeholder.
type HourTier struct {
	MinHours float64
	Name     string
	Weight   int
	Desc     string
}

// WeightedTag is a tag candidate with its ranking weight.
type WeightedTag struct {
	Name   string
	Weight int
	Desc   string
}

// SpecializationRule fires when the dominant dimension holds at least
// MinShare of all categorised hours. "{category}" expands to the dominant
// display label.
type SpecializationRule struct {
	MinShare float64
	MinHours float64
	Tag      WeightedTag
}

// BreadthRule fires when enough distinct categories are present. Mutually
// exclusive with SpecializationRule; specialization is checked first.
type BreadthRule struct {
	MinCategories int
	Tag           WeightedTag
}

// FrequencyRule matches either a record count or a distinct-active-month
// count, whichever field is set.
type FrequencyRule struct {
	MinEvents int
	MinMonths int
	Tag       WeightedTag
}

// Season buckets hours by record month. Descriptions ride on the tag.
type Season struct {
	Name   string
	Months [3]int
	Tag    WeightedTag
}

// KeywordTag awards a tag when Pattern matches the joined activity names.
type KeywordTag struct {
	Pattern *regexp.Regexp
	Tag     WeightedTag
}

// DefaultRules returns the production rule set. The weights mirror the ones
// the association has been tuning since the first annual-report campaign.
func DefaultRules() Rules {
	return Rules{
		Dimensions: []Dimension{
			{Key: "teaching", Category: "Teaching"},
			{Key: "care", Category: "Care"},
			{Key: "eco", Category: "Eco"},
			{Key: "mind", Category: "Mind Journey"},
			{Key: "others", Category: "Other"},
		},
		FallbackLabel: "Other",

		DurationWeights: map[string]int{
			"Online Teaching":   35,
			"Summer Camp":       14,
			"Hometown Practice": 7,
			"Buddy Program":     48,
			"Dandelion":         28,
			"Ember Fair":        30,
		},
		CampKeyword:         "Summer Camp",
		CampDays:            14,
		DefaultDurationDays: 1,
		MaxActiveDays:       365,

		HourTiers: []HourTier{
			{MinHours: 200, Name: "Galaxy Sentinel", Weight: 100, Desc: "{hours} volunteer hours on the clock. You are not just a participant any more. You stand watch over this little galaxy now."},
			{MinHours: 120, Name: "Century Guardian", Weight: 90, Desc: "Past the hundred-hour mark. Thank you for the long, quiet persistence."},
			{MinHours: 60, Name: "Service Ace", Weight: 80, Desc: "{hours} volunteer hours and counting. You are part of the association's backbone now!"},
			{MinHours: 30, Name: "Warm Battery", Weight: 70, Desc: "Your kindness works like a battery, steadily powering the people who need it."},
			{MinHours: 10, Name: "Firefly Glow", Weight: 60, Desc: "Small lights add up. Thank you for every single minute."},
			{MinHours: 0, Name: "First Spark", Weight: 50, Desc: "This is where your volunteer story starts; a single spark can light a prairie."},
		},

		RoleTags: map[string]WeightedTag{
			"teaching": {Name: "Lamplighter", Weight: 85, Desc: "Most of your hours went to teaching. Be the lamp that lights the road ahead of the kids."},
			"care":     {Name: "Warmheart Angel", Weight: 85, Desc: "Most of your hours went to community care. You keep the elderly and the little ones close to heart."},
			"eco":      {Name: "Eco Pioneer", Weight: 85, Desc: "Most of your hours went to environmental work. Clear water and blue sky have you on their side."},
			"mind":     {Name: "Mind Guide", Weight: 85, Desc: "Most of your hours went to peer-support work. You listen, and listening heals."},
			"others":   {Name: "All-Round Helper", Weight: 85, Desc: "No fixed lane: wherever a hand is needed, there you are."},
		},

		Specialization: SpecializationRule{
			MinShare: 0.75,
			MinHours: 20,
			Tag:      WeightedTag{Name: "Specialist", Weight: 65, Desc: "Over 75% of your energy went into {category}. That is what an expert looks like."},
		},
		Breadth: BreadthRule{
			MinCategories: 3,
			Tag:           WeightedTag{Name: "Multi-Track Player", Weight: 70, Desc: "Wide-ranging: volunteers spotted you across several kinds of service this year."},
		},

		FrequencyRules: []FrequencyRule{
			{MinEvents: 8, Tag: WeightedTag{Name: "Frequent Flyer", Weight: 75, Desc: "You joined {events} activities this year, practically a resident of the sign-up sheet!"}},
			{MinMonths: 6, Tag: WeightedTag{Name: "Monthly Regular", Weight: 72, Desc: "Volunteering in more than six months of the year. That consistency is moving."}},
			{MinMonths: 4, Tag: WeightedTag{Name: "Steady Glow", Weight: 58, Desc: "Every season saw you show up. Thank you for the sustained effort."}},
		},

		Seasons: []Season{
			{Name: "spring", Months: [3]int{3, 4, 5}, Tag: WeightedTag{Name: "Spring Breeze", Weight: 40, Desc: "Ten miles of spring wind are no match for you; spring was your most active season."}},
			{Name: "summer", Months: [3]int{6, 7, 8}, Tag: WeightedTag{Name: "Summer Cicada", Weight: 40, Desc: "Blazing sun, undimmed enthusiasm; summer was your most active season."}},
			{Name: "autumn", Months: [3]int{9, 10, 11}, Tag: WeightedTag{Name: "Golden Harvest", Weight: 40, Desc: "A season of harvest; autumn holds the most of your footprints."}},
			{Name: "winter", Months: [3]int{12, 1, 2}, Tag: WeightedTag{Name: "Winter Ember", Weight: 40, Desc: "In the cold months you were the warm firelight; winter was your most active season."}},
		},

		KeywordTags: []KeywordTag{
			{Pattern: regexp.MustCompile(`Ember Fair`), Tag: WeightedTag{Name: "Torchbearer", Weight: 60, Desc: "Ember Fair limited edition. You guided the newcomers and passed the torch on."}},
			{Pattern: regexp.MustCompile(`Summer Camp`), Tag: WeightedTag{Name: "Dream Builder", Weight: 62, Desc: "Summer Camp limited edition. Thank you for building castles of dreams for the kids."}},
			{Pattern: regexp.MustCompile(`Teaching|Classroom|Lecture`), Tag: WeightedTag{Name: "Classroom Crew", Weight: 52, Desc: "At home on the podium, sowing seeds of knowledge."}},
			{Pattern: regexp.MustCompile(`Visit|Companion|Comfort`), Tag: WeightedTag{Name: "Companion Heart", Weight: 52, Desc: "Your company was the year's longest love letter."}},
			{Pattern: regexp.MustCompile(`Eco|River Patrol|Beach Cleanup`), Tag: WeightedTag{Name: "Earth Partner", Weight: 52, Desc: "Working towards a bluer, cleaner world, one pickup at a time."}},
		},

		DefaultTags: []Tag{
			{Name: "First Spark", Desc: "This is where your volunteer story starts; a single spark can light a prairie."},
			{Name: "All-Round Helper", Desc: "No fixed lane: wherever a hand is needed, there you are."},
			{Name: "Fresh Start", Desc: "Welcome to the volunteer family; the road ahead is one we walk together."},
			{Name: "Winter Limited", Desc: "You left warm footprints in this winter."},
		},
		MaxTags: 5,

		CumulativeThresholds: []int{1, 10, 30, 50, 100},
		ThresholdTitles: map[int]string{
			1:   "First Hour Lit",
			10:  "Ten-Hour Mark",
			50:  "Fifty-Hour Witness",
			100: "Hundred-Hour Honor",
		},

		MinRecurringCount: 3,
		MinDiverseTypes:   3,
		MaxMilestones:     8,
		MaxGalleryItems:   6,
		MaxCoVolunteers:   300,

		FallbackLetter: []string{
			"Dear friend,",
			"This year you quietly glowed among the crowd. May you be treated as gently as you treat others.",
		},

		GuestName: "Future Volunteer",
	}
}
