package domain

// OrgStats is the slow-changing org-wide metadata shown on every report:
// headline totals, per-department summaries and the year-end letters. Loaded
// once at startup and shared read-only across all reports.
type OrgStats struct {
	TotalOrgHours string              `json:"total_org_hours" yaml:"total_org_hours"`
	TotalEvents   string              `json:"total_events" yaml:"total_events"`
	TotalPeople   string              `json:"total_people" yaml:"total_people"`
	PublicGallery []GalleryItem       `json:"public_gallery" yaml:"public_gallery"`
	DeptSummaries map[string]string   `json:"dept_summaries" yaml:"dept_summaries"`
	DeptLetters   map[string][]string `json:"dept_letters" yaml:"dept_letters"`
}

// DefaultOrgStats ships usable content for the common case where nobody has
// written the metadata file yet.
func DefaultOrgStats() OrgStats {
	return OrgStats{
		TotalOrgHours: "12580",
		TotalEvents:   "86",
		TotalPeople:   "1200+",
		PublicGallery: []GalleryItem{},
		DeptSummaries: map[string]string{
			"Teaching":     "This year we lit up classrooms across five towns with chalk dust and laughter.",
			"Care":         "This year we kept company through countless lonely dusks and dawns.",
			"Eco":          "This year our hands made the rivers run a little clearer.",
			"Mind Journey": "This year, conversation by conversation, we held each other's feelings.",
		},
		DeptLetters: map[string][]string{
			"Teaching": {
				"Dear you. A small piece of chalk once danced at your fingertips.",
				"Because of you, faraway classrooms held one more gentle light.",
			},
			"Care": {
				"Every room you stepped into quietly changed the air inside it.",
				"Every hand you held pulled winter a little closer to spring.",
			},
			"Eco": {
				"Every piece of litter you bent down for was a first step in guarding the stars and rivers.",
				"The mountains and seas will remember your quiet keeping.",
			},
			"Mind Journey": {
				"The way you are willing to listen is itself a very gentle kind of strength.",
				"May you be treated gently too; take care of yourself while you care for others.",
			},
			"Other": {
				"You may have forgotten the weekends you filled, but time remembers.",
				"Thank you for still giving your hours to others in the middle of busy days.",
			},
		},
	}
}

// GuestReport is the minimal payload for an identity with no records,
// a first-class outcome, not an error.
type GuestReport struct {
	IsVolunteer bool     `json:"is_volunteer"`
	Name        string   `json:"name"`
	OrgData     OrgStats `json:"org_data"`
}

// VolunteerReport is the full composed annual report. Field names are part
// of the contract with the presentation layer; do not rename.
type VolunteerReport struct {
	IsVolunteer   bool          `json:"is_volunteer"`
	Name          string        `json:"name"`
	TotalHours    float64       `json:"totalHours"`
	MainType      string        `json:"mainType"`
	Stats         CategoryStats `json:"stats"`
	Tags          []Tag         `json:"tags"`
	Activities    []GalleryItem `json:"activities"`
	CoVolunteers  []string      `json:"co_volunteers"`
	OrgData       OrgStats      `json:"org_data"`
	TotalDays     int           `json:"total_days"`
	Milestones    []Milestone   `json:"milestones"`
	MonthStats    []MonthStat   `json:"month_stats"`
	LetterContent []string      `json:"letter_content"`
}

// Service assembles annual reports. It holds no mutable state; BuildReport
// is deterministic over its inputs and safe to call concurrently.
type Service struct {
	rules     Rules
	imageBase string
}

// NewService constructs a Service.
func NewService(rules Rules, imageBase string) *Service {
	return &Service{rules: rules, imageBase: imageBase}
}

// Rules exposes the rule set in use (for wiring and tests).
func (s *Service) Rules() Rules {
	return s.rules
}

// BuildReport composes one volunteer's annual report from the full record
// set and the org metadata. An identity with no matching records yields a
// GuestReport.
func (s *Service) BuildReport(records []ActivityRecord, org OrgStats, id Identity) any {
	userRecords := FilterRecords(records, id)
	if len(userRecords) == 0 {
		return GuestReport{
			IsVolunteer: false,
			Name:        s.rules.GuestName,
			OrgData:     org,
		}
	}

	totalHours := 0.0
	for _, rec := range userRecords {
		totalHours += rec.Hours
	}
	totalHours = round1(totalHours)

	stats, mainType := s.rules.CategoryHours(userRecords)

	return VolunteerReport{
		IsVolunteer:   true,
		Name:          id.Name,
		TotalHours:    totalHours,
		MainType:      mainType,
		Stats:         stats,
		Tags:          s.rules.AchievementTags(userRecords, totalHours, mainType),
		Activities:    s.rules.Gallery(userRecords, s.imageBase),
		CoVolunteers:  s.rules.CoVolunteers(userRecords, records),
		OrgData:       org,
		TotalDays:     s.rules.ActiveDays(userRecords),
		Milestones:    s.rules.Milestones(userRecords),
		MonthStats:    MonthlyHours(userRecords),
		LetterContent: s.rules.PickLetter(org, mainType),
	}
}

// PickLetter chooses the department letter for the dominant category,
// falling back to the "Other" letter and finally to the built-in one.
func (r Rules) PickLetter(org OrgStats, mainType string) []string {
	lines, ok := org.DeptLetters[mainType]
	if !ok {
		lines = org.DeptLetters[r.FallbackLabel]
	}
	if len(lines) == 0 {
		lines = r.FallbackLetter
	}
	return lines
}
