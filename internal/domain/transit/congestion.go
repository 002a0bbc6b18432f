package transit

// defaultCongestionLevel is assumed for unknown lines and for hours outside
// the tabulated slots.
const defaultCongestionLevel = 5

// CongestionLevels holds the crowding level (1 empty .. 10 extremely crowded)
// for each of the seven fixed daily slots.
type CongestionLevels struct {
	EarlyMorning int `json:"early_morning"` // 05-07
	MorningRush  int `json:"morning_rush"`  // 07-09
	Morning      int `json:"morning"`       // 09-12
	Lunch        int `json:"lunch"`         // 12-14
	Afternoon    int `json:"afternoon"`     // 14-18
	EveningRush  int `json:"evening_rush"`  // 18-20
	Night        int `json:"night"`         // 20-23
}

// CongestionData is the crowding profile of one line. SectionOverrides maps
// "{from}-{to}" station pairs to a level; the scoring engine does not read
// them today, they are kept as an extension point.
type CongestionData struct {
	LineID           string           `json:"line_id"`
	Levels           CongestionLevels `json:"levels"`
	SectionOverrides map[string]int   `json:"section_overrides,omitempty"`
}

// CongestionModel holds per-line congestion profiles, independent of the
// express timetable.
type CongestionModel struct {
	byLine map[string]CongestionData
}

// NewCongestionModel builds a model from the given profiles.
func NewCongestionModel(profiles []CongestionData) *CongestionModel {
	byLine := make(map[string]CongestionData, len(profiles))
	for _, p := range profiles {
		byLine[p.LineID] = p
	}
	return &CongestionModel{byLine: byLine}
}

// LevelAt returns the congestion level of the line at the given time.
// Unknown lines default to a moderate 5.
func (m *CongestionModel) LevelAt(lineID string, at ClockMinutes) int {
	data, ok := m.byLine[lineID]
	if !ok {
		return defaultCongestionLevel
	}
	return slotLevel(data.Levels, at.Hour())
}

// ScoreAt converts a congestion level to a 0-10 score where higher means
// less crowded.
func (m *CongestionModel) ScoreAt(lineID string, at ClockMinutes) int {
	score := 10 - m.LevelAt(lineID, at)
	if score < 0 {
		return 0
	}
	return score
}

// IsRushHour reports whether the time falls in [07:00,09:00) or [18:00,20:00).
func IsRushHour(at ClockMinutes) bool {
	return (at >= 7*60 && at < 9*60) || (at >= 18*60 && at < 20*60)
}

// RushHourPenalty returns -3 during rush hour and 0 otherwise. It is exposed
// for callers but is not summed into the matching total.
func RushHourPenalty(at ClockMinutes) int {
	if IsRushHour(at) {
		return -3
	}
	return 0
}

func slotLevel(levels CongestionLevels, hour int) int {
	switch {
	case hour >= 5 && hour < 7:
		return levels.EarlyMorning
	case hour >= 7 && hour < 9:
		return levels.MorningRush
	case hour >= 9 && hour < 12:
		return levels.Morning
	case hour >= 12 && hour < 14:
		return levels.Lunch
	case hour >= 14 && hour < 18:
		return levels.Afternoon
	case hour >= 18 && hour < 20:
		return levels.EveningRush
	case hour >= 20 && hour < 23:
		return levels.Night
	default:
		return defaultCongestionLevel
	}
}
