package transit

// ServiceType identifies an express-like service pattern on a line.
type ServiceType string

const (
	ServiceTypeExpress ServiceType = "express"
	ServiceTypeSpecial ServiceType = "special"
	ServiceTypeITX     ServiceType = "itx"
)

// ExpressIntervals holds the departure interval in seconds per time-of-day
// bucket.
type ExpressIntervals struct {
	MorningRushSec int `json:"morning_rush_sec"`
	EveningRushSec int `json:"evening_rush_sec"`
	DaytimeSec     int `json:"daytime_sec"`
	NightSec       int `json:"night_sec"`
}

// ExpressTrainSchedule describes one express/special/ITX service on a line.
// Stops are ordered along the physical route. A line may carry multiple
// schedules with different service types.
type ExpressTrainSchedule struct {
	LineID        string           `json:"line_id"`
	Type          ServiceType      `json:"type"`
	OperatingDays []int            `json:"operating_days"`
	FirstTrain    string           `json:"first_train"`
	LastTrain     string           `json:"last_train"`
	Intervals     ExpressIntervals `json:"intervals"`
	Stops         []string         `json:"stops"`
	TimeSavings   map[string]int   `json:"time_savings"`
}

// StopsAt returns true if the service calls at the given station.
func (s ExpressTrainSchedule) StopsAt(stationID string) bool {
	for _, stop := range s.Stops {
		if stop == stationID {
			return true
		}
	}
	return false
}

// ExpressTimetable is the read-only collection of express schedules for the
// network.
type ExpressTimetable struct {
	schedules []ExpressTrainSchedule
}

// NewExpressTimetable builds a timetable from the given schedules.
func NewExpressTimetable(schedules []ExpressTrainSchedule) *ExpressTimetable {
	copied := make([]ExpressTrainSchedule, len(schedules))
	copy(copied, schedules)
	return &ExpressTimetable{schedules: copied}
}

// SchedulesForLine returns every schedule operating on the given line.
func (t *ExpressTimetable) SchedulesForLine(lineID string) []ExpressTrainSchedule {
	var result []ExpressTrainSchedule
	for _, s := range t.schedules {
		if s.LineID == lineID {
			result = append(result, s)
		}
	}
	return result
}

// HasExpressBetween returns true if both stations appear, in either order,
// among the stops of some schedule on the line. Travel direction is not
// validated.
func (t *ExpressTimetable) HasExpressBetween(from, to, lineID string) bool {
	for _, s := range t.schedules {
		if s.LineID != lineID {
			continue
		}
		if s.StopsAt(from) && s.StopsAt(to) {
			return true
		}
	}
	return false
}

// NextExpressTime returns the next express departure at the station, formatted
// "HH:mm". Departures are assumed to run on a fixed grid from the top of the
// hour at the interval of the current time bucket. First/last-train bounds are
// not consulted, so a result may fall outside actual operating hours.
func (t *ExpressTimetable) NextExpressTime(stationID, lineID string, at ClockMinutes) (string, bool) {
	var schedule *ExpressTrainSchedule
	for i, s := range t.schedules {
		if s.LineID == lineID && s.StopsAt(stationID) {
			schedule = &t.schedules[i]
			break
		}
	}
	if schedule == nil {
		return "", false
	}

	intervalMin := bucketInterval(schedule.Intervals, at.Hour()) / 60
	if intervalMin <= 0 {
		return "", false
	}

	minute := at.Minute()
	next := ((minute + intervalMin - 1) / intervalMin) * intervalMin
	hour := at.Hour() + next/60
	return ClockMinutes(hour*60 + next%60).String(), true
}

// TrainFrequencyScore is a fixed heuristic for how well served the line is at
// the given time: lines with an express service score 10/9/7 for morning
// rush/evening rush/other, lines without score 6 in either rush window and 3
// otherwise.
func (t *ExpressTimetable) TrainFrequencyScore(lineID string, at ClockMinutes) int {
	hour := at.Hour()
	morningRush := hour >= 7 && hour < 9
	eveningRush := hour >= 18 && hour < 20

	if len(t.SchedulesForLine(lineID)) > 0 {
		switch {
		case morningRush:
			return 10
		case eveningRush:
			return 9
		default:
			return 7
		}
	}
	if morningRush || eveningRush {
		return 6
	}
	return 3
}

// bucketInterval maps an hour to the schedule's interval for that bucket:
// 07-09 morning rush, 18-20 evening rush, 09-18 daytime, otherwise night.
func bucketInterval(iv ExpressIntervals, hour int) int {
	switch {
	case hour >= 7 && hour < 9:
		return iv.MorningRushSec
	case hour >= 18 && hour < 20:
		return iv.EveningRushSec
	case hour >= 9 && hour < 18:
		return iv.DaytimeSec
	default:
		return iv.NightSec
	}
}
