package transit

import "math"

// TravelTimeInfo is the precomputed cost of travelling between an ordered
// station pair. HasExpress is an independently curated flag and is not
// derived from ExpressTimeSec being set.
type TravelTimeInfo struct {
	NormalTimeSec    int      `json:"normal_time_sec"`
	ExpressTimeSec   *int     `json:"express_time_sec,omitempty"`
	TransferCount    int      `json:"transfer_count"`
	TransferStations []string `json:"transfer_stations,omitempty"`
	HasExpress       bool     `json:"has_express"`
	WalkingDistanceM int      `json:"walking_distance_m"`
}

// TravelTimeTable is a sparse directed-pair travel-time table keyed by
// "{from}-{to}" station IDs.
type TravelTimeTable struct {
	pairs map[string]TravelTimeInfo
}

// NewTravelTimeTable builds a table from the given pairs. The map is copied
// so the table cannot be mutated after construction.
func NewTravelTimeTable(pairs map[string]TravelTimeInfo) *TravelTimeTable {
	copied := make(map[string]TravelTimeInfo, len(pairs))
	for k, v := range pairs {
		copied[k] = v
	}
	return &TravelTimeTable{pairs: copied}
}

func pairKey(from, to string) string { return from + "-" + to }

// Lookup returns the travel time between two stations. On a miss the reverse
// direction is tried under the assumption that travel time is symmetric.
func (t *TravelTimeTable) Lookup(from, to string) (TravelTimeInfo, bool) {
	if info, ok := t.pairs[pairKey(from, to)]; ok {
		return info, true
	}
	if info, ok := t.pairs[pairKey(to, from)]; ok {
		return info, true
	}
	return TravelTimeInfo{}, false
}

// ExpressTimeSaved returns how many seconds an express service saves over
// the normal service for the pair, or 0 when no express time is recorded.
func (t *TravelTimeTable) ExpressTimeSaved(from, to string) int {
	info, ok := t.Lookup(from, to)
	if !ok || info.ExpressTimeSec == nil {
		return 0
	}
	return info.NormalTimeSec - *info.ExpressTimeSec
}

// EstimateTravelTime approximates the travel time in seconds for a pair not
// present in the table: a 500 m/min cruise speed plus a flat 5-minute
// surcharge when a transfer is involved.
func EstimateTravelTime(distanceM float64, hasTransfer bool) int {
	sec := int(math.Ceil(distanceM / 500.0 * 60.0))
	if hasTransfer {
		sec += 300
	}
	return sec
}
