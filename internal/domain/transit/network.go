package transit

// Network bundles the four read-only reference models the matching engine
// queries. Build it once at process start and never mutate it afterwards;
// all methods are safe for concurrent use.
type Network struct {
	Stations    *StationDirectory
	TravelTimes *TravelTimeTable
	Express     *ExpressTimetable
	Congestion  *CongestionModel
}

// NewNetwork assembles a network from its reference tables.
func NewNetwork(
	stations *StationDirectory,
	travelTimes *TravelTimeTable,
	express *ExpressTimetable,
	congestion *CongestionModel,
) *Network {
	return &Network{
		Stations:    stations,
		TravelTimes: travelTimes,
		Express:     express,
		Congestion:  congestion,
	}
}
