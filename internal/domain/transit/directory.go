package transit

import "strings"

// StationDirectory is the read-only registry of stations in the network.
// The dataset is small and fixed, so every query is a linear scan; an index
// would not pay for itself here.
type StationDirectory struct {
	stations []Station
}

// NewStationDirectory builds a directory from the given stations. The slice
// is copied so the directory cannot be mutated through the original.
func NewStationDirectory(stations []Station) *StationDirectory {
	copied := make([]Station, len(stations))
	copy(copied, stations)
	return &StationDirectory{stations: copied}
}

// GetByID returns the station with the given identifier.
func (d *StationDirectory) GetByID(id string) (Station, bool) {
	for _, s := range d.stations {
		if s.ID == id {
			return s, true
		}
	}
	return Station{}, false
}

// GetByName returns the station whose Korean name matches exactly.
// Matching is case-sensitive; callers are responsible for normalization.
func (d *StationDirectory) GetByName(name string) (Station, bool) {
	for _, s := range d.stations {
		if s.NameKo == name {
			return s, true
		}
	}
	return Station{}, false
}

// GetByLine returns every station served by the given line.
func (d *StationDirectory) GetByLine(lineID string) []Station {
	var result []Station
	for _, s := range d.stations {
		if s.ServedBy(lineID) {
			result = append(result, s)
		}
	}
	return result
}

// TransferStations returns every station flagged as a transfer station.
func (d *StationDirectory) TransferStations() []Station {
	var result []Station
	for _, s := range d.stations {
		if s.IsTransfer {
			result = append(result, s)
		}
	}
	return result
}

// Search returns stations whose Korean or English name contains the query,
// case-insensitively.
func (d *StationDirectory) Search(query string) []Station {
	q := strings.ToLower(query)
	var result []Station
	for _, s := range d.stations {
		if strings.Contains(strings.ToLower(s.NameKo), q) ||
			strings.Contains(strings.ToLower(s.NameEn), q) {
			result = append(result, s)
		}
	}
	return result
}

// Len returns the number of stations in the directory.
func (d *StationDirectory) Len() int { return len(d.stations) }
