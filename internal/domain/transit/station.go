package transit

// LineType classifies the service pattern of a subway line.
type LineType string

const (
	LineTypeGeneral LineType = "general"
	LineTypeExpress LineType = "express"
	LineTypeSpecial LineType = "special"
)

// Line is a subway line serving one or more stations.
type Line struct {
	ID    string   `json:"line_id"`
	Name  string   `json:"name"`
	Code  string   `json:"code"`
	Color string   `json:"color"`
	Type  LineType `json:"type"`
}

// Station is a single subway stop. A station served by more than one line
// is a transfer station.
type Station struct {
	ID         string  `json:"id"`
	NameKo     string  `json:"name_ko"`
	NameEn     string  `json:"name_en"`
	Lines      []Line  `json:"lines"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IsTransfer bool    `json:"is_transfer"`
	IsTerminus bool    `json:"is_terminus"`
}

// ServedBy returns true if the station is served by the given line.
func (s Station) ServedBy(lineID string) bool {
	for _, l := range s.Lines {
		if l.ID == lineID {
			return true
		}
	}
	return false
}

// SharesLineWith returns true if the two stations are served by at least
// one common line.
func (s Station) SharesLineWith(other Station) bool {
	for _, l := range s.Lines {
		if other.ServedBy(l.ID) {
			return true
		}
	}
	return false
}
