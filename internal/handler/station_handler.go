package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ganengile/service-matching/internal/domain/transit"
	"github.com/ganengile/service-matching/internal/response"
)

// StationHandler serves read-only transit directory queries, mainly for
// client-side station autocomplete.
type StationHandler struct {
	network *transit.Network
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(network *transit.Network) *StationHandler {
	return &StationHandler{network: network}
}

// RegisterRoutes registers station routes. The directory is public data, so
// no auth is required.
func (h *StationHandler) RegisterRoutes(r *gin.RouterGroup) {
	stations := r.Group("/api/v1/stations")
	{
		stations.GET("/search", h.Search)
		stations.GET("/transfers", h.Transfers)
		stations.GET("/:id", h.GetStation)
		stations.GET("/:id/next-express", h.NextExpress)
	}
}

// Search handles GET /api/v1/stations/search?q=.
func (h *StationHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.BadRequest(c, "query parameter q is required")
		return
	}
	response.Success(c, h.network.Stations.Search(q))
}

// Transfers handles GET /api/v1/stations/transfers.
func (h *StationHandler) Transfers(c *gin.Context) {
	response.Success(c, h.network.Stations.TransferStations())
}

// GetStation handles GET /api/v1/stations/:id.
func (h *StationHandler) GetStation(c *gin.Context) {
	station, ok := h.network.Stations.GetByID(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"error": "station not found"})
		return
	}
	response.Success(c, station)
}

// NextExpress handles GET /api/v1/stations/:id/next-express?line=&at=.
func (h *StationHandler) NextExpress(c *gin.Context) {
	stationID := c.Param("id")
	lineID := c.Query("line")
	if lineID == "" {
		response.BadRequest(c, "query parameter line is required")
		return
	}

	at, err := transit.ParseClock(c.Query("at"))
	if err != nil {
		response.BadRequest(c, "query parameter at must be HH:mm")
		return
	}

	next, ok := h.network.Express.NextExpressTime(stationID, lineID, at)
	if !ok {
		c.JSON(404, gin.H{"error": "no express service at this station on this line"})
		return
	}

	response.Success(c, gin.H{
		"station_id":      stationID,
		"line_id":         lineID,
		"next_departure":  next,
		"frequency_score": h.network.Express.TrainFrequencyScore(lineID, at),
		"rush_hour":       transit.IsRushHour(at),
	})
}
