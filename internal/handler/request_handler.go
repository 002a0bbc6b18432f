package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ganengile/service-matching/internal/application"
	"github.com/ganengile/service-matching/internal/auth"
	"github.com/ganengile/service-matching/internal/middleware"
	"github.com/ganengile/service-matching/internal/response"
)

// RequestHandler handles HTTP requests for delivery requests and matching.
type RequestHandler struct {
	service *application.MatchingService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.MatchingService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers delivery-request routes on the given router group.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	requests := r.Group("/api/v1/requests")
	requests.Use(authMW)
	{
		requests.POST("", middleware.RequireRole(auth.RoleGller), h.CreateRequest)
		requests.GET("/:id/matches", h.GetMatches)
	}
}

// CreateRequest handles POST /api/v1/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	gllerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRequest(c.Request.Context(), gllerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetMatches handles GET /api/v1/requests/:id/matches?limit=n.
func (h *RequestHandler) GetMatches(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	results, err := h.service.MatchRequest(c.Request.Context(), requestID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, results)
}
