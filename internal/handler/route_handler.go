package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ganengile/service-matching/internal/application"
	"github.com/ganengile/service-matching/internal/auth"
	"github.com/ganengile/service-matching/internal/middleware"
	"github.com/ganengile/service-matching/internal/response"
)

// RouteHandler handles HTTP requests for giller route profiles.
type RouteHandler struct {
	service *application.MatchingService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.MatchingService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers route-profile routes on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	routes := r.Group("/api/v1/routes")
	routes.Use(authMW)
	{
		routes.POST("", middleware.RequireRole(auth.RoleGiller), h.CreateRoute)
		routes.GET("", middleware.RequireRole(auth.RoleGiller), h.ListRoutes)
	}
}

// CreateRoute handles POST /api/v1/routes.
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	gillerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRoute(c.Request.Context(), gillerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRoutes handles GET /api/v1/routes, returning the caller's own profiles.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	gillerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.service.GetGillerRoutes(c.Request.Context(), gillerID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
