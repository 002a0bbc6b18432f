package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ganengile/service-matching/internal/application"
	"github.com/ganengile/service-matching/internal/auth"
	"github.com/ganengile/service-matching/internal/middleware"
	"github.com/ganengile/service-matching/internal/response"
)

// AdminHandler handles admin HTTP requests for the matching service.
type AdminHandler struct {
	service *application.MatchingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *application.MatchingService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/stats/matching", h.MatchingStats)
	}
}

// MatchingStats handles GET /api/v1/admin/stats/matching.
func (h *AdminHandler) MatchingStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
