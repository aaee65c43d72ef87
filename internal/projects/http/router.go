package http

import (
	"github.com/gin-gonic/gin"

	"github.com/smartsdlc/go-sdlc-backend/internal/api/http/middleware"
)

// Register mounts the breakdown API under the given group. The API
// key guard applies to the mutating generate route only; reads stay
// open to the form layer.
func (h *Handler) Register(api gin.IRouter, apiKey string) {
	projects := api.Group("/projects")
	projects.POST("/breakdown", middleware.APIKey(apiKey), h.generate)
	projects.GET("", h.list)
	projects.GET("/search", h.search)
	projects.GET("/:id", h.project)
	projects.GET("/:id/breakdown", h.breakdown)
	projects.GET("/:id/export", h.exportBreakdown)

	api.GET("/sessions/:session_id/breakdown", h.sessionBreakdown)
	api.GET("/analytics", h.analyticsSnapshot)
}
