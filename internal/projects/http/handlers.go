package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smartsdlc/go-sdlc-backend/internal/analytics"
	"github.com/smartsdlc/go-sdlc-backend/internal/history"
	"github.com/smartsdlc/go-sdlc-backend/internal/projects/repository"
	"github.com/smartsdlc/go-sdlc-backend/internal/projects/service"
	sdlc "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/export"
)

type Handler struct {
	generator  *service.GenerationService
	projects   *repository.ProjectRepo
	breakdowns *repository.BreakdownRepo
	sessions   *history.Store
	analytics  *analytics.Service
}

func NewHandler(
	generator *service.GenerationService,
	projects *repository.ProjectRepo,
	breakdowns *repository.BreakdownRepo,
	sessions *history.Store,
	analyticsService *analytics.Service,
) *Handler {
	return &Handler{
		generator:  generator,
		projects:   projects,
		breakdowns: breakdowns,
		sessions:   sessions,
		analytics:  analyticsService,
	}
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.descriptor(), req.SessionID)
	if err != nil {
		if errors.Is(err, sdlc.ErrInvalidDuration) || errors.Is(err, sdlc.ErrMissingProjectName) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "result": result})
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	items, err := h.projects.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "query parameter q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.projects.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) project(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	p, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) breakdown(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	b, err := h.breakdowns.LatestForProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBreakdownNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "breakdown not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "breakdown": b})
}

var exportContentTypes = map[export.Format]string{
	export.FormatJSON:     "application/json",
	export.FormatCSV:      "text/csv",
	export.FormatMarkdown: "text/markdown",
}

func (h *Handler) exportBreakdown(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	format, err := export.ParseFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	b, err := h.breakdowns.LatestForProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBreakdownNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "breakdown not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	body, err := export.Serialize(b, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	filename := fmt.Sprintf("sdlc-breakdown-%d.%s", id, format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, exportContentTypes[format], []byte(body))
}

func (h *Handler) sessionBreakdown(c *gin.Context) {
	sessionID := c.Param("session_id")

	b, err := h.sessions.Latest(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no breakdown for session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "breakdown": b})
}

func (h *Handler) analyticsSnapshot(c *gin.Context) {
	snapshot, err := h.analytics.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "analytics": snapshot})
}
