package export

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/templates"
)

// Handler wires HTTP handlers to the export service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/export", h.export)
	rg.GET("/resumes/:id/export/status", h.status)
	rg.GET("/resumes/:id/preview", h.preview)
	rg.GET("/exports", h.list)
	rg.GET("/exports/:id/download", h.download)
}

func (h *Handler) export(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")

	// Pending edits are saved before exporting unless the caller asks
	// for the document exactly as last stored.
	save := c.DefaultQuery("save", "true") != "false"

	artifact, pdf, err := h.Svc.Export(c.Request.Context(), ownerID, resumeID, save)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "export_failed", "failed to export resume", nil)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	c.Header("X-Export-Id", artifact.ID)
	c.Data(http.StatusOK, artifact.MimeType, pdf)
}

func (h *Handler) preview(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")

	zoom, _ := strconv.ParseFloat(c.DefaultQuery("zoom", "1"), 64)
	page, err := h.Svc.Preview(c.Request.Context(), ownerID, resumeID, c.Query("template"), zoom)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, templates.ErrUnknownTemplate):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown template", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render preview", nil)
		}
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page.HTML))
}

func (h *Handler) status(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"stage": h.Svc.Pipeline.Stage(c.Param("id"))})
}

type artifactResponse struct {
	ID        string    `json:"id"`
	ResumeID  string    `json:"resumeId"`
	FileName  string    `json:"fileName"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) list(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	artifacts, err := h.Svc.List(c.Request.Context(), ownerID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list exports", nil)
		return
	}

	resp := make([]artifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		resp = append(resp, artifactResponse{
			ID:        a.ID,
			ResumeID:  a.ResumeID,
			FileName:  a.FileName,
			SizeBytes: a.SizeBytes,
			CreatedAt: a.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) download(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	artifact, err := h.Svc.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch export", nil)
		}
		return
	}

	reader, err := h.Svc.Store.Open(c.Request.Context(), artifact.StorageKey)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open export", nil)
		return
	}
	defer reader.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", artifact.FileName),
	}
	c.DataFromReader(http.StatusOK, artifact.SizeBytes, artifact.MimeType, reader, extraHeaders)
}
