package resumes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/templates"
)

// SessionGateway routes edits through the open editor session when one
// exists, so live edits pick up autosave semantics instead of hitting
// the store directly. Implemented by the editor manager.
type SessionGateway interface {
	// Update applies a patch through the session for the resume,
	// opening one if needed. The returned document reflects the live
	// in-memory state.
	Update(ctx context.Context, ownerID, resumeID string, p Patch) (Resume, error)
	// Discard drops any open session for a deleted resume without
	// flushing it.
	Discard(ownerID, resumeID string)
	// HasUnsavedChanges reports the session's dirty flag, the hook the
	// UI uses for its exit guard.
	HasUnsavedChanges(ownerID, resumeID string) bool
}

// Handler wires HTTP handlers to the resume service.
type Handler struct {
	Svc      *Service
	Sessions SessionGateway
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, sessions SessionGateway) *Handler {
	return &Handler{Svc: svc, Sessions: sessions}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PATCH("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.remove)
	rg.GET("/resumes/:id/dirty", h.dirty)
}

type createRequest struct {
	TemplateID string `json:"templateId"`
	ColorID    string `json:"colorId,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.TemplateID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "templateId is required", nil)
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), ownerID, req.TemplateID, req.ColorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuotaExceeded):
			respond.Error(c, http.StatusForbidden, "quota_exceeded", "free plan resume limit reached", gin.H{"limit": h.Svc.MaxPerOwner})
		case errors.Is(err, templates.ErrUnknownTemplate):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown template", nil)
		case errors.Is(err, templates.ErrUnknownColor):
			respond.Error(c, http.StatusBadRequest, "validation_error", "color not in template palette", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}

	resp := make([]ListItemResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toListItem(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	doc, err := h.Svc.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) update(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	var doc Resume
	var err error
	if h.Sessions != nil {
		doc, err = h.Sessions.Update(c.Request.Context(), ownerID, resumeID, patch)
	} else {
		doc, err = h.Svc.Update(c.Request.Context(), ownerID, resumeID, patch)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, templates.ErrUnknownTemplate):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown template", nil)
		case errors.Is(err, templates.ErrUnknownColor):
			respond.Error(c, http.StatusBadRequest, "validation_error", "color not in template palette", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) remove(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), ownerID, resumeID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}

	// Any open editor session for the deleted document is dropped so a
	// late autosave or optimization result cannot resurrect it.
	if h.Sessions != nil {
		h.Sessions.Discard(ownerID, resumeID)
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": resumeID})
}

func (h *Handler) dirty(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	dirty := false
	if h.Sessions != nil {
		dirty = h.Sessions.HasUnsavedChanges(ownerID, c.Param("id"))
	}
	respond.JSON(c, http.StatusOK, gin.H{"hasUnsavedChanges": dirty})
}
