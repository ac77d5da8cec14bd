package optimize

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// WebhookSecretHeader carries the shared secret the optimizer presents
// on result deliveries.
const WebhookSecretHeader = "X-Webhook-Secret"

// Handler wires HTTP handlers to the optimization service.
type Handler struct {
	Svc *Service
	// WebhookSecret guards the auth-exempt result webhook. Empty
	// disables the check.
	WebhookSecret string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, webhookSecret string) *Handler {
	return &Handler{Svc: svc, WebhookSecret: webhookSecret}
}

// RegisterRoutes attaches the user-facing optimization routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/optimize", h.start)
	rg.GET("/resumes/:id/optimize", h.status)
}

// RegisterWebhookRoutes attaches the inbound result webhook. It lives
// outside the authenticated group: the optimizer is not a user.
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/optimize", h.webhook)
}

type startRequest struct {
	TargetJob string `json:"targetJob"`
}

func (h *Handler) start(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.TargetJob == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "targetJob is required", nil)
		return
	}

	if err := h.Svc.Start(c.Request.Context(), ownerID, resumeID, req.TargetJob); err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrAlreadyPending):
			respond.Error(c, http.StatusConflict, "optimization_pending", "an optimization is already in flight for this resume", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start optimization", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{"status": "pending"})
}

func (h *Handler) status(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"pending": h.Svc.Pending(c.Param("id"))})
}

type webhookPayload struct {
	ResumeID string `json:"resumeId"`
	Result
}

func (h *Handler) webhook(c *gin.Context) {
	if h.WebhookSecret != "" {
		got := c.GetHeader(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.WebhookSecret)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid webhook secret", nil)
			return
		}
	}

	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if payload.ResumeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId is required", nil)
		return
	}

	err := h.Svc.Resolve(c.Request.Context(), payload.ResumeID, payload.Result)
	switch {
	case errors.Is(err, ErrUnknownJob):
		// Stale or duplicate delivery: acknowledged and dropped so the
		// optimizer does not retry forever.
		respond.JSON(c, http.StatusOK, gin.H{"status": "ignored"})
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to apply optimization result", nil)
	default:
		respond.JSON(c, http.StatusOK, gin.H{"status": "applied"})
	}
}
