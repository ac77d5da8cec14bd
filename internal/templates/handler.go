package templates

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

// Handler exposes the template catalog over HTTP.
type Handler struct {
	Registry *Registry
}

// NewHandler constructs a Handler.
func NewHandler(reg *Registry) *Handler {
	return &Handler{Registry: reg}
}

// RegisterRoutes attaches template routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.list)
}

type colorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent,omitempty"`
}

type templateResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	PreviewImage string          `json:"previewImage"`
	Pro          bool            `json:"isPro"`
	Colors       []colorResponse `json:"colors"`
	FontFamily   string          `json:"fontFamily"`
	Spacing      string          `json:"spacing"`
	Layout       string          `json:"layout"`
}

func (h *Handler) list(c *gin.Context) {
	all := h.Registry.All()
	resp := make([]templateResponse, 0, len(all))
	for _, t := range all {
		colors := make([]colorResponse, 0, len(t.Colors))
		for _, col := range t.Colors {
			colors = append(colors, colorResponse{
				ID:        col.ID,
				Name:      col.Name,
				Primary:   col.Primary,
				Secondary: col.Secondary,
				Accent:    col.Accent,
			})
		}
		resp = append(resp, templateResponse{
			ID:           t.ID,
			Name:         t.Name,
			Description:  t.Description,
			PreviewImage: t.PreviewImage,
			Pro:          t.Pro,
			Colors:       colors,
			FontFamily:   t.Style.FontFamily,
			Spacing:      t.Style.Spacing,
			Layout:       t.Style.Layout,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}
