package handlers

import (
	"errors"
	"net/http"

	apihandlers "github.com/Conceptual-Machines/chordpad-api/internal/api/handlers"
	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/Conceptual-Machines/chordpad-api/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

type WebHandler struct {
	library *library.Library
}

func NewWebHandler(lib *library.Library) *WebHandler {
	return &WebHandler{library: lib}
}

// Home renders the category index
func (h *WebHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, templates.Home(h.library.Categories()))
}

// Category renders one category, transposed and revoiced per the query string
func (h *WebHandler) Category(c *gin.Context) {
	category := c.Param("category")

	opts, err := apihandlers.DisplayOptionsFromQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	sets, err := h.library.Display(category, opts)
	if errors.Is(err, library.ErrUnknownCategory) {
		render(c, http.StatusNotFound, templates.NotFound(category))
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load category")
		return
	}

	keys := make([]templates.KeyChoice, 0, len(theory.KeyOptions))
	for _, key := range theory.KeyOptions {
		keys = append(keys, templates.KeyChoice{Key: key, Label: theory.KeyLabel(key)})
	}

	render(c, http.StatusOK, templates.Category(templates.CategoryPage{
		Category:  category,
		Key:       opts.Key,
		Inversion: c.Query("inversion"),
		Keys:      keys,
		Sets:      sets,
	}))
}

func render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
