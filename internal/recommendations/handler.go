package recommendations

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/questionnaire"
	"web3stack-api/internal/shared/server/middleware"
	"web3stack-api/internal/shared/server/respond"
	"web3stack-api/internal/stack"
)

// Handler exposes recommendation and catalog endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches routes that need a caller identity.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.generate)
}

// RegisterPublicRoutes attaches routes open to anonymous callers.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.getCatalog)
}

type categoryView struct {
	ID   stack.Category `json:"id"`
	Name string         `json:"name"`
}

func (h *Handler) generate(c *gin.Context) {
	var answers stack.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), answers)
	if err != nil {
		var verr *questionnaire.ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid answers", gin.H{"fields": verr.Fields})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendation", nil)
		}
		return
	}

	c.Set(middleware.BundleIDKey, result.Recommendation.ID)
	respond.Private(c, http.StatusOK, result)
}

func (h *Handler) getCatalog(c *gin.Context) {
	catalog := h.Svc.Resolver.Catalog()
	categories := make([]categoryView, 0, len(stack.CategoryOrder))
	for _, cat := range stack.CategoryOrder {
		categories = append(categories, categoryView{ID: cat, Name: stack.CategoryName(cat)})
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"categories":   categories,
		"technologies": catalog.Technologies(),
		"resources":    catalog.Resources(),
	})
}
