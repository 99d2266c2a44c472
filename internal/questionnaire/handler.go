package questionnaire

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/shared/server/respond"
)

// Handler serves the questionnaire definition.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches questionnaire routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/questionnaire", h.getSteps)
}

func (h *Handler) getSteps(c *gin.Context) {
	steps := Steps()
	respond.JSON(c, http.StatusOK, gin.H{
		"totalSteps": len(steps),
		"steps":      steps,
	})
}
