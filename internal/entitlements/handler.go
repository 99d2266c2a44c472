package entitlements

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/shared/server/middleware"
	"web3stack-api/internal/shared/server/respond"
)

// Handler exposes entitlement endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches entitlement routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entitlements", h.getEntitlement)
	rg.POST("/entitlements/unlock", h.unlock)
}

// RegisterDevRoutes attaches dev-only entitlement routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/entitlements/reset", h.reset)
}

type unlockRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *Handler) getEntitlement(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	e, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "failed to fetch entitlement")
		return
	}
	respond.Private(c, http.StatusOK, gin.H{
		"plan":       e.Plan,
		"unlocked":   e.Unlocked,
		"unlockedAt": e.UnlockedAt,
		"offer":      h.Svc.Offer(),
	})
}

func (h *Handler) unlock(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req unlockRequest
	if err := decodeOptionalJSON(c.Request.Body, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	if !req.Confirm {
		h.fail(c, ErrConfirmationRequired, "")
		return
	}

	e, err := h.Svc.Unlock(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "failed to unlock premium")
		return
	}
	respond.Private(c, http.StatusOK, e)
}

func (h *Handler) reset(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	e, err := h.Svc.Reset(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "failed to reset entitlement")
		return
	}
	respond.Private(c, http.StatusOK, e)
}

func (h *Handler) fail(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		respond.Error(c, http.StatusBadRequest, "confirmation_required", "set confirm to true to purchase "+h.Svc.Offer().Name, gin.H{"offer": h.Svc.Offer()})
	case errors.Is(err, ErrCheckoutDeclined):
		respond.Error(c, http.StatusPaymentRequired, "payment_declined", "checkout declined the purchase", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", internalMsg, nil)
	}
}

func decodeOptionalJSON(body io.ReadCloser, out any) error {
	if body == nil {
		return nil
	}
	var errInvalidJSON = errors.New("invalid json body")
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errInvalidJSON
	}
	return nil
}
