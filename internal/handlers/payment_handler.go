package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/services"
)

// PaymentHandler receives payment-provider webhooks. A successful payment for
// a post flips both of its visibility flags on, permanently.
type PaymentHandler struct {
	postService *services.PostService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(postService *services.PostService) *PaymentHandler {
	return &PaymentHandler{postService: postService}
}

// RegisterPaymentRoutes registers payment webhook routes. These sit outside
// the JWT group: the provider authenticates with its own signature scheme.
func (h *PaymentHandler) RegisterPaymentRoutes(e *echo.Echo) {
	e.POST("/payments/webhook", h.HandleWebhook)
}

// PaymentWebhookRequest is the payload posted by the payment provider
type PaymentWebhookRequest struct {
	PostID string `json:"post_id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// HandleWebhook processes a payment event. Only succeeded events change
// anything; other statuses are acknowledged and ignored.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	var req PaymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Status != "succeeded" {
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	if err := h.postService.MarkPaid(c.Request().Context(), req.PostID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true, "post_id": req.PostID})
}
