package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmart/shopmart-golang/internal/apperr"
	"github.com/shopmart/shopmart-golang/internal/cart"
)

// CheckoutInput defines the JSON body for POST /api/checkout. The customer
// fields are validated by the checkout service so that their error messages
// stay uniform.
type CheckoutInput struct {
	SessionID     string `json:"sessionId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// ProcessCheckout is the handler for POST /api/checkout.
func (h *Handlers) ProcessCheckout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid request body"))
		return
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = cart.DefaultSessionID
	}

	receipt, err := h.Checkout.Process(c.Request.Context(), sessionID, input.CustomerName, input.CustomerEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Checkout completed successfully",
		"data":    receipt,
	})
}

// GetOrder is the handler for GET /api/checkout/:orderId. Orders are not
// persisted, so this only echoes the ID back.
func (h *Handlers) GetOrder(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "In a real application, this would return order details",
		"data": gin.H{
			"orderId": c.Param("orderId"),
			"note":    "Order tracking not implemented in mock version",
		},
	})
}
