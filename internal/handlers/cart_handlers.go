package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmart/shopmart-golang/internal/apperr"
	"github.com/shopmart/shopmart-golang/internal/cart"
	"github.com/shopmart/shopmart-golang/internal/models"
)

// cartData builds the response payload shared by every cart endpoint.
func (h *Handlers) cartData(c *gin.Context, crt *models.Cart) (gin.H, bool) {
	if err := h.Cart.Populate(c.Request.Context(), crt); err != nil {
		respondError(c, err)
		return nil, false
	}
	return gin.H{
		"cart":       crt,
		"totalItems": crt.TotalItems,
		"totalPrice": crt.TotalPrice,
	}, true
}

// GetCart is the handler for GET /api/cart. It lazily creates the session
// cart on first read.
func (h *Handlers) GetCart(c *gin.Context) {
	sessionID := sessionIDFromQuery(c)

	crt, err := h.Cart.GetOrCreate(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	data, ok := h.cartData(c, crt)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// AddToCartInput defines the JSON body for POST /api/cart. Quantity is a
// pointer so that an omitted field defaults to 1 while an explicit 0 is
// rejected as invalid.
type AddToCartInput struct {
	ProductID int    `json:"productId"`
	Quantity  *int   `json:"quantity"`
	SessionID string `json:"sessionId"`
}

// AddToCart is the handler for POST /api/cart.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid request body"))
		return
	}
	if input.ProductID == 0 {
		respondError(c, apperr.Validation("Product ID is required"))
		return
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = cart.DefaultSessionID
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	crt, err := h.Cart.AddItem(c.Request.Context(), sessionID, input.ProductID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	data, ok := h.cartData(c, crt)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to cart", "data": data})
}

// UpdateCartItemInput defines the JSON body for PUT /api/cart/:itemId.
type UpdateCartItemInput struct {
	Quantity  int    `json:"quantity"`
	SessionID string `json:"sessionId"`
}

// UpdateCartItem is the handler for PUT /api/cart/:itemId.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid request body"))
		return
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = cart.DefaultSessionID
	}

	crt, err := h.Cart.UpdateLine(c.Request.Context(), sessionID, itemID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	data, ok := h.cartData(c, crt)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "data": data})
}

// RemoveCartItem is the handler for DELETE /api/cart/:itemId.
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	itemID := c.Param("itemId")
	sessionID := sessionIDFromQuery(c)

	crt, err := h.Cart.RemoveLine(c.Request.Context(), sessionID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	data, ok := h.cartData(c, crt)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart", "data": data})
}

// ClearCart is the handler for DELETE /api/cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	sessionID := sessionIDFromQuery(c)

	crt, err := h.Cart.Clear(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
		"data": gin.H{
			"cart":       crt,
			"totalItems": crt.TotalItems,
			"totalPrice": crt.TotalPrice,
		},
	})
}
