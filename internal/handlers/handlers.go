package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmart/shopmart-golang/internal/apperr"
	"github.com/shopmart/shopmart-golang/internal/cart"
	"github.com/shopmart/shopmart-golang/internal/checkout"
	"github.com/shopmart/shopmart-golang/internal/store"
)

// Handlers holds all dependencies for the HTTP handlers.
type Handlers struct {
	Products store.ProductStore
	Cart     *cart.Service
	Checkout *checkout.Service
}

func New(products store.ProductStore, carts store.CartStore) *Handlers {
	return &Handlers{
		Products: products,
		Cart:     cart.NewService(products, carts),
		Checkout: checkout.NewService(carts),
	}
}

// respondError maps the service error taxonomy onto HTTP status codes and
// the {success:false, message} envelope. Unrecognized errors are logged and
// surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	var validation *apperr.ValidationError
	var notFound *apperr.NotFoundError
	var stock *apperr.InsufficientStockError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation), errors.As(err, &stock), errors.Is(err, apperr.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

// sessionIDFromQuery reads the sessionId query parameter with its default.
func sessionIDFromQuery(c *gin.Context) string {
	if id := c.Query("sessionId"); id != "" {
		return id
	}
	return cart.DefaultSessionID
}
