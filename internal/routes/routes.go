package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopmart/shopmart-golang/internal/handlers"
)

// CORSMiddleware tells the browser which origin may call the API. The origin
// comes from CORS_ORIGIN; the default "*" keeps local development friction
// free, credentials are only allowed for a concrete origin.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		// Preflight requests get an empty 204.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware tags every request with an X-Request-ID so log lines
// and client reports can be correlated. An inbound ID is passed through.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())

	// --- Root Endpoint (API info) ---
	router.GET("/", func(c *gin.Context) {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
		}
		c.JSON(http.StatusOK, gin.H{
			"message":     "Welcome to ShopMart API",
			"version":     "1.0.0",
			"environment": env,
			"status":      "running",
			"endpoints": gin.H{
				"products": "/api/products",
				"cart":     "/api/cart",
				"checkout": "/api/checkout",
			},
		})
	})

	api := router.Group("/api")
	{
		// --- Product Routes (catalog CRUD) ---
		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.GET("/:id", h.GetProductByID)
			products.POST("", h.CreateProduct)
			products.PUT("/:id", h.UpdateProduct)
			products.DELETE("/:id", h.DeleteProduct)
		}

		// --- Cart Routes (session carts) ---
		cart := api.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.POST("", h.AddToCart)
			cart.PUT("/:itemId", h.UpdateCartItem)
			cart.DELETE("/:itemId", h.RemoveCartItem)
			cart.DELETE("", h.ClearCart)
		}

		// --- Checkout Routes (mock) ---
		checkout := api.Group("/checkout")
		{
			checkout.POST("", h.ProcessCheckout)
			checkout.GET("/:orderId", h.GetOrder)
		}
	}

	// Unknown routes get the same envelope as application errors.
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Not Found - " + c.Request.URL.Path,
		})
	})

	return router
}
