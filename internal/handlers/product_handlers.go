package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmart/shopmart-golang/internal/apperr"
	"github.com/shopmart/shopmart-golang/internal/models"
	"github.com/shopmart/shopmart-golang/internal/store"
)

//
// --- Product Handlers (plain catalog CRUD) ---
//

// GetProducts is the handler for GET /api/products.
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.Products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
}

// GetProductByID is the handler for GET /api/products/:id. The parameter may
// be a numeric productId or a hex document ID.
func (h *Handlers) GetProductByID(c *gin.Context) {
	product, err := h.Products.FindByRef(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, apperr.NotFound("Product not found"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// CreateProductInput defines the JSON body for POST /api/products.
type CreateProductInput struct {
	ProductID   int     `json:"productId" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Description string  `json:"description" binding:"required"`
	Image       string  `json:"image" binding:"required"`
	Category    string  `json:"category"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
}

// CreateProduct is the handler for POST /api/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Please provide all required fields"))
		return
	}

	product := &models.Product{
		ProductID:   input.ProductID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		Category:    input.Category,
		Stock:       100,
	}
	if product.Category == "" {
		product.Category = "General"
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := h.Products.Create(c.Request.Context(), product); err != nil {
		if errors.Is(err, store.ErrDuplicateProductID) {
			respondError(c, apperr.Validation("Product with this ID already exists"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// UpdateProduct is the handler for PUT /api/products/:id.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var input models.ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Invalid request body"))
		return
	}

	product, err := h.Products.UpdateByRef(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, apperr.NotFound("Product not found"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// DeleteProduct is the handler for DELETE /api/products/:id.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.Products.DeleteByRef(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, apperr.NotFound("Product not found"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed", "data": gin.H{}})
}
