// Package store holds the persistence layer: interfaces over the product
// and cart collections, a MongoDB implementation, and an in-memory
// implementation used by tests.
package store

import (
	"context"
	"errors"

	"github.com/shopmart/shopmart-golang/internal/models"
)

// ErrNotFound is returned when no document matches the lookup.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateProductID is returned by Create when the productId is taken.
var ErrDuplicateProductID = errors.New("product with this ID already exists")

// ProductStore provides access to the product catalog.
type ProductStore interface {
	// List returns every product in the catalog.
	List(ctx context.Context) ([]models.Product, error)

	// FindByProductID looks a product up by its numeric catalog ID.
	FindByProductID(ctx context.Context, productID int) (*models.Product, error)

	// FindByRef looks a product up by a route parameter, which may be a
	// numeric productId or a hex document ID.
	FindByRef(ctx context.Context, ref string) (*models.Product, error)

	// Create inserts a new product. The productId must be unused.
	Create(ctx context.Context, p *models.Product) error

	// UpdateByRef applies the non-nil fields of upd and returns the
	// updated product.
	UpdateByRef(ctx context.Context, ref string, upd models.ProductUpdate) (*models.Product, error)

	// DeleteByRef removes a product.
	DeleteByRef(ctx context.Context, ref string) error

	// DeleteAll wipes the catalog. Used by the seeder.
	DeleteAll(ctx context.Context) error

	// InsertMany bulk-inserts seed products.
	InsertMany(ctx context.Context, products []models.Product) error
}

// CartStore provides access to session carts.
type CartStore interface {
	// FindBySession returns the cart for a session, or ErrNotFound.
	FindBySession(ctx context.Context, sessionID string) (*models.Cart, error)

	// Save upserts the cart document keyed by its sessionId.
	Save(ctx context.Context, cart *models.Cart) error
}
