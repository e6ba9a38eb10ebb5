// Package cart implements the cart mutation service: every operation is a
// read-modify-write of a single session cart, validated against live product
// stock and persisted with freshly recomputed totals.
package cart

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopmart/shopmart-golang/internal/apperr"
	"github.com/shopmart/shopmart-golang/internal/models"
	"github.com/shopmart/shopmart-golang/internal/store"
)

// DefaultSessionID is used when the caller does not supply a session.
const DefaultSessionID = "default-session"

// Service mutates session carts against the product catalog.
type Service struct {
	products store.ProductStore
	carts    store.CartStore
	locks    *sessionLocks
}

func NewService(products store.ProductStore, carts store.CartStore) *Service {
	return &Service{
		products: products,
		carts:    carts,
		locks:    newSessionLocks(),
	}
}

// GetOrCreate returns the cart for a session, lazily creating an empty one.
func (s *Service) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return s.getOrCreateLocked(ctx, sessionID)
}

func (s *Service) getOrCreateLocked(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{SessionID: sessionID, Items: []models.CartLine{}}
	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity units of a product to the session cart. A product
// already in the cart merges into its existing line; the stock check covers
// the merged quantity. The cart is left untouched on any failure.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}

	product, err := s.products.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}

	if product.Stock < quantity {
		return nil, &apperr.InsufficientStockError{Available: product.Stock}
	}

	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.getOrCreateLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if line := findProductLine(cart, productID); line != nil {
		merged := line.Quantity + quantity
		if product.Stock < merged {
			return nil, &apperr.InsufficientStockError{Available: product.Stock}
		}
		line.Quantity = merged
	} else {
		cart.Items = append(cart.Items, models.CartLine{
			LineID:    primitive.NewObjectID(),
			ProductID: product.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  quantity,
		})
	}

	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateLine sets the quantity of an existing cart line. When the referenced
// product is gone from the catalog the stock check is skipped; the line keeps
// its snapshot price either way.
func (s *Service) UpdateLine(ctx context.Context, sessionID, lineID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}

	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.findCartLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line, err := findLine(cart, lineID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByProductID(ctx, line.ProductID)
	switch {
	case err == nil:
		if product.Stock < quantity {
			return nil, &apperr.InsufficientStockError{Available: product.Stock}
		}
	case errors.Is(err, store.ErrNotFound):
		// Product vanished from the catalog after it was added to the
		// cart: tolerated, no stock constraint applies.
	default:
		return nil, err
	}

	line.Quantity = quantity
	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine deletes one line from the session cart.
func (s *Service) RemoveLine(ctx context.Context, sessionID, lineID string) (*models.Cart, error) {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.findCartLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(lineID)
	if err != nil {
		return nil, apperr.NotFound("Item not found in cart")
	}
	idx := -1
	for i := range cart.Items {
		if cart.Items[i].LineID == oid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("Item not found in cart")
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the session cart. The cart document itself persists.
func (s *Service) Clear(ctx context.Context, sessionID string) (*models.Cart, error) {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.findCartLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Items = []models.CartLine{}
	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Populate attaches the live catalog document to each line for display.
// Snapshot fields stay authoritative for pricing; a missing product simply
// leaves the line's Product nil.
func (s *Service) Populate(ctx context.Context, cart *models.Cart) error {
	for i := range cart.Items {
		product, err := s.products.FindByProductID(ctx, cart.Items[i].ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return err
		}
		cart.Items[i].Product = product
	}
	return nil
}

func (s *Service) findCartLocked(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Cart not found")
		}
		return nil, err
	}
	return cart, nil
}

func findProductLine(cart *models.Cart, productID int) *models.CartLine {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i]
		}
	}
	return nil
}

func findLine(cart *models.Cart, lineID string) (*models.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(lineID)
	if err != nil {
		return nil, apperr.NotFound("Item not found in cart")
	}
	line := cart.FindLine(oid)
	if line == nil {
		return nil, apperr.NotFound("Item not found in cart")
	}
	return line, nil
}
