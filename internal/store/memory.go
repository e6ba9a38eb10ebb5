package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopmart/shopmart-golang/internal/models"
)

// MemoryProducts is an in-memory ProductStore. It backs the test suites and
// mirrors the Mongo implementation's semantics (unique productId, ref lookup
// by productId or hex _id).
type MemoryProducts struct {
	mu       sync.RWMutex
	products map[int]models.Product
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{products: make(map[int]models.Product)}
}

func (s *MemoryProducts) List(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	return products, nil
}

func (s *MemoryProducts) FindByProductID(ctx context.Context, productID int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryProducts) findRefLocked(ref string) (models.Product, bool) {
	for _, p := range s.products {
		if strconv.Itoa(p.ProductID) == ref || p.ID.Hex() == ref {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *MemoryProducts) FindByRef(ctx context.Context, ref string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.findRefLocked(ref)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryProducts) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ProductID]; exists {
		return ErrDuplicateProductID
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.ProductID] = *p
	return nil
}

func (s *MemoryProducts) UpdateByRef(ctx context.Context, ref string, upd models.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findRefLocked(ref)
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	p.UpdatedAt = time.Now().UTC()
	s.products[p.ProductID] = p
	return &p, nil
}

func (s *MemoryProducts) DeleteByRef(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findRefLocked(ref)
	if !ok {
		return ErrNotFound
	}
	delete(s.products, p.ProductID)
	return nil
}

func (s *MemoryProducts) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int]models.Product)
	return nil
}

func (s *MemoryProducts) InsertMany(ctx context.Context, products []models.Product) error {
	for i := range products {
		if err := s.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

// MemoryCarts is an in-memory CartStore keyed by sessionId.
type MemoryCarts struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

func NewMemoryCarts() *MemoryCarts {
	return &MemoryCarts{carts: make(map[string]models.Cart)}
}

func (s *MemoryCarts) FindBySession(ctx context.Context, sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := cart
	copied.Items = append([]models.CartLine(nil), cart.Items...)
	return &copied, nil
}

func (s *MemoryCarts) Save(ctx context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	if existing, ok := s.carts[cart.SessionID]; ok {
		cart.ID = existing.ID
		cart.CreatedAt = existing.CreatedAt
	} else {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = now
	}

	stored := *cart
	stored.Items = append([]models.CartLine(nil), cart.Items...)
	s.carts[cart.SessionID] = stored
	return nil
}

