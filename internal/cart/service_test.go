package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmart/shopmart-golang/internal/apperr"
	"github.com/shopmart/shopmart-golang/internal/models"
	"github.com/shopmart/shopmart-golang/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.MemoryProducts) {
	t.Helper()
	products := store.NewMemoryProducts()
	return NewService(products, store.NewMemoryCarts()), products
}

func seedProduct(t *testing.T, products *store.MemoryProducts, id int, name string, price float64, stock int) {
	t.Helper()
	err := products.Create(context.Background(), &models.Product{
		ProductID:   id,
		Name:        name,
		Price:       price,
		Description: name + " description",
		Image:       "https://example.com/img.jpg",
		Category:    "Electronics",
		Stock:       stock,
	})
	require.NoError(t, err)
}

func TestGetOrCreateIsLazyAndIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", first.SessionID)
	assert.Empty(t, first.Items)
	assert.Zero(t, first.TotalItems)
	assert.Zero(t, first.TotalPrice)

	second, err := svc.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAddItemComputesTotals(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 50)
	seedProduct(t, products, 2, "Watch", 19.99, 50)

	cart, err := svc.AddItem(ctx, "s1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 20.00, cart.TotalPrice)

	cart, err = svc.AddItem(ctx, "s1", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.TotalItems)
	assert.Equal(t, 79.97, cart.TotalPrice)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 50)

	_, err := svc.AddItem(ctx, "s1", 1, 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "s1", 1, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 30.00, cart.TotalPrice)
}

func TestAddItemSnapshotsPriceAtAddTime(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 50)

	_, err := svc.AddItem(ctx, "s1", 1, 1)
	require.NoError(t, err)

	// Catalog price change must not affect the existing line.
	newPrice := 99.00
	_, err = products.UpdateByRef(ctx, "1", models.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	cart, err := svc.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 10.00, cart.Items[0].Price)
	assert.Equal(t, 10.00, cart.TotalPrice)
}

func TestAddItemValidation(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 50)

	_, err := svc.AddItem(ctx, "s1", 1, 0)
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.AddItem(ctx, "s1", 99, 1)
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddItemInsufficientStock(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 3)

	_, err := svc.AddItem(ctx, "s1", 1, 4)
	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Contains(t, err.Error(), "Only 3 items available in stock")

	// Failed add must not create or touch a cart.
	_, err = svc.UpdateLine(ctx, "s1", "anything", 1)
	require.ErrorAs(t, err, new(*apperr.NotFoundError))
}

func TestAddItemMergeRespectsStock(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 3)

	_, err := svc.AddItem(ctx, "s1", 1, 2)
	require.NoError(t, err)

	// 2 already in cart + 2 more exceeds stock 3.
	_, err = svc.AddItem(ctx, "s1", 1, 2)
	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)

	// No partial merge on failure.
	cart, err := svc.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.TotalItems)
}

func TestUpdateLine(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 4)

	cart, err := svc.AddItem(ctx, "s1", 1, 3)
	require.NoError(t, err)
	lineID := cart.Items[0].LineID.Hex()

	// Requested quantity above live stock fails and leaves the cart as-is.
	_, err = svc.UpdateLine(ctx, "s1", lineID, 5)
	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)

	cart, err = svc.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalItems)

	cart, err = svc.UpdateLine(ctx, "s1", lineID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.TotalItems)
	assert.Equal(t, 40.00, cart.TotalPrice)
}

func TestUpdateLineErrors(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 10)

	cart, err := svc.AddItem(ctx, "s1", 1, 1)
	require.NoError(t, err)
	lineID := cart.Items[0].LineID.Hex()

	_, err = svc.UpdateLine(ctx, "s1", lineID, 0)
	require.ErrorAs(t, err, new(*apperr.ValidationError))

	_, err = svc.UpdateLine(ctx, "missing-session", lineID, 2)
	require.ErrorAs(t, err, new(*apperr.NotFoundError))
	assert.EqualError(t, err, "Cart not found")

	_, err = svc.UpdateLine(ctx, "s1", "ffffffffffffffffffffffff", 2)
	require.ErrorAs(t, err, new(*apperr.NotFoundError))
	assert.EqualError(t, err, "Item not found in cart")
}

func TestUpdateLineMissingProductSkipsStockCheck(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 5)

	cart, err := svc.AddItem(ctx, "s1", 1, 1)
	require.NoError(t, err)
	lineID := cart.Items[0].LineID.Hex()

	// Product removed from the catalog: the update tolerates it.
	require.NoError(t, products.DeleteByRef(ctx, "1"))

	cart, err = svc.UpdateLine(ctx, "s1", lineID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, cart.TotalItems)
	assert.Equal(t, 500.00, cart.TotalPrice)
}

func TestRemoveLine(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 10)
	seedProduct(t, products, 2, "Watch", 5.00, 10)

	cart, err := svc.AddItem(ctx, "s1", 1, 2)
	require.NoError(t, err)
	cart, err = svc.AddItem(ctx, "s1", 2, 1)
	require.NoError(t, err)

	cart, err = svc.RemoveLine(ctx, "s1", cart.Items[0].LineID.Hex())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ProductID)
	assert.Equal(t, 1, cart.TotalItems)
	assert.Equal(t, 5.00, cart.TotalPrice)

	_, err = svc.RemoveLine(ctx, "s1", "ffffffffffffffffffffffff")
	require.ErrorAs(t, err, new(*apperr.NotFoundError))

	_, err = svc.RemoveLine(ctx, "missing-session", cart.Items[0].LineID.Hex())
	require.ErrorAs(t, err, new(*apperr.NotFoundError))
}

func TestClear(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 10)

	_, err := svc.AddItem(ctx, "s1", 1, 3)
	require.NoError(t, err)

	cart, err := svc.Clear(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalPrice)

	_, err = svc.Clear(ctx, "missing-session")
	require.ErrorAs(t, err, new(*apperr.NotFoundError))
}

func TestTotalsRounding(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Sticker", 0.10, 1000)

	cart, err := svc.AddItem(ctx, "s1", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.30, cart.TotalPrice)
}

func TestPopulateAttachesLiveProduct(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 10)

	cart, err := svc.AddItem(ctx, "s1", 1, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Populate(ctx, cart))
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, 1, cart.Items[0].Product.ProductID)

	// A vanished product leaves the line unpopulated rather than failing.
	require.NoError(t, products.DeleteByRef(ctx, "1"))
	cart.Items[0].Product = nil
	require.NoError(t, svc.Populate(ctx, cart))
	assert.Nil(t, cart.Items[0].Product)
}

func TestConcurrentAddsSerializePerSession(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 2.00, 1000)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "s1", 1, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := svc.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.TotalItems)
	assert.Equal(t, 40.00, cart.TotalPrice)
}

func TestConcurrentAddsCannotOversellLastUnit(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, 1, "Headphones", 10.00, 1)

	const attempts = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, "s1", 1, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)

	cart, err := svc.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalItems)
}
