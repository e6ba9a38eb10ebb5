// Package checkout implements the mock checkout: it validates the customer,
// snapshots the cart into a receipt, and clears the cart. No order is
// persisted and stock is never decremented.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"github.com/shopmart/shopmart-golang/internal/apperr"
	"github.com/shopmart/shopmart-golang/internal/models"
	"github.com/shopmart/shopmart-golang/internal/store"
)

// emailPattern accepts local@domain.tld with no whitespace or extra "@".
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// PaymentStatusMock is the constant payment status stamped on every receipt.
const PaymentStatusMock = "Completed (Mock)"

// Service performs mock checkouts over the cart store.
type Service struct {
	carts store.CartStore
}

func NewService(carts store.CartStore) *Service {
	return &Service{carts: carts}
}

// Process validates the customer fields, builds a receipt from the session
// cart, then empties and persists the cart. Per-line subtotals are recomputed
// from the snapshot price rather than read from the stored totals.
func (s *Service) Process(ctx context.Context, sessionID, customerName, customerEmail string) (*models.Receipt, error) {
	if customerName == "" || customerEmail == "" {
		return nil, apperr.Validation("Please provide customer name and email")
	}
	if !emailPattern.MatchString(customerEmail) {
		return nil, apperr.Validation("Please provide a valid email address")
	}

	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperr.ErrEmptyCart
	}

	receipt := &models.Receipt{
		OrderID:       NewOrderID(),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Items:         make([]models.ReceiptLine, 0, len(cart.Items)),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		PaymentStatus: PaymentStatusMock,
		Message:       "Thank you for your order! This is a mock checkout.",
	}

	totalItems := 0
	totalPrice := 0.0
	for _, line := range cart.Items {
		subtotal := line.Price * float64(line.Quantity)
		receipt.Items = append(receipt.Items, models.ReceiptLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Subtotal:  models.Round2(subtotal),
		})
		totalItems += line.Quantity
		totalPrice += subtotal
	}
	receipt.TotalItems = totalItems
	receipt.TotalPrice = models.Round2(totalPrice)

	// Mock semantics: clear the cart, leave stock alone.
	cart.Items = []models.CartLine{}
	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	return receipt, nil
}

// NewOrderID builds an order reference of the form
// ORD-<epoch millis>-<9 uppercase base-36 chars>. Collision resistance is
// best-effort, matching the mock nature of the checkout.
func NewOrderID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = orderIDAlphabet[rand.Intn(len(orderIDAlphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
