package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one product entry inside a cart. Name, price and image are
// snapshots taken when the line was added; price changes in the catalog do
// not affect lines already in a cart.
type CartLine struct {
	LineID    primitive.ObjectID `json:"_id" bson:"_id"`
	ProductID int                `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Image     string             `json:"image" bson:"image"`
	Quantity  int                `json:"quantity" bson:"quantity"`

	// Live catalog document, attached for display only. Never used for
	// total computation and never persisted.
	Product *Product `json:"product,omitempty" bson:"-"`
}

// Cart is the model for the 'carts' collection, one document per sessionId.
// TotalItems and TotalPrice are derived from Items and must be recomputed
// with RecomputeTotals before every persisted write.
type Cart struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	SessionID  string             `json:"sessionId" bson:"sessionId"`
	Items      []CartLine         `json:"items" bson:"items"`
	TotalItems int                `json:"totalItems" bson:"totalItems"`
	TotalPrice float64            `json:"totalPrice" bson:"totalPrice"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RecomputeTotals rebuilds the derived totals from the line items.
// Stored totals are never trusted; every mutation calls this before saving.
func (c *Cart) RecomputeTotals() {
	totalItems := 0
	totalPrice := 0.0
	for _, line := range c.Items {
		totalItems += line.Quantity
		totalPrice += line.Price * float64(line.Quantity)
	}
	c.TotalItems = totalItems
	c.TotalPrice = Round2(totalPrice)
}

// FindLine returns a pointer into Items for the given line ID, or nil.
func (c *Cart) FindLine(lineID primitive.ObjectID) *CartLine {
	for i := range c.Items {
		if c.Items[i].LineID == lineID {
			return &c.Items[i]
		}
	}
	return nil
}

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
