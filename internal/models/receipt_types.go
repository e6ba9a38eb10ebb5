package models

// ReceiptLine is one purchased line on a checkout receipt. Subtotal is
// recomputed from the snapshot price, independent of the cart's stored total.
type ReceiptLine struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Receipt is the ephemeral confirmation returned by checkout.
// No Order document is persisted; the orderId cannot be looked up later.
type Receipt struct {
	OrderID       string        `json:"orderId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	Items         []ReceiptLine `json:"items"`
	TotalItems    int           `json:"totalItems"`
	TotalPrice    float64       `json:"totalPrice"`
	Timestamp     string        `json:"timestamp"`
	PaymentStatus string        `json:"paymentStatus"`
	Message       string        `json:"message"`
}
