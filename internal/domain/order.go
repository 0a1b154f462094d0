package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an append-only record of a completed checkout.
type Order struct {
	ID            string          `json:"id" db:"id"`
	CustomerName  string          `json:"customerName" db:"customer_name"`
	CustomerEmail string          `json:"customerEmail" db:"customer_email"`
	Total         decimal.Decimal `json:"total" db:"total"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// OrderItem snapshots a purchased product at checkout time.
type OrderItem struct {
	ID        string          `json:"id" db:"id"`
	OrderID   string          `json:"orderId" db:"order_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Qty       int             `json:"qty" db:"qty"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Name      string          `json:"name" db:"name"`
}

// OrderItemInput is the snapshot handed to the order store.
type OrderItemInput struct {
	ProductID string
	Qty       int
	Price     decimal.Decimal
	Name      string
}

// OrderDetails is an order together with its items.
type OrderDetails struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderItemsFromCart snapshots the cart lines for order creation. Lines
// without a product keep a zero price and an empty name.
func OrderItemsFromCart(cart CartView) []OrderItemInput {
	items := make([]OrderItemInput, 0, len(cart.Items))
	for _, line := range cart.Items {
		item := OrderItemInput{
			ProductID: line.ProductID,
			Qty:       line.Qty,
			Price:     decimal.Zero,
		}
		if line.Price.Valid {
			item.Price = line.Price.Decimal
		}
		if line.Name != nil {
			item.Name = *line.Name
		}
		items = append(items, item)
	}
	return items
}

// Customer identifies who checked out.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Receipt summarizes a completed checkout. Its ID is the persisted order ID.
type Receipt struct {
	ID        string          `json:"id"`
	Customer  Customer        `json:"customer"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	Items     []CartLineView  `json:"items"`
	Timestamp time.Time       `json:"timestamp"`
}
