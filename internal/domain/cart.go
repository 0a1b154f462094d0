package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStatus tells whether AddItem created a new cart line or grew an existing one.
type AddStatus string

const (
	AddStatusInserted AddStatus = "inserted"
	AddStatusUpdated  AddStatus = "updated"
)

// CartLine is one product's accumulated quantity in the cart.
type CartLine struct {
	ID        string    `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	Qty       int       `json:"qty" db:"qty"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// AddResult is returned by an add-to-cart upsert.
type AddResult struct {
	CartID    string    `json:"id"`
	ProductID string    `json:"productId"`
	Qty       int       `json:"qty"`
	Status    AddStatus `json:"status"`
}

// CartLineView is a cart line joined with its product. Product fields are nil
// when the line references a product that no longer exists.
type CartLineView struct {
	CartID      string              `json:"cartId"`
	ProductID   string              `json:"productId"`
	Qty         int                 `json:"qty"`
	AddedAt     time.Time           `json:"addedAt"`
	Name        *string             `json:"name"`
	Price       decimal.NullDecimal `json:"price"`
	Description *string             `json:"description"`
}

// LineTotal is price * qty, with a missing price counting as zero.
func (v CartLineView) LineTotal() decimal.Decimal {
	if !v.Price.Valid {
		return decimal.Zero
	}
	return v.Price.Decimal.Mul(decimal.NewFromInt(int64(v.Qty)))
}

// CartView is the whole cart with its computed total.
type CartView struct {
	Items []CartLineView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// NewCartView builds a view and sums its total.
func NewCartView(items []CartLineView) CartView {
	if items == nil {
		items = []CartLineView{}
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return CartView{Items: items, Total: total}
}

// IsEmpty reports whether the cart has no lines.
func (c CartView) IsEmpty() bool {
	return len(c.Items) == 0
}
