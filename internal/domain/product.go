package domain

import "github.com/shopspring/decimal"

// Product represents a product in the catalog
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

// SampleProducts is the catalog inserted into an empty store on first start.
func SampleProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Vibe T-Shirt", Price: decimal.NewFromInt(299), Description: "Comfortable cotton tee"},
		{ID: "p2", Name: "Vibe Hoodie", Price: decimal.NewFromInt(799), Description: "Warm hoodie with logo"},
		{ID: "p3", Name: "Vibe Cap", Price: decimal.NewFromInt(199), Description: "Adjustable cap"},
		{ID: "p4", Name: "Vibe Mug", Price: decimal.NewFromInt(149), Description: "Ceramic mug"},
		{ID: "p5", Name: "Vibe Sticker Pack", Price: decimal.NewFromInt(99), Description: "5 vinyl stickers"},
	}
}
