package domain

import "time"

// Product is an orderable item with an integer price.
type Product struct {
	ID        int64
	Name      string
	Price     int64
	CreatedAt time.Time
}

// ProductSummary is the projection of a product nested in enriched orders.
type ProductSummary struct {
	ID    int64
	Name  string
	Price int64
}

// Summary returns the nested projection of p.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price}
}
