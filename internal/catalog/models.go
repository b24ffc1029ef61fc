package catalog

import "time"

// Product mirrors the products table. Prices are integer minor currency
// units (cents); money never touches floating point.
type Product struct {
	Slug           string     `json:"slug"`
	Name           string     `json:"name"`
	PriceCents     int64      `json:"price_cents"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"image_url"`
	OriginCountry  string     `json:"origin_country"`
	Brand          string     `json:"brand"`
	Material       string     `json:"material"`
	Category       string     `json:"category"`
	Rating         float64    `json:"rating"`
	InStock        bool       `json:"in_stock"`
	ReleaseDate    *time.Time `json:"release_date,omitempty"`
	WarrantyMonths int        `json:"warranty_months"`
	WeightGrams    int        `json:"weight_grams"`
}

// Summary is the slug -> name/price projection handed back with cart
// mutations so the caller can render without a second round trip.
type Summary struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}
