package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Reader is the read-only catalog accessor. Catalog administration happens
// elsewhere; the checkout core only ever queries.
type Reader struct {
	DB *pgxpool.Pool
}

func (r *Reader) ListProducts(ctx context.Context, inStockOnly bool) ([]Product, error) {
	q := `SELECT slug, name, price, description, image_url, origin_country,
	             brand, material, category, rating, in_stock, release_date,
	             warranty_months, weight_grams
	      FROM products`
	if inStockOnly {
		q += ` WHERE in_stock = true`
	}
	q += ` ORDER BY name`

	rows, err := r.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Slug, &p.Name, &p.PriceCents, &p.Description,
			&p.ImageURL, &p.OriginCountry, &p.Brand, &p.Material, &p.Category,
			&p.Rating, &p.InStock, &p.ReleaseDate, &p.WarrantyMonths, &p.WeightGrams); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Summaries returns name and current price for every catalog product.
func (r *Reader) Summaries(ctx context.Context) (map[string]Summary, error) {
	rows, err := r.DB.Query(ctx, `SELECT slug, name, price FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]Summary{}
	for rows.Next() {
		var slug string
		var s Summary
		if err := rows.Scan(&slug, &s.Name, &s.PriceCents); err != nil {
			return nil, err
		}
		out[slug] = s
	}
	return out, rows.Err()
}

// PriceLookup returns the authoritative current price for each of the given
// slugs. Slugs missing from the catalog are absent from the result; callers
// decide what that means.
func (r *Reader) PriceLookup(ctx context.Context, slugs []string) (map[string]int64, error) {
	if len(slugs) == 0 {
		return map[string]int64{}, nil
	}
	args := make([]any, 0, len(slugs))
	for _, s := range slugs {
		args = append(args, s)
	}
	q := fmt.Sprintf(`SELECT slug, price FROM products WHERE slug IN (%s)`, placeholders(len(slugs)))

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := map[string]int64{}
	for rows.Next() {
		var slug string
		var price int64
		if err := rows.Scan(&slug, &price); err != nil {
			return nil, err
		}
		prices[slug] = price
	}
	return prices, rows.Err()
}

func placeholders(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "$%d", i)
	}
	return b.String()
}
