package catalog

import "strings"

// Plan is a purchasable pricing tier of a product. Plans are defined statically
// and never mutated at runtime.
type Plan struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	PriceUSD float64 `json:"price_usd"`
	WasUSD   float64 `json:"was_usd,omitempty"` // 0 means no strike-through price
}

type Product struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Plans []Plan `json:"plans"`
}

var products = []Product{
	{
		Slug: "nitroflare",
		Name: "NitroFlare Premium Key",
		Plans: []Plan{
			{ID: "nf-30", Label: "30 Days Premium", PriceUSD: 12.99, WasUSD: 19.99},
			{ID: "nf-90", Label: "90 Days Premium", PriceUSD: 29.99, WasUSD: 44.99},
			{ID: "nf-180", Label: "180 Days Premium", PriceUSD: 49.99, WasUSD: 74.99},
			{ID: "nf-365", Label: "365 Days Premium", PriceUSD: 79.99, WasUSD: 119.99},
		},
	},
	{
		Slug: "k2s",
		Name: "Keep2Share Premium Key",
		Plans: []Plan{
			{ID: "k2s-30", Label: "30 Days Premium", PriceUSD: 14.95, WasUSD: 21.95},
			{ID: "k2s-90", Label: "90 Days Premium", PriceUSD: 34.95, WasUSD: 49.95},
			{ID: "k2s-365", Label: "365 Days Premium PRO", PriceUSD: 89.95, WasUSD: 129.95},
		},
	},
	{
		Slug: "filejoker",
		Name: "FileJoker Premium Key",
		Plans: []Plan{
			{ID: "fj-30", Label: "30 Days Premium", PriceUSD: 13.50, WasUSD: 18.00},
			{ID: "fj-90", Label: "90 Days Premium", PriceUSD: 31.50, WasUSD: 45.00},
			{ID: "fj-365", Label: "365 Days Premium VIP", PriceUSD: 85.00, WasUSD: 120.00},
		},
	},
	{
		Slug: "tezfiles",
		Name: "TezFiles Premium Key",
		Plans: []Plan{
			{ID: "tz-30", Label: "30 Days Premium", PriceUSD: 11.99, WasUSD: 16.99},
			{ID: "tz-90", Label: "90 Days Premium", PriceUSD: 27.99, WasUSD: 39.99},
			{ID: "tz-365", Label: "365 Days Premium", PriceUSD: 74.99, WasUSD: 99.99},
		},
	},
	{
		Slug: "emload",
		Name: "Emload Premium Key",
		Plans: []Plan{
			{ID: "em-30", Label: "30 Days Premium", PriceUSD: 12.50, WasUSD: 17.50},
			{ID: "em-90", Label: "90 Days Premium", PriceUSD: 28.50, WasUSD: 42.00},
			{ID: "em-365", Label: "365 Days Premium", PriceUSD: 76.00, WasUSD: 105.00},
		},
	},
	{
		Slug: "ddownload",
		Name: "DDownload Premium Key",
		Plans: []Plan{
			{ID: "dd-30", Label: "30 Days Premium", PriceUSD: 10.99, WasUSD: 14.99},
			{ID: "dd-90", Label: "90 Days Premium", PriceUSD: 25.99, WasUSD: 36.99},
			{ID: "dd-365", Label: "365 Days Premium", PriceUSD: 69.99, WasUSD: 95.99},
		},
	},
}

func Products() []Product {
	return products
}

func Find(slug string) (*Product, bool) {
	for i := range products {
		if strings.EqualFold(products[i].Slug, slug) {
			return &products[i], true
		}
	}
	return nil, false
}

// ResolvePlan implements the ?plan= deep link: case-insensitive match on plan id
// first, then on label. A non-matching or empty value falls back to the first plan.
func ResolvePlan(p *Product, q string) Plan {
	if q != "" {
		for _, plan := range p.Plans {
			if strings.EqualFold(plan.ID, q) {
				return plan
			}
		}
		for _, plan := range p.Plans {
			if strings.EqualFold(plan.Label, q) {
				return plan
			}
		}
	}
	return p.Plans[0]
}
