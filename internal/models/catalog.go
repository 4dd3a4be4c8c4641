package models

// Product is the read-only catalog record served by the commerce backend.
// Prices are integers in minor currency units; DiscountPriceMinor is the
// effective selling price and never exceeds BasePriceMinor.
type Product struct {
	ID                 string    `json:"_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	BasePriceMinor     int64     `json:"base_price"`
	DiscountPriceMinor int64     `json:"discount_price"`
	AvailableQty       int       `json:"qty"`
	Published          bool      `json:"is_published"`
	Images             []string  `json:"images"`
	Category           *Category `json:"category,omitempty"`
}

// FirstImage returns the primary product image, falling back to the
// placeholder the storefront ships with.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}

	return "/logo.png"
}

type Category struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	ParentID *string    `json:"parent_id"`
	Childs   []Category `json:"childs"`
}
