package models

// CartLineItem is one product-quantity pairing in the cart. Name, image
// and prices are a display snapshot captured when the product was added;
// they are not re-fetched from the catalog. The JSON shape matches the
// persisted cart payload written by earlier storefront versions.
type CartLineItem struct {
	ProductID       ProductID `json:"productId"`
	Name            string    `json:"name"`
	UnitPrice       float64   `json:"price"`
	OriginalPrice   float64   `json:"originalPrice"`
	DiscountPercent float64   `json:"discount"`
	Image           string    `json:"image"`
	Quantity        int       `json:"quantity"`
}

// Valid reports whether a deserialized entry may stay in the cart.
// Invalid entries are dropped on load, never repaired.
func (i *CartLineItem) Valid() bool {
	return i.ProductID != "" && i.Name != "" && i.UnitPrice >= 0 && i.Quantity > 0
}

// LineTotal is the item contribution to the order subtotal.
func (i *CartLineItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
