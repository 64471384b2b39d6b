package models

type DeliveryMethod string

type PaymentMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
	DeliveryPickup   DeliveryMethod = "pickup"

	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// ShippingCost returns the delivery surcharge in the storefront's
// currency. Unknown or empty methods fall back to the standard rate.
func (m DeliveryMethod) ShippingCost() float64 {
	switch m {
	case DeliveryExpress:
		return 18000
	case DeliveryPickup:
		return 0
	case DeliveryStandard:
		return 10000
	default:
		return 10000
	}
}

type OrderItem struct {
	ProductID ProductID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

type CreateOrderRequest struct {
	Items          []OrderItem    `json:"items" validate:"required,min=1,dive"`
	UserID         UserID         `json:"userId,omitempty"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod" validate:"required,oneof=card cash"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod" validate:"required,oneof=standard express pickup"`
	ShippingCost   float64        `json:"shippingCost" validate:"gte=0"`
}

type Order struct {
	ID             OrderID        `json:"id"`
	UserID         UserID         `json:"userId,omitempty"`
	Items          []OrderItem    `json:"items,omitempty"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod,omitempty"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod,omitempty"`
	ShippingCost   float64        `json:"shippingCost,omitempty"`
	Total          float64        `json:"total,omitempty"`
	Status         string         `json:"status,omitempty"`
	CreatedAt      string         `json:"created_at,omitempty"`
}

// OrderTotals is the cost breakdown shown on the checkout summary and
// used for the final submission.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}
