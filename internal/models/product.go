package models

type Product struct {
	ID                 ProductID `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Price              float64   `json:"price"`
	DiscountPercentage float64   `json:"discount_percentage,omitempty"`
	Image              string    `json:"image"`
	Category           string    `json:"category"`
	Stock              int       `json:"stock"`
	IsEco              bool      `json:"isEco"`
}

// DiscountedPrice applies the percentage discount multiplicatively and
// floors the result at zero, matching how line-item prices are captured
// when a product enters the cart.
func (p *Product) DiscountedPrice() float64 {
	base := max(0, p.Price)

	if p.DiscountPercentage > 0 {
		return max(0, base*(1-p.DiscountPercentage/100))
	}

	return base
}

type Category struct {
	ID          CategoryID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
}

type CreateProductRequest struct {
	Name               string  `json:"name" validate:"required,min=2,max=200"`
	Description        string  `json:"description,omitempty"`
	Price              float64 `json:"price" validate:"required,gt=0"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Image              string  `json:"image,omitempty"`
	Category           string  `json:"category" validate:"required"`
	Stock              int     `json:"stock" validate:"gte=0"`
	IsEco              bool    `json:"isEco"`
}

type UpdateProductRequest struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description        *string  `json:"description,omitempty"`
	Price              *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Image              *string  `json:"image,omitempty"`
	Category           *string  `json:"category,omitempty"`
	Stock              *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsEco              *bool    `json:"isEco,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty"`
}

// ListProductsQuery narrows GET /api/products.
type ListProductsQuery struct {
	Category string
	Query    string
}
