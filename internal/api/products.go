package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Jurgensen-SJB/supermercado/internal/models"
)

func (c *Client) ListProducts(ctx context.Context, q models.ListProductsQuery) ([]models.Product, error) {
	query := url.Values{}

	if q.Category != "" {
		query.Set("category", q.Category)
	}

	if q.Query != "" {
		query.Set("q", q.Query)
	}

	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", "list_products", query, nil, &products); err != nil {
		return nil, err
	}

	for i := range products {
		c.sanitizeProduct(&products[i])
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id models.ProductID) (*models.Product, error) {
	var product models.Product

	path := fmt.Sprintf("/api/products/%s", url.PathEscape(id.String()))
	if err := c.do(ctx, http.MethodGet, path, "get_product", nil, nil, &product); err != nil {
		return nil, err
	}

	c.sanitizeProduct(&product)

	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", "create_product", nil, req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id models.ProductID, req *models.UpdateProductRequest) (*models.Product, error) {
	var product models.Product

	path := fmt.Sprintf("/api/products/%s", url.PathEscape(id.String()))
	if err := c.do(ctx, http.MethodPut, path, "update_product", nil, req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id models.ProductID) error {
	path := fmt.Sprintf("/api/products/%s", url.PathEscape(id.String()))

	return c.do(ctx, http.MethodDelete, path, "delete_product", nil, nil, nil)
}

// display fields end up in persisted cart snapshots, so markup is
// stripped at the boundary
func (c *Client) sanitizeProduct(p *models.Product) {
	p.Name = c.sanitize(p.Name)
	p.Description = c.sanitize(p.Description)
	p.Category = c.sanitize(p.Category)
}
