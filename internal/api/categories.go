package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Jurgensen-SJB/supermercado/internal/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", "list_categories", nil, nil, &categories); err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].Name = c.sanitize(categories[i].Name)
		categories[i].Description = c.sanitize(categories[i].Description)
	}

	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	var category models.Category

	path := fmt.Sprintf("/api/categories/%s", url.PathEscape(id.String()))
	if err := c.do(ctx, http.MethodGet, path, "get_category", nil, nil, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", "create_category", nil, req, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id models.CategoryID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category

	path := fmt.Sprintf("/api/categories/%s", url.PathEscape(id.String()))
	if err := c.do(ctx, http.MethodPut, path, "update_category", nil, req, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id models.CategoryID) error {
	path := fmt.Sprintf("/api/categories/%s", url.PathEscape(id.String()))

	return c.do(ctx, http.MethodDelete, path, "delete_category", nil, nil, nil)
}
