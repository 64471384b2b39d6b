// Package admin wraps the product and category CRUD surface of the API
// behind input validation and an admin-session gate.
package admin

import (
	"context"
	"log/slog"

	apperrors "github.com/Jurgensen-SJB/supermercado/internal/errors"
	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/go-playground/validator/v10"
)

// CatalogAPI is the slice of the API client the admin panel drives.
type CatalogAPI interface {
	ListProducts(ctx context.Context, q models.ListProductsQuery) ([]models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id models.ProductID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id models.ProductID) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id models.CategoryID, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id models.CategoryID) error
}

// SessionGate answers whether the current session may administrate.
type SessionGate interface {
	IsAdmin(ctx context.Context) bool
}

type Service struct {
	api      CatalogAPI
	sessions SessionGate
	validate *validator.Validate
}

func NewService(api CatalogAPI, sessions SessionGate) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		validate: validator.New(),
	}
}

func (s *Service) guard(ctx context.Context) error {
	if !s.sessions.IsAdmin(ctx) {
		return apperrors.ForbiddenError("Acceso restringido. Solo administradores.")
	}

	return nil
}

func (s *Service) ListProducts(ctx context.Context, q models.ListProductsQuery) ([]models.Product, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	return s.api.ListProducts(ctx, q)
}

func (s *Service) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ValidationError("Invalid product data").WithError(err)
	}

	product, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	slog.Info("Product created", slog.String("product_id", product.ID.String()), slog.String("name", product.Name))

	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id models.ProductID, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, apperrors.BadRequestError("Product ID is required")
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ValidationError("Invalid product data").WithError(err)
	}

	return s.api.UpdateProduct(ctx, id, req)
}

func (s *Service) DeleteProduct(ctx context.Context, id models.ProductID) error {
	if err := s.guard(ctx); err != nil {
		return err
	}

	if id == "" {
		return apperrors.BadRequestError("Product ID is required")
	}

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}

	slog.Info("Product deleted", slog.String("product_id", id.String()))

	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	return s.api.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ValidationError("El nombre de la categoría es requerido").WithError(err)
	}

	return s.api.CreateCategory(ctx, req)
}

func (s *Service) UpdateCategory(ctx context.Context, id models.CategoryID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, apperrors.BadRequestError("Category ID is required")
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ValidationError("El nombre de la categoría es requerido").WithError(err)
	}

	return s.api.UpdateCategory(ctx, id, req)
}

func (s *Service) DeleteCategory(ctx context.Context, id models.CategoryID) error {
	if err := s.guard(ctx); err != nil {
		return err
	}

	if id == "" {
		return apperrors.BadRequestError("Category ID is required")
	}

	return s.api.DeleteCategory(ctx, id)
}
