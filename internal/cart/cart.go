// Package cart owns the list of line items the shopper intends to buy,
// persisted through an injected storage backend. Every mutation
// synchronously writes the full collection back; rendering layers
// subscribe to change events instead of being called directly.
//
// The store is exclusively owned by the event loop driving the UI and
// is not safe for concurrent use. Two processes sharing one storage
// backend race with last-writer-wins semantics.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	apperrors "github.com/Jurgensen-SJB/supermercado/internal/errors"
	"github.com/Jurgensen-SJB/supermercado/internal/metrics"
	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/Jurgensen-SJB/supermercado/internal/storage"
)

// ProductLookup resolves a product against the live catalog. A nil
// product with a nil error means confirmed absent.
type ProductLookup func(ctx context.Context, id models.ProductID) (*models.Product, error)

type Store struct {
	storage     storage.Store
	subscribers []func()
}

func NewStore(store storage.Store) *Store {
	return &Store{storage: store}
}

// Subscribe registers a callback fired after every successful mutation.
func (s *Store) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

// List returns the current cart in stored order. Persisted storage is
// treated as untrusted input: an unparseable payload purges the entry
// and yields an empty cart, and individually malformed or
// non-positive-quantity entries are dropped, never repaired.
func (s *Store) List(ctx context.Context) ([]models.CartLineItem, error) {
	var raw []json.RawMessage

	found, err := s.storage.Get(ctx, storage.KeyCart, &raw)
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) {
			slog.Warn("Purging corrupt cart payload", slog.String("error", err.Error()))

			if delErr := s.storage.Delete(ctx, storage.KeyCart); delErr != nil {
				return nil, apperrors.StorageError("Failed to purge corrupt cart").WithError(delErr)
			}

			return []models.CartLineItem{}, nil
		}

		return nil, apperrors.StorageError("Failed to load cart").WithError(err)
	}

	if !found {
		return []models.CartLineItem{}, nil
	}

	items := make([]models.CartLineItem, 0, len(raw))

	for _, entry := range raw {
		var item models.CartLineItem
		if err := json.Unmarshal(entry, &item); err != nil {
			slog.Warn("Dropping malformed cart entry", slog.String("error", err.Error()))

			continue
		}

		if !item.Valid() {
			continue
		}

		items = append(items, item)
	}

	return items, nil
}

// AddOrIncrement merges delta into the line item for product.ID,
// clamping the running quantity at zero and deleting the row when it
// reaches zero. A non-positive delta on an absent product is a no-op.
// New line items capture the discounted unit price as a snapshot.
func (s *Store) AddOrIncrement(ctx context.Context, product *models.Product, delta int) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	idx := -1

	for i := range items {
		if items[i].ProductID == product.ID {
			idx = i

			break
		}
	}

	switch {
	case idx >= 0:
		quantity := max(0, items[idx].Quantity+delta)
		if quantity == 0 {
			items = append(items[:idx], items[idx+1:]...)
		} else {
			items[idx].Quantity = quantity
			items[idx].UnitPrice = max(0, items[idx].UnitPrice)
		}
	case delta > 0:
		items = append(items, models.CartLineItem{
			ProductID:       product.ID,
			Name:            product.Name,
			UnitPrice:       product.DiscountedPrice(),
			OriginalPrice:   product.Price,
			DiscountPercent: product.DiscountPercentage,
			Image:           product.Image,
			Quantity:        delta,
		})
	default:
		return nil
	}

	if err := s.save(ctx, items); err != nil {
		return err
	}

	metrics.CountCartOperation("add")
	s.notify()

	return nil
}

// Remove deletes the line item for id unconditionally. The id may
// arrive as a string or number from the UI layer; it is normalized to
// the canonical form before comparison.
func (s *Store) Remove(ctx context.Context, id any) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	target := models.NormalizeProductID(id)
	filtered := items[:0]

	for _, item := range items {
		if item.ProductID != target {
			filtered = append(filtered, item)
		}
	}

	if err := s.save(ctx, filtered); err != nil {
		return err
	}

	metrics.CountCartOperation("remove")
	s.notify()

	return nil
}

// Clear empties the cart by dropping the storage entry.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, storage.KeyCart); err != nil {
		return apperrors.StorageError("Failed to clear cart").WithError(err)
	}

	metrics.CountCartOperation("clear")
	s.notify()

	return nil
}

// Reconcile re-validates every line item against the live catalog and
// drops items whose product is confirmed gone. A lookup error keeps the
// item: a transient API failure must not destroy cart state.
func (s *Store) Reconcile(ctx context.Context, lookup ProductLookup) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	kept := make([]models.CartLineItem, 0, len(items))

	for _, item := range items {
		product, err := lookup(ctx, item.ProductID)

		switch {
		case err != nil:
			if appErr, ok := apperrors.IsAppError(err); ok && appErr.Code == apperrors.ErrCodeNotFound {
				slog.Info("Dropping cart item for deleted product",
					slog.String("product_id", item.ProductID.String()),
					slog.String("name", item.Name))

				continue
			}

			slog.Warn("Keeping cart item after lookup failure",
				slog.String("product_id", item.ProductID.String()),
				slog.String("error", err.Error()))

			kept = append(kept, item)
		case product == nil:
			slog.Info("Dropping cart item for deleted product",
				slog.String("product_id", item.ProductID.String()),
				slog.String("name", item.Name))
		default:
			kept = append(kept, item)
		}
	}

	if len(kept) == len(items) {
		return nil
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}

	metrics.CountCartOperation("reconcile")
	s.notify()

	return nil
}

// Count returns the badge count: the sum of all line quantities.
func (s *Store) Count(ctx context.Context) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}

	return total, nil
}

// Subtotal sums the line totals of the current cart.
func (s *Store) Subtotal(ctx context.Context) (float64, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	return subtotal, nil
}

func (s *Store) save(ctx context.Context, items []models.CartLineItem) error {
	if err := s.storage.Set(ctx, storage.KeyCart, items); err != nil {
		return apperrors.StorageError("Failed to persist cart").WithError(err)
	}

	return nil
}
