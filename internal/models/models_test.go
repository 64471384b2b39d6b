package models_test

import (
	"encoding/json"
	"testing"

	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFlexibleIDDecoding(t *testing.T) {
	t.Run("Success - Number And String Decode Identically", func(t *testing.T) {
		// Arrange
		var fromNumber, fromString struct {
			ID models.ProductID `json:"id"`
		}

		// Act
		assert.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &fromNumber))
		assert.NoError(t, json.Unmarshal([]byte(`{"id": "42"}`), &fromString))

		// Assert
		assert.Equal(t, fromNumber.ID, fromString.ID)
		assert.Equal(t, models.ProductID("42"), fromNumber.ID)
	})

	t.Run("Success - Large Numeric ID Keeps Precision", func(t *testing.T) {
		// Arrange
		var got struct {
			ID models.OrderID `json:"id"`
		}

		// Act
		assert.NoError(t, json.Unmarshal([]byte(`{"id": 9007199254740993}`), &got))

		// Assert
		assert.Equal(t, models.OrderID("9007199254740993"), got.ID)
	})

	t.Run("Success - Null Decodes To Empty", func(t *testing.T) {
		// Arrange
		var got struct {
			ID models.UserID `json:"id"`
		}

		// Act
		assert.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &got))

		// Assert
		assert.Equal(t, models.UserID(""), got.ID)
	})

	t.Run("Failure - Non Scalar ID Is Rejected", func(t *testing.T) {
		// Arrange
		var got struct {
			ID models.CategoryID `json:"id"`
		}

		// Act & Assert
		assert.Error(t, json.Unmarshal([]byte(`{"id": {"nested": true}}`), &got))
	})
}

func TestNormalizeProductID(t *testing.T) {
	t.Run("Success - Every UI Representation Converges", func(t *testing.T) {
		assert.Equal(t, models.ProductID("42"), models.NormalizeProductID("42"))
		assert.Equal(t, models.ProductID("42"), models.NormalizeProductID(42))
		assert.Equal(t, models.ProductID("42"), models.NormalizeProductID(int64(42)))
		assert.Equal(t, models.ProductID("42"), models.NormalizeProductID(float64(42)))
		assert.Equal(t, models.ProductID("42"), models.NormalizeProductID(json.Number("42")))
		assert.Equal(t, models.ProductID("42"), models.NormalizeProductID(models.ProductID("42")))
	})

	t.Run("Success - Unknown Types Map To Empty", func(t *testing.T) {
		assert.Equal(t, models.ProductID(""), models.NormalizeProductID(nil))
		assert.Equal(t, models.ProductID(""), models.NormalizeProductID(struct{}{}))
	})
}

func TestDiscountedPrice(t *testing.T) {
	t.Run("Success - Applies Percentage", func(t *testing.T) {
		product := models.Product{Price: 10000, DiscountPercentage: 25}
		assert.Equal(t, 7500.0, product.DiscountedPrice())
	})

	t.Run("Success - No Discount Returns Base", func(t *testing.T) {
		product := models.Product{Price: 10000}
		assert.Equal(t, 10000.0, product.DiscountedPrice())
	})

	t.Run("Success - Never Goes Negative", func(t *testing.T) {
		product := models.Product{Price: -500, DiscountPercentage: 10}
		assert.Equal(t, 0.0, product.DiscountedPrice())

		product = models.Product{Price: 1000, DiscountPercentage: 150}
		assert.Equal(t, 0.0, product.DiscountedPrice())
	})
}

func TestShippingCost(t *testing.T) {
	assert.Equal(t, 10000.0, models.DeliveryStandard.ShippingCost())
	assert.Equal(t, 18000.0, models.DeliveryExpress.ShippingCost())
	assert.Equal(t, 0.0, models.DeliveryPickup.ShippingCost())

	// unknown methods behave like standard
	assert.Equal(t, 10000.0, models.DeliveryMethod("drone").ShippingCost())
	assert.Equal(t, 10000.0, models.DeliveryMethod("").ShippingCost())
}
