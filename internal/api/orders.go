package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Jurgensen-SJB/supermercado/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", "create_order", nil, req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// DeleteOrder removes a single order. The API checks ownership against
// the user id carried in the body.
func (c *Client) DeleteOrder(ctx context.Context, orderID models.OrderID, userID models.UserID) error {
	path := fmt.Sprintf("/api/orders/%s", url.PathEscape(orderID.String()))
	body := map[string]models.UserID{"userId": userID}

	return c.do(ctx, http.MethodDelete, path, "delete_order", nil, body, nil)
}

func (c *Client) DeleteAllOrders(ctx context.Context, userID models.UserID) error {
	path := fmt.Sprintf("/api/orders/user/%s", url.PathEscape(userID.String()))

	return c.do(ctx, http.MethodDelete, path, "delete_all_orders", nil, nil, nil)
}
