package catalog

import (
	"context"
	"fmt"

	"optica-store/internal/httpapi"
)

// Client reads categories and products from the remote catalog
// service. The catalog is read-only from this side.
type Client struct {
	api *httpapi.Client
}

func NewClient(api *httpapi.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Categories(ctx context.Context) ([]Categoria, error) {
	var out []Categoria
	if err := c.api.Get(ctx, "/categorias", &out); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context) ([]Producto, error) {
	var out []Producto
	if err := c.api.Get(ctx, "/productos", &out); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return out, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryID int) ([]Producto, error) {
	var out []Producto
	path := fmt.Sprintf("/productos/categoria/%d", categoryID)
	if err := c.api.Get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("fetch products by category: %w", err)
	}
	return out, nil
}
