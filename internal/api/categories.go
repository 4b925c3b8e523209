package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gsapre/housetab/internal/model"
)

// ListCategories fetches the category registry contents.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// CreateCategory registers a new category.
func (c *Client) CreateCategory(ctx context.Context, cat model.Category) error {
	if err := c.do(ctx, http.MethodPost, "/categories", cat, nil); err != nil {
		return fmt.Errorf("create category %q: %w", cat.Name, err)
	}
	return nil
}

// RenameCategory renames a category; the server rewrites rows that
// reference the old name.
func (c *Client) RenameCategory(ctx context.Context, oldName, newName string) error {
	req := struct {
		Name string `json:"name"`
	}{Name: newName}
	path := "/categories/" + url.PathEscape(oldName) + "/rename"
	if err := c.do(ctx, http.MethodPatch, path, req, nil); err != nil {
		return fmt.Errorf("rename category %q: %w", oldName, err)
	}
	return nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(name), nil, nil); err != nil {
		return fmt.Errorf("delete category %q: %w", name, err)
	}
	return nil
}
