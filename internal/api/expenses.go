package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gsapre/housetab/internal/model"
)

// ListExpenses fetches the full dataset.
func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	var out []model.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, &out); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

// CreateExpense creates a row and returns the server-assigned ID.
func (c *Client) CreateExpense(ctx context.Context, e model.Expense) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/expense", e, &out); err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	return out.ID, nil
}

// UpdateExpense patches the given fields of one row. Field names are
// the wire names (date, description, amount, category, need_category,
// card, who, split_cost, outlier, notes).
func (c *Client) UpdateExpense(ctx context.Context, id int64, fields map[string]any) error {
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/expense/%d", id), fields, nil); err != nil {
		return fmt.Errorf("update expense %d: %w", id, err)
	}
	return nil
}

// DeleteExpense removes one row.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/expense/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

// BulkDeleteResult reports how a best-effort bulk delete went.
type BulkDeleteResult struct {
	Deleted int     `json:"deleted"`
	Failed  []int64 `json:"failed"`
}

// BulkDeleteExpenses deletes rows by ID. The operation is best
// effort and not transactional: rows deleted before a failure stay
// deleted, and the result names the IDs that failed.
func (c *Client) BulkDeleteExpenses(ctx context.Context, ids []int64) (BulkDeleteResult, error) {
	req := struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}
	var out BulkDeleteResult
	if err := c.do(ctx, http.MethodDelete, "/expenses/bulk_delete", req, &out); err != nil {
		return out, fmt.Errorf("bulk delete: %w", err)
	}
	if len(out.Failed) > 0 {
		return out, fmt.Errorf("bulk delete: %d of %d rows failed", len(out.Failed), len(ids))
	}
	return out, nil
}

// DeleteAllExpenses wipes the dataset.
func (c *Client) DeleteAllExpenses(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/delete_all_expenses", nil, nil); err != nil {
		return fmt.Errorf("delete all expenses: %w", err)
	}
	return nil
}

// Undo asks the server to revert its last mutation.
func (c *Client) Undo(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/undo", nil, nil); err != nil {
		return fmt.Errorf("server undo: %w", err)
	}
	return nil
}
