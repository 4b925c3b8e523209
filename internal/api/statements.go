package api

import (
	"context"
	"fmt"
	"net/http"
)

// Statement is an uploaded bank statement as the service lists it.
type Statement struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
	RowCount   int    `json:"row_count"`
}

// ListStatements fetches the uploaded statements.
func (c *Client) ListStatements(ctx context.Context) ([]Statement, error) {
	var out []Statement
	if err := c.do(ctx, http.MethodGet, "/statements", nil, &out); err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	return out, nil
}

// ReimportStatement re-runs the server-side import of a statement.
func (c *Client) ReimportStatement(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/statement/%d/reimport", id), nil, nil); err != nil {
		return fmt.Errorf("reimport statement %d: %w", id, err)
	}
	return nil
}

// DeleteStatement removes a statement and its imported rows.
func (c *Client) DeleteStatement(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/statement/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete statement %d: %w", id, err)
	}
	return nil
}
