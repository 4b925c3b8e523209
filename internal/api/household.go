package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gsapre/housetab/internal/model"
)

// GetHousehold fetches the member configuration.
func (c *Client) GetHousehold(ctx context.Context) (model.Members, error) {
	var out model.Members
	if err := c.do(ctx, http.MethodGet, "/household/config", nil, &out); err != nil {
		return model.Members{}, fmt.Errorf("get household config: %w", err)
	}
	return out, nil
}

// SaveHousehold stores the member configuration.
func (c *Client) SaveHousehold(ctx context.Context, m model.Members) error {
	if err := c.do(ctx, http.MethodPost, "/household/config", m, nil); err != nil {
		return fmt.Errorf("save household config: %w", err)
	}
	return nil
}
