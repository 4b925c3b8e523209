// Package cache keeps an sqlite snapshot of the last dataset loaded
// from the server. It is best-effort only: when a load fails the UI
// shows the cached rows instead of an empty table. The server remains
// the source of truth.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gsapre/housetab/internal/model"
)

// Cache wraps the snapshot database.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database and applies
// migrations.
func Open(path string) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate snapshot db: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Save replaces the snapshot with the given rows.
func (c *Cache) Save(ctx context.Context, rows []model.Expense) error {
	return withTx(c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO expenses (id, date, description, amount, category, need_category, card, who, split_cost, outlier, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range rows {
			_, err := stmt.ExecContext(ctx,
				e.ID, e.Date, e.Description, string(e.Amount), e.Category,
				e.NeedCategory, e.Card, e.Who, e.SplitCost, e.Outlier, e.Notes)
			if err != nil {
				return fmt.Errorf("insert row %d: %w", e.ID, err)
			}
		}
		now := time.Now().UTC().Truncate(time.Second)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (key, value) VALUES ('saved_at', ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			now.Format(time.RFC3339))
		return err
	})
}

// Load returns the snapshot rows and when they were saved. A missing
// snapshot returns no rows and a zero time, not an error.
func (c *Cache) Load(ctx context.Context) ([]model.Expense, time.Time, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, date, description, amount, category, need_category, card, who, split_cost, outlier, notes
		FROM expenses ORDER BY id`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var out []model.Expense
	for rows.Next() {
		var e model.Expense
		var amount string
		err := rows.Scan(&e.ID, &e.Date, &e.Description, &amount, &e.Category,
			&e.NeedCategory, &e.Card, &e.Who, &e.SplitCost, &e.Outlier, &e.Notes)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("scan snapshot row: %w", err)
		}
		e.Amount = model.RawAmount(amount)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	var savedAt time.Time
	var raw string
	err = c.db.QueryRowContext(ctx,
		`SELECT value FROM snapshot_meta WHERE key = 'saved_at'`).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, time.Time{}, err
	default:
		savedAt, _ = time.Parse(time.RFC3339, raw)
	}
	return out, savedAt, nil
}
