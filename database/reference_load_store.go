// database/reference_load_store.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gewnthar/flightops/models"
)

func (db *DB) recordReferenceLoad(ctx context.Context, tx *sql.Tx, table, source string, rows int) error {
	_, err := db.insertReturningID(ctx, tx,
		"INSERT INTO reference_loads (table_name, source, row_count, loaded_at) VALUES (?, ?, ?, ?)",
		table, source, rows, time.Now().UTC().Truncate(time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to record load of %s: %w", table, err)
	}
	return nil
}

// LatestReferenceLoad returns the most recent load of table, or (nil, nil) if it was never loaded.
func (db *DB) LatestReferenceLoad(ctx context.Context, table string) (*models.ReferenceLoad, error) {
	var l models.ReferenceLoad
	err := db.QueryRowContext(ctx,
		db.Rebind("SELECT id, table_name, source, row_count, loaded_at FROM reference_loads WHERE table_name = ? ORDER BY id DESC LIMIT 1"),
		table,
	).Scan(&l.ID, &l.TableName, &l.Source, &l.RowCount, &l.LoadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest load of %s: %w", table, err)
	}
	return &l, nil
}

// ListReferenceLoads returns the most recent loads across all tables, newest first.
func (db *DB) ListReferenceLoads(ctx context.Context, limit int) ([]models.ReferenceLoad, error) {
	rows, err := db.QueryContext(ctx,
		db.Rebind("SELECT id, table_name, source, row_count, loaded_at FROM reference_loads ORDER BY id DESC LIMIT ?"),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference loads: %w", err)
	}
	defer rows.Close()

	var loads []models.ReferenceLoad
	for rows.Next() {
		var l models.ReferenceLoad
		if err := rows.Scan(&l.ID, &l.TableName, &l.Source, &l.RowCount, &l.LoadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reference load row: %w", err)
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}
