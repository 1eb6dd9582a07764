package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// Get returns (nil, nil) when the key is absent.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM drafts WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO drafts (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set draft[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete draft[%s]: %w", key, err)
	}
	return nil
}

// DeleteKeys removes every key in one transaction when the handle can begin
// one, so a partial clear is never visible.
func (r *SQLiteRepository) DeleteKeys(ctx context.Context, keys []string) error {
	del := func(ctx context.Context, q dbx.DBTX) error {
		for _, k := range keys {
			if _, err := q.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, k); err != nil {
				return fmt.Errorf("failed to delete draft[%s]: %w", k, err)
			}
		}
		return nil
	}

	if b, ok := r.db.(dbx.TxBeginner); ok {
		return dbx.WithTx(ctx, b, nil, del)
	}
	return del(ctx, r.db)
}

// Stat lists stored drafts ordered by key without loading their values.
func (r *SQLiteRepository) Stat(ctx context.Context) ([]models.DraftMeta, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, length(value), updated_at FROM drafts ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to stat drafts: %w", err)
	}
	defer rows.Close()

	var result []models.DraftMeta
	for rows.Next() {
		var (
			m  models.DraftMeta
			ms int64
		)
		if err := rows.Scan(&m.Key, &m.Size, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		m.UpdatedAt = time.UnixMilli(ms)
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft rows: %w", err)
	}

	return result, nil
}
