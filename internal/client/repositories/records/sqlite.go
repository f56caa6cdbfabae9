package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/common"
	"github.com/dmitrijs2005/ytsummarizer/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*models.Record, error) {
	rec := &models.Record{Key: key}
	err := r.db.QueryRowContext(ctx,
		`SELECT value, nonce, updated_at FROM records WHERE key = ?`, key,
	).Scan(&rec.Value, &rec.Nonce, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, rec *models.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (key, value, nonce, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			nonce = excluded.nonce,
			updated_at = excluded.updated_at
	`, rec.Key, rec.Value, rec.Nonce)
	if err != nil {
		return fmt.Errorf("failed to put record[%s]: %w", rec.Key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", key, err)
	}
	return nil
}
