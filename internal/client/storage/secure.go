package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/repositories/records"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/repositories/settings"
	"github.com/dmitrijs2005/ytsummarizer/internal/common"
	"github.com/dmitrijs2005/ytsummarizer/internal/cryptox"
	"github.com/dmitrijs2005/ytsummarizer/internal/dbx"
)

const saltSetting = "kdf_salt"

// Secure keeps records in the SQLite vault, sealed with a key derived from the
// device secret and a per-vault salt.
type Secure struct {
	db       *sql.DB
	records  records.Repository
	settings settings.Repository
	key      []byte
}

// NewSecure prepares a vault on a migrated database. The salt is created on
// first use and kept in the settings table.
func NewSecure(ctx context.Context, db *sql.DB, secret []byte) (*Secure, error) {
	settingsRepo := settings.NewSQLiteRepository(db)

	salt, err := settingsRepo.Get(ctx, saltSetting)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(16)
		if err := settingsRepo.Set(ctx, saltSetting, salt); err != nil {
			return nil, err
		}
	}

	return &Secure{
		db:       db,
		records:  records.NewSQLiteRepository(db),
		settings: settingsRepo,
		key:      cryptox.DeriveKey(secret, salt),
	}, nil
}

func (s *Secure) Store(ctx context.Context, key, value string) error {
	ct, nonce, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return records.NewSQLiteRepository(tx).Put(ctx, &models.Record{Key: key, Value: ct, Nonce: nonce})
	})
}

func (s *Secure) Get(ctx context.Context, key string) (string, bool, error) {
	rec, err := s.records.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	plain, err := cryptox.Open(rec.Value, rec.Nonce, s.key)
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", key, err)
	}
	return string(plain), true, nil
}

func (s *Secure) Remove(ctx context.Context, key string) error {
	return s.records.Delete(ctx, key)
}

func (s *Secure) Close() error {
	common.WipeByteArray(s.key)
	return s.db.Close()
}
