// Package storage persists the signed-in user record on this device.
//
// Two backends implement Store and one is chosen at startup with Open:
//
//   - Secure: an SQLite vault whose values are sealed with AES-GCM. Records
//     survive restarts, so a restart does not require signing in again.
//   - Memory: an unencrypted map that lives as long as the process.
//
// Store errors are returned wrapped; callers log them and carry on.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/ytsummarizer/internal/common"
	"github.com/dmitrijs2005/ytsummarizer/internal/filex"
)

const (
	KindSecure = "secure"
	KindMemory = "memory"
)

const (
	vaultFileName  = "vault.db"
	deviceKeyFile  = "device.key"
	deviceKeyBytes = 32
)

// Store is a small string key/value store scoped to this device.
type Store interface {
	Store(ctx context.Context, key, value string) error
	// Get reports ok=false (and no error) when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open returns the backend named by kind. The secure backend keeps its vault
// and device key under dataDir.
func Open(ctx context.Context, kind, dataDir string) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindSecure:
		return openSecure(ctx, dataDir)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}

func openSecure(ctx context.Context, dataDir string) (Store, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, err
	}

	secret, err := filex.ReadOrCreate(filepath.Join(dir, deviceKeyFile), func() []byte {
		return common.GenerateRandByteArray(deviceKeyBytes)
	})
	if err != nil {
		return nil, fmt.Errorf("device key: %w", err)
	}
	defer common.WipeByteArray(secret)

	db, err := InitDatabase(ctx, filepath.Join(dir, vaultFileName))
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}

	s, err := NewSecure(ctx, db, secret)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
