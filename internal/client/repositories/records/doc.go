// Package records persists sealed key/value records in the local SQLite vault.
//
// The repository stores whatever bytes it is given; encryption is done by the
// caller (see storage.Secure). Get returns common.ErrNotFound for missing keys.
//
// The expected schema is created by the embedded goose migrations:
//
//	CREATE TABLE records (
//	    key        TEXT PRIMARY KEY,
//	    value      BLOB NOT NULL,
//	    nonce      BLOB NOT NULL,
//	    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
package records
