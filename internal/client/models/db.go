// Package models defines client-side data models of the summarizer CLI.
package models

import "time"

// Record is one sealed value of the local vault. Value holds AES-GCM
// ciphertext and Nonce the matching nonce.
type Record struct {
	Key       string
	Value     []byte
	Nonce     []byte
	UpdatedAt time.Time
}
