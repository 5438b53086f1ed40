// Package keyring stores broker credentials the way the broker SDK expects
// to find them: one secret per (namespace, account) pair.
package keyring

import (
	"encoding/hex"
	"errors"

	"github.com/zeebo/blake3"
)

var ErrNotFound = errors.New("credential not found")

type Store interface {
	Put(namespace, account, secret string) error
	Get(namespace, account string) (string, error)
}

// Digest returns the hex-encoded BLAKE3-256 digest of s. Stores are keyed by
// the digest of the account id, so switching accounts makes the previous
// store unreadable instead of mixing credentials.
func Digest(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
