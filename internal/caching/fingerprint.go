package caching

import (
	"crypto/sha256"
	"encoding/hex"

	"navhub/internal/models"
)

// Fingerprint derives a stable, order-independent cache key from a
// permission set. Codes are hashed in sorted order with a separator byte so
// adjacent codes cannot collide by concatenation. Two principals holding
// the same permissions share one fingerprint regardless of how the set was
// assembled.
func Fingerprint(perms models.PermissionSet) string {
	h := sha256.New()
	for _, code := range perms.Sorted() {
		h.Write([]byte(code))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
