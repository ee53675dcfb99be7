// Package deviceid generates per-client-instance device identifiers.
package deviceid

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// New returns a random UUIDv4 string. uuid.NewRandom draws from
// crypto/rand; when that source is unavailable New falls back to a
// v4-formatted identifier from math/rand. Neither path blocks on the
// network.
func New() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fallback()
}

// fallback synthesizes a version-4, variant-1 formatted identifier from a
// weak random source.
func fallback() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
