package welstory

import (
	"github.com/pmh-only/welstory-api-wrapper/internal/deviceid"
)

// GenerateDeviceID produces a random identifier suitable as a per-instance
// device token. It prefers a cryptographically random UUIDv4 and synthesizes
// a v4-formatted identifier from a weaker source when that fails. It never
// blocks on the network.
func GenerateDeviceID() string {
	return deviceid.New()
}
