// Package ids generates the opaque string identifiers used for pricing
// child rows (variant prices, discounts, tiers, and their per-category
// children). Those rows are assembled and cross-referenced inside a
// transaction before anything is durable, so identifiers must be
// assignable client-side and collision-resistant across concurrent
// inserts. ULIDs (48-bit timestamp + 80 random bits) give both, and sort
// roughly by creation time.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a fresh opaque identifier.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}

// Generator abstracts id generation so tests can use deterministic ids.
type Generator func() string
