package dom

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var idCounter atomic.Uint64

// GenerateUniqueID returns prefix followed by a process-wide increasing
// counter and a random suffix. Two calls never return the same value.
func GenerateUniqueID(prefix string) string {
	n := idCounter.Add(1)
	return fmt.Sprintf("%s-%d-%s", prefix, n, uuid.NewString()[:8])
}
