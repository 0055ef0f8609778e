package resume

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator 为新条目生成唯一标识。
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SequenceGenerator produces prefix-1, prefix-2, ... and is safe for concurrent use.
type SequenceGenerator struct {
	prefix string

	mu sync.Mutex
	n  uint64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.prefix + "-" + strconv.FormatUint(g.n, 10)
}

const maxIDAttempts = 8

// uniqueID asks gen for an id not yet used in taken. A generator that keeps
// colliding falls back to a numeric suffix on its last answer.
func uniqueID(gen IDGenerator, taken map[string]struct{}) string {
	var id string
	for i := 0; i < maxIDAttempts; i++ {
		id = gen.NewID()
		if _, dup := taken[id]; !dup && id != "" {
			return id
		}
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, dup := taken[candidate]; !dup {
			return candidate
		}
	}
}
