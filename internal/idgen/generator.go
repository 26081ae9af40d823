// Package idgen provides pluggable strategies for generating opaque,
// process-unique identifiers.
package idgen

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Strategy names accepted by New.
const (
	StrategyULID = "ulid"
	StrategyUUID = "uuid"
)

// Generator produces the next unique identifier.
type Generator interface {
	NewID() string
}

// New returns the generator registered under strategy.
func New(strategy string) (Generator, error) {
	switch strings.ToLower(strategy) {
	case "", StrategyULID:
		return NewULID(), nil
	case StrategyUUID:
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

// ULID generates lexically sortable ids: a millisecond timestamp followed by
// monotonic random entropy.
type ULID struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULID creates a ULID generator seeded from crypto/rand.
func NewULID() *ULID {
	return &ULID{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewID implements Generator.
func (g *ULID) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	return strings.ToLower(id.String())
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence yields prefix1, prefix2, ... and is meant for deterministic tests.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a Sequence generator.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	return s.prefix + strconv.FormatUint(s.next.Add(1), 10)
}
