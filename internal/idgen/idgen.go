// Package idgen produces the time-prefixed random identifiers used for sessions
// and messages, and the wall clock they are stamped with.
package idgen

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"arthurchat/pkg/chattypes"

	"github.com/google/uuid"
)

// SuffixLength is the number of base-36 characters after the timestamp.
const SuffixLength = 7

// Common id prefixes.
const (
	PrefixMessage      = "msg"
	PrefixConversation = "conv"
)

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Generator builds ids of the form <prefix>_<unix-ms>_<7 base-36 chars>.
// Uniqueness rests on the random suffix, not on the timestamp.
type Generator struct {
	clock chattypes.Clock
}

// New returns a generator stamping ids with clock; a nil clock uses the system clock.
func New(clock chattypes.Clock) *Generator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Generator{clock: clock}
}

// NewID returns a fresh id for prefix.
func (g *Generator) NewID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, g.clock.Now().UnixMilli(), randomSuffix())
}

// randomSuffix base-36 encodes the random bits of a v4 UUID and keeps SuffixLength chars.
func randomSuffix() string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	s := n.Text(36)
	if len(s) < SuffixLength {
		s = strings.Repeat("0", SuffixLength-len(s)) + s
	}
	return s[len(s)-SuffixLength:]
}
