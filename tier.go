package sigscan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mhr3/sigscan/internal/backend"
)

// Tier selects the matching engine used by a scan.
type Tier uint8

const (
	// Auto picks the fastest tier the running CPU supports.
	Auto Tier = iota
	// Scalar compares one byte at a time and runs everywhere.
	Scalar
	// SSE42 compares 16 bytes per step using SSE4.2.
	SSE42
	// AVX2 compares 32 bytes per step using AVX2.
	AVX2
)

// ErrUnknownTier is returned by ParseTier for unrecognised names.
var ErrUnknownTier = errors.New("unknown tier")

var tierNames = [...]string{
	Auto:   "auto",
	Scalar: "scalar",
	SSE42:  "sse42",
	AVX2:   "avx2",
}

// matchers maps every concrete tier to its backend.
var matchers = [...]backend.Matcher{
	Scalar: backend.Scalar,
	SSE42:  backend.SSE42,
	AVX2:   backend.AVX2,
}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// Width returns the number of bytes the tier compares per step, or 0 for
// Auto and unknown tiers.
func (t Tier) Width() int {
	if m := t.matcher(); m != nil {
		return m.Width()
	}
	return 0
}

func (t Tier) matcher() backend.Matcher {
	if int(t) < len(matchers) {
		return matchers[t]
	}
	return nil
}

// ParseTier parses a tier name as printed by Tier.String. Matching is case
// insensitive and accepts "sse4.2" as an alias of "sse42".
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "sse4.2" {
		name = "sse42"
	}
	for t, n := range tierNames {
		if n == name {
			return Tier(t), nil
		}
	}
	return Auto, fmt.Errorf("%w %q", ErrUnknownTier, s)
}
