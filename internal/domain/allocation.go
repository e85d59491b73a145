package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TargetEntry is one (weight, security) pair of a target allocation.
// Weight is a percentage of total portfolio value in [0, 100].
type TargetEntry struct {
	Weight   decimal.Decimal
	Security Security
}

// TargetAllocation is the desired percentage split of portfolio value across a
// set of securities. The constructor is the only way to obtain one, so every
// existing TargetAllocation is known valid: no duplicate identifiers, no
// negative weight, weights summing to exactly 100.
type TargetAllocation struct {
	entries []TargetEntry
}

// NewTargetAllocation validates the given entries and builds an allocation.
// Checks run in a fixed order so the first broken rule determines the error:
// duplicates, then negative weights, then the exact-100 sum. The input slice
// is copied; later mutation of it does not affect the allocation.
func NewTargetAllocation(entries []TargetEntry) (TargetAllocation, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Security.ID()]; ok {
			return TargetAllocation{}, errors.Wrapf(ErrDuplicateSecurity, "security %q", e.Security.ID())
		}
		seen[e.Security.ID()] = struct{}{}
	}

	for _, e := range entries {
		if e.Weight.IsNegative() {
			return TargetAllocation{}, errors.Wrapf(ErrInvalidWeight, "security %q with weight %s", e.Security.ID(), e.Weight.String())
		}
	}

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Weight)
	}
	// exact decimal equality, 99.99 or 100.01 must not pass
	if !sum.Equal(hundred) {
		return TargetAllocation{}, errors.Wrapf(ErrWeightSum, "weights sum to %s", sum.String())
	}

	copied := make([]TargetEntry, len(entries))
	copy(copied, entries)

	return TargetAllocation{entries: copied}, nil
}

// SingleTarget builds an allocation that puts 100% of the portfolio into one
// security. It cannot violate any allocation invariant, so it cannot fail.
func SingleTarget(sec Security) TargetAllocation {
	return TargetAllocation{entries: []TargetEntry{{Weight: hundred, Security: sec}}}
}

// Entries returns a copy of the allocation entries in construction order.
func (a TargetAllocation) Entries() []TargetEntry {
	out := make([]TargetEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len returns the number of target securities.
func (a TargetAllocation) Len() int { return len(a.entries) }
