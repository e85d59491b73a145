package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Holding is a currently-held position: a security and a whole number of units.
// Fractional shares are not representable.
type Holding struct {
	Security Security
	Units    int64
}

// Portfolio is the current holdings of a client together with the target
// allocation the client wants to reach. It is read-only during rebalancing;
// Rebalance returns a plan, it does not apply one.
type Portfolio struct {
	holdings   []Holding
	allocation TargetAllocation
}

// NewPortfolio validates holdings and builds a portfolio. Unit counts must be
// non-negative and holding identifiers unique. Holdings need not cover every
// target security, and targets need not cover every held security.
func NewPortfolio(holdings []Holding, allocation TargetAllocation) (Portfolio, error) {
	seen := make(map[string]struct{}, len(holdings))
	for _, h := range holdings {
		if _, ok := seen[h.Security.ID()]; ok {
			return Portfolio{}, errors.Wrapf(ErrDuplicateSecurity, "holding %q", h.Security.ID())
		}
		seen[h.Security.ID()] = struct{}{}

		if h.Units < 0 {
			return Portfolio{}, errors.Wrapf(ErrNegativeUnits, "holding %q with %d units", h.Security.ID(), h.Units)
		}
	}

	copied := make([]Holding, len(holdings))
	copy(copied, holdings)

	return Portfolio{holdings: copied, allocation: allocation}, nil
}

// Holdings returns a copy of the current holdings in construction order.
func (p Portfolio) Holdings() []Holding {
	out := make([]Holding, len(p.holdings))
	copy(out, p.holdings)
	return out
}

// Allocation returns the portfolio's target allocation.
func (p Portfolio) Allocation() TargetAllocation { return p.allocation }

// TotalValue returns the value of all current holdings at current prices.
// This is the entire investable capital of a rebalancing pass.
func (p Portfolio) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.holdings {
		total = total.Add(decimal.NewFromInt(h.Units).Mul(h.Security.Price()))
	}
	return total
}

// Rebalance computes a conservative rebalancing plan: liquidate every current
// holding, then rebuy each target security from the proceeds, never exceeding
// its target share of total value and never buying fractional shares.
//
// It is a total function: every precondition was already enforced when the
// portfolio and its allocation were constructed.
func (p Portfolio) Rebalance() RebalanceSuggestion {
	toSell := make(map[string]int64, len(p.holdings))
	total := decimal.Zero
	for _, h := range p.holdings {
		// a zero-unit position sells nothing; omit it like zero-unit buys
		if h.Units > 0 {
			toSell[h.Security.ID()] = h.Units
		}
		total = total.Add(decimal.NewFromInt(h.Units).Mul(h.Security.Price()))
	}

	toBuy := make(map[string]int64, p.allocation.Len())
	spent := decimal.Zero
	for _, e := range p.allocation.Entries() {
		// targetValue = total * weight / 100; Mul and Shift are exact in base 10
		targetValue := total.Mul(e.Weight).Shift(-2)

		// whole units only: truncating division never overshoots targetValue,
		// which is what keeps the final surplus non-negative
		units, _ := targetValue.QuoRem(e.Security.Price(), 0)
		if !units.IsPositive() {
			continue
		}

		toBuy[e.Security.ID()] = units.IntPart()
		spent = spent.Add(units.Mul(e.Security.Price()))
	}

	return RebalanceSuggestion{
		ToSell:  toSell,
		ToBuy:   toBuy,
		Surplus: total.Sub(spent),
	}
}
