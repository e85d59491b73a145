package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// RebalanceSuggestion is the result of a rebalancing pass: how many units of
// each security to sell and to buy, and the cash left unallocated because
// shares are indivisible. It is a pure value; executing the trades is the
// caller's concern.
type RebalanceSuggestion struct {
	// ToSell maps security identifier to units to sell. Full liquidation:
	// every non-empty holding appears here with its entire unit count.
	ToSell map[string]int64
	// ToBuy maps security identifier to units to buy. Zero-unit buys are
	// omitted rather than recorded as no-op entries.
	ToBuy map[string]int64
	// Surplus is the cash left after all purchases. Never negative.
	Surplus decimal.Decimal
}

// IsNoop reports whether the suggestion contains no trades at all.
func (s RebalanceSuggestion) IsNoop() bool {
	return len(s.ToSell) == 0 && len(s.ToBuy) == 0
}

// SellIDs returns the identifiers to sell in lexical order.
func (s RebalanceSuggestion) SellIDs() []string { return sortedIDs(s.ToSell) }

// BuyIDs returns the identifiers to buy in lexical order.
func (s RebalanceSuggestion) BuyIDs() []string { return sortedIDs(s.ToBuy) }

// String returns a compact human-readable representation.
func (s RebalanceSuggestion) String() string {
	var b strings.Builder
	b.WriteString("sell:")
	for _, id := range s.SellIDs() {
		fmt.Fprintf(&b, " %s=%d", id, s.ToSell[id])
	}
	b.WriteString(" buy:")
	for _, id := range s.BuyIDs() {
		fmt.Fprintf(&b, " %s=%d", id, s.ToBuy[id])
	}
	fmt.Fprintf(&b, " surplus: %s", s.Surplus.String())
	return b.String()
}

func sortedIDs(m map[string]int64) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
