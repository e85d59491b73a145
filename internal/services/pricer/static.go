package pricer

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrUnknownSecurity is returned when a price is requested for a security
// the pricer has no quote for.
var ErrUnknownSecurity = errors.New("no price for security")

// StaticPricer serves prices from a fixed in-memory table. It is the
// in-process stand-in for a live market-data feed: rebalancing plans are
// computed against one consistent set of quotes, never a stream.
type StaticPricer struct {
	prices map[string]decimal.Decimal
}

// NewStaticPricer creates a pricer over a copy of the given quote table.
// Non-positive quotes are rejected so a static table can never produce a
// security the domain constructors would refuse.
func NewStaticPricer(prices map[string]decimal.Decimal) (*StaticPricer, error) {
	copied := make(map[string]decimal.Decimal, len(prices))
	for id, price := range prices {
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, errors.Errorf("non-positive quote %s for security %q", price.String(), id)
		}
		copied[id] = price
	}

	return &StaticPricer{prices: copied}, nil
}

// Price returns the quoted price for the security.
func (p *StaticPricer) Price(_ context.Context, securityID string) (decimal.Decimal, error) {
	price, ok := p.prices[securityID]
	if !ok {
		return decimal.Decimal{}, errors.Wrapf(ErrUnknownSecurity, "security %q", securityID)
	}
	return price, nil
}

// SecurityIDs returns the identifiers the pricer has quotes for, in lexical order.
func (p *StaticPricer) SecurityIDs() []string {
	ids := make([]string, 0, len(p.prices))
	for id := range p.prices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
