// Package domain holds the portfolio rebalancing core: securities, target
// allocations, portfolios and the conservative rebalance computation.
// All monetary arithmetic uses decimal values; binary floating point never
// enters the computation.
package domain

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Security is an identifiable tradable asset with its current price.
type Security struct {
	id    string
	price decimal.Decimal
}

// NewSecurity creates a validated security. The price must be strictly
// positive. Identifiers are case-sensitive and compared for exact equality.
func NewSecurity(id string, price decimal.Decimal) (Security, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return Security{}, errors.Wrapf(ErrNonPositivePrice, "security %q with price %s", id, price.String())
	}

	return Security{id: id, price: price}, nil
}

// ID returns the security identifier.
func (s Security) ID() string { return s.id }

// Price returns the current price.
func (s Security) Price() decimal.Decimal { return s.price }

// String returns a human-readable string representation.
func (s Security) String() string {
	return fmt.Sprintf("%s@%s", s.id, s.price.String())
}
