// Package pricer defines where current security prices come from.
// Live market-data feeds are external collaborators that plug in behind the
// Pricer interface; this module only ships an in-memory table implementation.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Pricer provides the current price of a security.
type Pricer interface {
	Price(ctx context.Context, securityID string) (decimal.Decimal, error)
}
