package domain

import "github.com/pkg/errors"

// Validation errors returned by the domain constructors. Every failure in this
// package happens at construction time; once a value exists it is valid, and
// Rebalance never returns an error.
var (
	// ErrNonPositivePrice is returned when a security is created with a price <= 0.
	ErrNonPositivePrice = errors.New("security price must be positive")
	// ErrDuplicateSecurity is returned when the same identifier appears twice.
	ErrDuplicateSecurity = errors.New("duplicate security identifier")
	// ErrInvalidWeight is returned when a target weight is negative.
	ErrInvalidWeight = errors.New("target weight must not be negative")
	// ErrWeightSum is returned when target weights do not sum to exactly 100.
	ErrWeightSum = errors.New("target weights do not sum to 100")
	// ErrNegativeUnits is returned when a holding is created with negative units.
	ErrNegativeUnits = errors.New("held units must not be negative")
)
