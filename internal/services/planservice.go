// Package services wires the pure rebalancing core to its collaborators:
// a price source, structured logging and plan reporting.
package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfold/rebalance/internal/domain"
	"github.com/quantfold/rebalance/internal/services/pricer"
)

const (
	defaultPriceAttempts = 3
	defaultRetryDelay    = 100 * time.Millisecond
)

// TargetWeight is one target entry of a plan request, in caller order.
type TargetWeight struct {
	SecurityID string
	Weight     decimal.Decimal
}

// PlanRequest carries the inputs of one rebalancing pass: the client's current
// integer-unit holdings and the desired percentage split. Prices are resolved
// by the service, not supplied by the caller.
type PlanRequest struct {
	ClientID string
	Holdings map[string]int64
	Targets  []TargetWeight
}

// PlanReport is the outcome of one rebalancing pass. The embedded suggestion
// is exactly what the domain computed; the surrounding fields exist for log
// correlation and for callers that apply or persist the plan elsewhere.
type PlanReport struct {
	ID         string
	ClientID   string
	CreatedAt  time.Time
	Prices     map[string]decimal.Decimal
	TotalValue decimal.Decimal
	Suggestion domain.RebalanceSuggestion
}

// PlanService computes rebalancing plans for client portfolios. It resolves
// current prices through a Pricer, assembles the domain values and runs the
// rebalance computation. It executes nothing and stores nothing.
type PlanService struct {
	logger        *zap.Logger
	pricer        pricer.Pricer
	priceAttempts int
	retryDelay    time.Duration
}

// Option configures a PlanService.
type Option func(*PlanService)

// WithPriceAttempts sets how many times a failing price lookup is tried.
func WithPriceAttempts(n int) Option {
	return func(s *PlanService) {
		if n > 0 {
			s.priceAttempts = n
		}
	}
}

// WithRetryDelay sets the initial delay between price lookup attempts.
// The delay doubles after every failure.
func WithRetryDelay(d time.Duration) Option {
	return func(s *PlanService) {
		if d > 0 {
			s.retryDelay = d
		}
	}
}

// NewPlanService creates a plan service over the given price source.
func NewPlanService(logger *zap.Logger, p pricer.Pricer, opts ...Option) (*PlanService, error) {
	if logger == nil {
		return nil, errors.New("logger must not be nil")
	}
	if p == nil {
		return nil, errors.New("pricer must not be nil")
	}

	s := &PlanService{
		logger:        logger,
		pricer:        p,
		priceAttempts: defaultPriceAttempts,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Plan resolves prices for every security the request mentions, builds the
// portfolio and returns the rebalancing plan. All validation failures are the
// domain's construction errors; the service adds no arithmetic of its own.
func (s *PlanService) Plan(ctx context.Context, req PlanRequest) (*PlanReport, error) {
	prices, err := s.resolvePrices(ctx, req)
	if err != nil {
		return nil, err
	}

	securities := make(map[string]domain.Security, len(prices))
	for id, price := range prices {
		sec, err := domain.NewSecurity(id, price)
		if err != nil {
			return nil, errors.Wrapf(err, "client %s", req.ClientID)
		}
		securities[id] = sec
	}

	entries := make([]domain.TargetEntry, 0, len(req.Targets))
	for _, tw := range req.Targets {
		entries = append(entries, domain.TargetEntry{Weight: tw.Weight, Security: securities[tw.SecurityID]})
	}
	alloc, err := domain.NewTargetAllocation(entries)
	if err != nil {
		return nil, errors.Wrapf(err, "client %s", req.ClientID)
	}

	holdings := make([]domain.Holding, 0, len(req.Holdings))
	for _, id := range sortedHoldingIDs(req.Holdings) {
		holdings = append(holdings, domain.Holding{Security: securities[id], Units: req.Holdings[id]})
	}
	portfolio, err := domain.NewPortfolio(holdings, alloc)
	if err != nil {
		return nil, errors.Wrapf(err, "client %s", req.ClientID)
	}

	suggestion := portfolio.Rebalance()
	report := &PlanReport{
		ID:         uuid.NewString(),
		ClientID:   req.ClientID,
		CreatedAt:  time.Now().UTC(),
		Prices:     prices,
		TotalValue: portfolio.TotalValue(),
		Suggestion: suggestion,
	}

	s.logger.Info("rebalance plan computed",
		zap.String("plan", report.ID),
		zap.String("client", req.ClientID),
		zap.String("total_value", report.TotalValue.String()),
		zap.String("surplus", suggestion.Surplus.String()),
		zap.Int("sells", len(suggestion.ToSell)),
		zap.Int("buys", len(suggestion.ToBuy)))

	return report, nil
}

// resolvePrices fetches one price per security mentioned anywhere in the
// request, so holdings and targets always value a security identically.
func (s *PlanService) resolvePrices(ctx context.Context, req PlanRequest) (map[string]decimal.Decimal, error) {
	ids := make(map[string]struct{}, len(req.Holdings)+len(req.Targets))
	for id := range req.Holdings {
		ids[id] = struct{}{}
	}
	for _, tw := range req.Targets {
		ids[tw.SecurityID] = struct{}{}
	}

	prices := make(map[string]decimal.Decimal, len(ids))
	for id := range ids {
		price, err := s.resolvePrice(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "client %s", req.ClientID)
		}
		prices[id] = price
	}
	return prices, nil
}

func (s *PlanService) resolvePrice(ctx context.Context, securityID string) (decimal.Decimal, error) {
	var lastErr error
	delay := s.retryDelay

	for attempt := 1; attempt <= s.priceAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return decimal.Decimal{}, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		price, err := s.pricer.Price(ctx, securityID)
		if err == nil {
			return price, nil
		}
		lastErr = err

		s.logger.Warn("price lookup failed",
			zap.String("security", securityID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}

	return decimal.Decimal{}, errors.Wrapf(lastErr, "resolving price for %q", securityID)
}

func sortedHoldingIDs(holdings map[string]int64) []string {
	ids := make([]string, 0, len(holdings))
	for id := range holdings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
