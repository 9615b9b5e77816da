package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/logger"
)

// UsageSource reports the org's current API quota consumption.
type UsageSource interface {
	APIUsage(ctx context.Context) (domain.APIUsage, error)
}

// DefaultPollInterval is how long a blocked worker waits between
// quota readings.
const DefaultPollInterval = 5 * time.Minute

// Governor provides API-usage backpressure. Before any quota-consuming
// remote call, workers call Wait; when the observed usage percentage is
// at or above the configured maximum, the caller blocks until a
// refreshed reading drops below it.
//
// The reading comes from the remote quota endpoint, not from internal
// counting, since other consumers may share the org's quota. Under
// concurrency the reading is refreshed at most once per poll interval;
// workers losing the refresh race reuse the cached value.
//
// A nil Governor, or one with a zero maximum, is a pass-through.
type Governor struct {
	source     UsageSource
	maxPercent float64
	interval   time.Duration

	mu      sync.Mutex
	refresh *rate.Limiter
	last    domain.APIUsage
	haveOne bool
}

// NewGovernor creates a governor capping usage at maxPercent.
// maxPercent <= 0 disables governing. interval <= 0 selects
// DefaultPollInterval.
func NewGovernor(source UsageSource, maxPercent float64, interval time.Duration) *Governor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Governor{
		source:     source,
		maxPercent: maxPercent,
		interval:   interval,
		refresh:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the observed API usage is below the configured
// maximum. Returns ctx.Err() on cancellation and the reading error
// when the quota endpoint itself fails.
func (g *Governor) Wait(ctx context.Context) error {
	if g == nil || g.maxPercent <= 0 {
		return nil
	}
	for {
		usage, err := g.reading(ctx)
		if err != nil {
			return err
		}
		if usage.Percent() < g.maxPercent {
			return nil
		}
		logger.Warn("API usage %.2f%% >= %.2f%%, pausing for %s",
			usage.Percent(), g.maxPercent, g.interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.interval):
		}
	}
}

// Usage returns the cached reading, refreshing it when the poll
// interval has elapsed. Safe for concurrent use.
func (g *Governor) Usage(ctx context.Context) (domain.APIUsage, error) {
	if g == nil {
		return domain.APIUsage{}, nil
	}
	return g.reading(ctx)
}

func (g *Governor) reading(ctx context.Context) (domain.APIUsage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.refresh.Allow() || !g.haveOne {
		usage, err := g.source.APIUsage(ctx)
		if err != nil {
			return domain.APIUsage{}, err
		}
		g.last = usage
		g.haveOne = true
	}
	return g.last, nil
}
