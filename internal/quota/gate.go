// Package quota enforces the monthly request ceiling. The billing period is
// the calendar month, keyed by its first day in UTC.
package quota

import (
	"context"
	"errors"
	"time"
)

var ErrExceeded = errors.New("limite de requisições atingido para este mês")

// Consumer is the single store operation the gate needs. The implementation
// must make the read-check-increment atomic per user.
type Consumer interface {
	ConsumeQuota(ctx context.Context, email string, period time.Time, limit int) (int, bool, error)
}

type Gate struct {
	store Consumer
	limit int
	now   func() time.Time
}

func NewGate(store Consumer, limit int) *Gate {
	return &Gate{
		store: store,
		limit: limit,
		now:   time.Now,
	}
}

// PeriodStart returns the first day of t's month, at midnight UTC.
func PeriodStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Consume charges one request slot for the identity, returning the counter
// after the charge. ErrExceeded means nothing was mutated.
func (g *Gate) Consume(ctx context.Context, email string) (int, error) {
	if g.limit <= 0 {
		// with a zero ceiling the rollover branch of the UPDATE would still
		// admit one call per month, so short-circuit here
		return 0, ErrExceeded
	}

	count, ok, err := g.store.ConsumeQuota(ctx, email, PeriodStart(g.now()), g.limit)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrExceeded
	}

	return count, nil
}

func (g *Gate) Limit() int {
	return g.limit
}
