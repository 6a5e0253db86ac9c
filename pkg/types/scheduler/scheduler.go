package scheduler

import "time"

type Scheduler interface {
	Start() error
	Stop()
	Interval() time.Duration
}

const (
	IntervalMinute = 1 * time.Minute

	// DefaultPriceRefresh is how often the price feed asks its source for a
	// new quote.
	DefaultPriceRefresh = IntervalMinute
)
