package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry holds the counters for the order and payment flow.
type Registry struct {
	OrdersCreated         Counter
	SettlementsVerified   Counter
	SettlementsRejected   Counter
	SettlementsDuplicate  Counter
	GatewayFailures       Counter
	NotificationFailures  Counter
	CartLinesSwept        Counter
	StockReductionsFailed Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot returns the current counter values keyed by metric name.
func (r *Registry) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_created_total":          r.OrdersCreated.Load(),
		"settlements_verified_total":    r.SettlementsVerified.Load(),
		"settlements_rejected_total":    r.SettlementsRejected.Load(),
		"settlements_duplicate_total":   r.SettlementsDuplicate.Load(),
		"gateway_failures_total":        r.GatewayFailures.Load(),
		"notification_failures_total":   r.NotificationFailures.Load(),
		"cart_lines_swept_total":        r.CartLinesSwept.Load(),
		"stock_reductions_failed_total": r.StockReductionsFailed.Load(),
	}
}
