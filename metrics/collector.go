package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the matching-engine metrics this module actually emits.
// Trimmed from a much larger exchange-wide collector down to the surface
// this module's keeper touches: order throughput, fill latency, book
// depth, and spread.
type Collector struct {
	OrdersTotal        *prometheus.CounterVec
	OrderLatency       *prometheus.HistogramVec
	MatchingLatency     *prometheus.HistogramVec
	OrderbookDepth      *prometheus.GaugeVec
	SpreadBps           *prometheus.GaugeVec
	TradesTotal         *prometheus.CounterVec
	TradeVolume         *prometheus.CounterVec
	AMMSwapsTotal       *prometheus.CounterVec
}

var (
	collector     *Collector
	collectorOnce sync.Once
)

// GetCollector returns the singleton metrics collector.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{
		OrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hybridpool",
				Subsystem: "orders",
				Name:      "total",
				Help:      "Total number of limit orders placed, by pool and side",
			},
			[]string{"pool_id", "side"},
		),
		OrderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hybridpool",
				Subsystem: "orders",
				Name:      "latency_ms",
				Help:      "Time to place or cancel a resting order",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_id", "op"},
		),
		MatchingLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hybridpool",
				Subsystem: "matching",
				Name:      "latency_ms",
				Help:      "Time spent inside the hybrid matcher per taker order",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_id", "side"},
		),
		OrderbookDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "hybridpool",
				Subsystem: "book",
				Name:      "depth",
				Help:      "Aggregate resting quantity on one side of a pool's book",
			},
			[]string{"pool_id", "side"},
		),
		SpreadBps: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "hybridpool",
				Subsystem: "book",
				Name:      "spread_bps",
				Help:      "Spread in basis points between the best bid and best ask",
			},
			[]string{"pool_id"},
		),
		TradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hybridpool",
				Subsystem: "trades",
				Name:      "total",
				Help:      "Total number of maker fills settled",
			},
			[]string{"pool_id"},
		),
		TradeVolume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hybridpool",
				Subsystem: "trades",
				Name:      "base_volume",
				Help:      "Total base-asset quantity settled against resting book orders (AMM swaps are not counted)",
			},
			[]string{"pool_id"},
		),
		AMMSwapsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hybridpool",
				Subsystem: "amm",
				Name:      "swaps_total",
				Help:      "Total number of AMM legs executed by the hybrid matcher",
			},
			[]string{"pool_id", "side"},
		),
	}
	c.registerAll()
	return c
}

func (c *Collector) registerAll() {
	prometheus.MustRegister(c.OrdersTotal)
	prometheus.MustRegister(c.OrderLatency)
	prometheus.MustRegister(c.MatchingLatency)
	prometheus.MustRegister(c.OrderbookDepth)
	prometheus.MustRegister(c.SpreadBps)
	prometheus.MustRegister(c.TradesTotal)
	prometheus.MustRegister(c.TradeVolume)
	prometheus.MustRegister(c.AMMSwapsTotal)
}

func (c *Collector) RecordOrder(poolID, side string) {
	c.OrdersTotal.WithLabelValues(poolID, side).Inc()
}

func (c *Collector) RecordOrderLatency(poolID, op string, latencyMs float64) {
	c.OrderLatency.WithLabelValues(poolID, op).Observe(latencyMs)
}

func (c *Collector) RecordMatchingLatency(poolID, side string, latencyMs float64) {
	c.MatchingLatency.WithLabelValues(poolID, side).Observe(latencyMs)
}

func (c *Collector) RecordTrade(poolID string, baseVolume float64) {
	c.TradesTotal.WithLabelValues(poolID).Inc()
	c.TradeVolume.WithLabelValues(poolID).Add(baseVolume)
}

func (c *Collector) RecordAMMSwap(poolID, side string) {
	c.AMMSwapsTotal.WithLabelValues(poolID, side).Inc()
}

func (c *Collector) UpdateDepth(poolID string, bidQty, askQty float64) {
	c.OrderbookDepth.WithLabelValues(poolID, "bid").Set(bidQty)
	c.OrderbookDepth.WithLabelValues(poolID, "ask").Set(askQty)
}

func (c *Collector) UpdateSpread(poolID string, spreadBps float64) {
	c.SpreadBps.WithLabelValues(poolID).Set(spreadBps)
}

// Handler exposes the collector's metrics for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures elapsed wall time for a RecordOrderLatency / RecordMatchingLatency call.
type Timer struct{ start time.Time }

func NewTimer() *Timer { return &Timer{start: time.Now()} }

func (t *Timer) ElapsedMs() float64 { return float64(time.Since(t.start).Microseconds()) / 1000.0 }
