// Package metrics exposes simulator activity as Prometheus metrics.
//
// Key metrics:
//   - ticks played
//   - orders by side and status
//   - current portfolio value
//   - current price per asset
package metrics

import (
	"tradesim/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Collector implements engine.Recorder on top of Prometheus collectors.
type Collector struct {
	ticks          prometheus.Counter
	orders         *prometheus.CounterVec
	portfolioValue prometheus.Gauge
	assetPrice     *prometheus.GaugeVec
}

func NewCollector() *Collector {
	return &Collector{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tradesim", Name: "ticks_total", Help: "price ticks played",
		}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradesim", Name: "orders_total", Help: "orders submitted",
		}, []string{"side", "status"}),
		portfolioValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradesim", Name: "portfolio_value", Help: "cash plus market value of holdings",
		}),
		assetPrice: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tradesim", Name: "asset_price", Help: "current asset price",
		}, []string{"asset"}),
	}
}

// Register adds every collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.ticks, c.orders, c.portfolioValue, c.assetPrice} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) ObserveTick(int) {
	c.ticks.Inc()
}

func (c *Collector) ObservePrice(ticker string, price decimal.Decimal) {
	c.assetPrice.WithLabelValues(ticker).Set(price.InexactFloat64())
}

func (c *Collector) ObserveOrder(side types.Side, status types.OrderStatus) {
	c.orders.WithLabelValues(string(side), string(status)).Inc()
}

func (c *Collector) ObservePortfolioValue(total decimal.Decimal) {
	c.portfolioValue.Set(total.InexactFloat64())
}
