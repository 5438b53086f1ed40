package common

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thejimmylin/f5project/internal/clients/fugle"
)

const subsystem = "orders"

var (
	ordersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f5project",
		Subsystem: subsystem,
		Name:      "total",
		Help:      "Total amount of orders",
	}, []string{"strategy", "stock", "side"})

	orderPrice = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "f5project",
		Subsystem: subsystem,
		Name:      "order_price",
		Help:      "Price of the last placed order",
	}, []string{"strategy", "stock", "side"})
)

func CollectOrder(price float64, strategy string, stock fugle.StockID, side fugle.Side) {
	l := prometheus.Labels{
		"strategy": strategy,
		"stock":    stock.S(),
		"side":     string(side),
	}

	ordersTotal.With(l).Inc()
	orderPrice.With(l).Set(price)
}
