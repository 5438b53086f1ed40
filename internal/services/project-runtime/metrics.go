package projectruntime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const subsystem = "runtime"

type l = prometheus.Labels

var (
	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f5project",
		Subsystem: subsystem,
		Name:      "logins_total",
		Help:      "Service login attempts",
	}, []string{"service", "status"})

	invocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "f5project",
		Subsystem: subsystem,
		Name:      "endpoint_invocations_total",
		Help:      "Endpoint invocations",
	}, []string{"endpoint", "mode", "status"})
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
