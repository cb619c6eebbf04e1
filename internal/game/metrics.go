package game

import "github.com/prometheus/client_golang/prometheus"

var metricResourcesMined = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "blockverse",
	Name:      "resources_mined_total",
	Help:      "Добытые ресурсы по типам.",
}, []string{"resource"})

func init() {
	prometheus.MustRegister(metricResourcesMined)
}
