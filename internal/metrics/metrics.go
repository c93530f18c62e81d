package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	ApiTotal         *prometheus.CounterVec
	ApiInFlight      *prometheus.GaugeVec
	UpstreamTotal    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	RecordsTotal     *prometheus.CounterVec
	RecordsExpired   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		ApiTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_total_requests",
			Help: "total number of api requests",
		}, []string{"route", "method", "status"}),
		ApiInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "api_in_flight_requests",
			Help: "number of in flight api requests",
		}, []string{"route"}),
		UpstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_total_requests",
			Help: "total number of requests sent to the upstream api",
		}, []string{"operation", "status"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "latency of requests sent to the upstream api",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "correlation_records_total",
			Help: "total number of correlation record transitions",
		}, []string{"flow", "status"}),
		RecordsExpired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "correlation_records_expired_total",
			Help: "total number of correlation records removed by the janitor",
		}, []string{"flow"}),
	}

	metrics.Enable(reg)
	return metrics
}

func (m *Metrics) Enable(reg prometheus.Registerer) {
	reg.MustRegister(m.ApiTotal)
	reg.MustRegister(m.ApiInFlight)
	reg.MustRegister(m.UpstreamTotal)
	reg.MustRegister(m.UpstreamDuration)
	reg.MustRegister(m.RecordsTotal)
	reg.MustRegister(m.RecordsExpired)
}

func (m *Metrics) Disable(reg prometheus.Registerer) {
	reg.Unregister(m.ApiTotal)
	reg.Unregister(m.ApiInFlight)
	reg.Unregister(m.UpstreamTotal)
	reg.Unregister(m.UpstreamDuration)
	reg.Unregister(m.RecordsTotal)
	reg.Unregister(m.RecordsExpired)
}
