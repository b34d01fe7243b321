package metrics

import "github.com/prometheus/client_golang/prometheus"

// DeliveryMetrics exposes counters/histograms for lead intake and fan-out.
type DeliveryMetrics struct {
	leadsTotal     *prometheus.CounterVec
	channelTotal   *prometheus.CounterVec
	channelLatency *prometheus.HistogramVec
}

func NewDeliveryMetrics(reg prometheus.Registerer) *DeliveryMetrics {
	m := &DeliveryMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "awn",
			Subsystem: "intake",
			Name:      "leads_total",
			Help:      "Total lead submissions by outcome",
		}, []string{"outcome"}),
		channelTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "awn",
			Subsystem: "delivery",
			Name:      "channel_total",
			Help:      "Total channel delivery attempts by status",
		}, []string{"channel", "status"}),
		channelLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "awn",
			Subsystem: "delivery",
			Name:      "channel_latency_seconds",
			Help:      "Latency of channel delivery calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.channelTotal, m.channelLatency)
	return m
}

func (m *DeliveryMetrics) ObserveLead(outcome string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(outcome).Inc()
}

func (m *DeliveryMetrics) ObserveChannel(channel, status string) {
	if m == nil {
		return
	}
	m.channelTotal.WithLabelValues(channel, status).Inc()
}

func (m *DeliveryMetrics) ObserveChannelLatency(channel string, seconds float64) {
	if m == nil {
		return
	}
	m.channelLatency.WithLabelValues(channel).Observe(seconds)
}
