package application

import (
	"strconv"

	"github.com/David-Antunes/upf-flow/internal/topology"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "upf_flow"

// Metrics exposes the animation state. Each simulator owns its registry.
type Metrics struct {
	registry    *prometheus.Registry
	ticks       prometheus.Counter
	mutations   *prometheus.CounterVec
	speed       prometheus.Gauge
	activeLinks prometheus.Gauge
	markers     *prometheus.GaugeVec
	subscribers prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Animation ticks performed.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "mutations_total",
			Help:      "Parameter and selection changes by operation.",
		}, []string{"op"}),
		speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "speed",
			Help:      "Current base animation speed.",
		}),
		activeLinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_links",
			Help:      "Links currently carrying markers.",
		}),
		markers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "live_markers",
			Help:      "Live markers per link.",
		}, []string{"link"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "frame_subscribers",
			Help:      "Open frame subscriptions.",
		}),
	}
	m.registry.MustRegister(m.ticks, m.mutations, m.speed, m.activeLinks, m.markers, m.subscribers)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeTopology(speed float64, links []topology.Link, live map[topology.LinkId]int) {
	m.speed.Set(speed)
	m.activeLinks.Set(float64(len(topology.ActiveLinks(links))))
	m.markers.Reset()
	for id, n := range live {
		m.markers.WithLabelValues(strconv.Itoa(int(id))).Set(float64(n))
	}
}
