// Package metrics owns the Prometheus registry and the collectors the
// service exports. This is part of the platform layer and contains no
// business logic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "party_phonecountry"

// Collector holds the service's metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	validations    *prometheus.CounterVec
	regionChanges  prometheus.Counter
	reconciled     prometheus.Counter
	renormalized   *prometheus.CounterVec
	warningsRaised *prometheus.CounterVec
}

// New creates a collector with Go runtime and process collectors attached.
func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.validations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phone_validations_total",
			Help:      "Phone validations performed on contact writes, by kind and outcome",
		},
		[]string{"kind", "status", "reason"},
	)
	c.regionChanges = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "phone_region_changes_total",
		Help:      "Committed changes of the default phone region",
	})
	c.reconciled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "phone_region_reconciled_contacts_total",
		Help:      "Contact display values rewritten because the default region changed",
	})
	c.renormalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contacts_renormalized_total",
			Help:      "Contact mechanisms inspected by a renormalization pass",
		},
		[]string{"result"},
	)
	c.warningsRaised = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phone_warnings_total",
			Help:      "Line type warnings, by whether the user had acknowledged them",
		},
		[]string{"acknowledged"},
	)

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.validations,
		c.regionChanges,
		c.reconciled,
		c.renormalized,
		c.warningsRaised,
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// PhoneValidated counts one validation outcome.
func (c *Collector) PhoneValidated(kind, status, reason string) {
	if c == nil {
		return
	}
	c.validations.WithLabelValues(kind, status, reason).Inc()
}

// WarningRaised counts a line type warning.
func (c *Collector) WarningRaised(acknowledged bool) {
	if c == nil {
		return
	}
	label := "false"
	if acknowledged {
		label = "true"
	}
	c.warningsRaised.WithLabelValues(label).Inc()
}

// RegionChanged counts a committed region change and the contacts it rewrote.
func (c *Collector) RegionChanged(updated int) {
	if c == nil {
		return
	}
	c.regionChanges.Inc()
	c.reconciled.Add(float64(updated))
}

// Renormalized counts rows seen by a renormalization pass.
func (c *Collector) Renormalized(updated, unchanged int) {
	if c == nil {
		return
	}
	c.renormalized.WithLabelValues("updated").Add(float64(updated))
	c.renormalized.WithLabelValues("unchanged").Add(float64(unchanged))
}
