package evolve

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors of a driver.
type Metrics struct {
	Generations prometheus.Counter
	Genotypes   prometheus.Counter
	Restarts    prometheus.Counter
	BestScore   prometheus.Gauge
	BestLength  prometheus.Gauge
}

// NewMetrics registers the collectors of a search of the named problem
// with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer, name string) (m *Metrics, err error) {
	labels := prometheus.Labels{"problem": name}

	m = &Metrics{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "genx",
			Name:        "generations_total",
			Help:        "Generations scored.",
			ConstLabels: labels,
		}),
		Genotypes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "genx",
			Name:        "genotypes_total",
			Help:        "Genotypes scored.",
			ConstLabels: labels,
		}),
		Restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "genx",
			Name:        "restarts_total",
			Help:        "Populations discarded after a deadend.",
			ConstLabels: labels,
		}),
		BestScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "genx",
			Name:        "best_score",
			Help:        "Score of the best genotype so far.",
			ConstLabels: labels,
		}),
		BestLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "genx",
			Name:        "best_length",
			Help:        "Records in the best genotype so far.",
			ConstLabels: labels,
		}),
	}

	if reg == nil {
		return
	}

	for _, c := range []prometheus.Collector{m.Generations, m.Genotypes, m.Restarts, m.BestScore, m.BestLength} {
		err = reg.Register(c)
		if err != nil {
			m = nil
			return
		}
	}

	return
}
