package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/experiment"
)

var (
	// Registry is the dedicated Prometheus registry for the solver
	Registry = prometheus.NewRegistry()

	// Generations counts completed generations
	Generations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tsp_generations_total", Help: "Completed generations."},
	)
	// GenerationCost holds the last generation's average, min and max tour cost
	GenerationCost = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "tsp_generation_cost", Help: "Tour cost of the last generation by statistic."},
		[]string{"stat"},
	)
	// BestCost is the cheapest tour cost seen in the run
	BestCost = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tsp_best_cost", Help: "Cheapest tour cost seen so far."},
	)
	// WorstCost is the costliest tour cost seen in the run
	WorstCost = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "tsp_worst_cost", Help: "Costliest tour cost seen so far."},
	)
	// Mutations counts mutated tours by operator
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tsp_mutations_total", Help: "Mutated tours by operator."},
		[]string{"operator"},
	)
	// Culled counts tours removed by culling
	Culled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tsp_culled_total", Help: "Tours removed by culling."},
	)
	// CullFallbacks counts culling passes that hit the draw bound
	CullFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tsp_cull_fallbacks_total", Help: "Culling passes finished by the costliest-first fallback."},
	)
	// Born counts children produced by crossover
	Born = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tsp_born_total", Help: "Children produced by crossover."},
	)
)

var regOnce sync.Once

// RegisterDefault registers the solver collectors and the Go/process
// collectors on Registry
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Generations, GenerationCost, BestCost, WorstCost)
		Registry.MustRegister(Mutations, Culled, CullFallbacks, Born)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Observe records one generation; use it as an experiment progress callback
func Observe(g experiment.Generation) {
	Generations.Inc()
	GenerationCost.WithLabelValues("avg").Set(g.Average)
	GenerationCost.WithLabelValues("min").Set(g.Min)
	GenerationCost.WithLabelValues("max").Set(g.Max)
	BestCost.Set(g.BestCost)
	WorstCost.Set(g.WorstCost)
	Mutations.WithLabelValues("swap").Add(float64(g.Swaps))
	Mutations.WithLabelValues("mix").Add(float64(g.Mixes))
	Culled.Add(float64(g.Culled))
	Born.Add(float64(g.Born))
	if g.CullFallback {
		CullFallbacks.Inc()
	}
}

// Handler serves Registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
