package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures telemetry events emitted by the editor core.
//
// Implementations may forward metrics to Prometheus, loggers or other
// monitoring systems. They should be inexpensive to call because hooks are
// executed inline with critical paths such as tree builds and
// renormalization passes.
type Collector interface {
	IncTreeBuild(category string)
	IncBindingMiss(category string, count int)
	IncNormalization()
	IncExportRender(file string)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncTreeBuild(string)        {}
func (noopCollector) IncBindingMiss(string, int) {}
func (noopCollector) IncNormalization()          {}
func (noopCollector) IncExportRender(string)     {}

// PrometheusCollector exposes telemetry counters via Prometheus.
type PrometheusCollector struct {
	treeBuilds     *prometheus.CounterVec
	bindingMisses  *prometheus.CounterVec
	normalizations prometheus.Counter
	exportRenders  *prometheus.CounterVec
}

var (
	registryLock        sync.Mutex
	treeBuildCounter    *prometheus.CounterVec
	bindingMissCounter  *prometheus.CounterVec
	normalizationTotal  prometheus.Counter
	exportRenderCounter *prometheus.CounterVec
)

// NewPrometheusCollector registers the required metrics with the provided
// registerer. Registering twice against the same registerer reuses the
// already-registered collectors.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	registryLock.Lock()
	defer registryLock.Unlock()

	if treeBuildCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hyperedit_tree_build_total",
			Help: "Number of configuration tree builds per category.",
		}, []string{"category"})
		registered, err := registerCounterVec(reg, counter)
		if err != nil {
			return nil, err
		}
		treeBuildCounter = registered
	}

	if bindingMissCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hyperedit_binding_miss_total",
			Help: "Number of conf-map entries that did not bind to exactly one tree node.",
		}, []string{"category"})
		registered, err := registerCounterVec(reg, counter)
		if err != nil {
			return nil, err
		}
		bindingMissCounter = registered
	}

	if normalizationTotal == nil {
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hyperedit_normalization_total",
			Help: "Number of measurement normalization passes.",
		})
		if err := reg.Register(counter); err != nil {
			already, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			existing, ok := already.ExistingCollector.(prometheus.Counter)
			if !ok {
				return nil, err
			}
			counter = existing
		}
		normalizationTotal = counter
	}

	if exportRenderCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hyperedit_export_render_total",
			Help: "Number of derived-artifact renders per file name.",
		}, []string{"file"})
		registered, err := registerCounterVec(reg, counter)
		if err != nil {
			return nil, err
		}
		exportRenderCounter = registered
	}

	return &PrometheusCollector{
		treeBuilds:     treeBuildCounter,
		bindingMisses:  bindingMissCounter,
		normalizations: normalizationTotal,
		exportRenders:  exportRenderCounter,
	}, nil
}

func registerCounterVec(reg prometheus.Registerer, counter *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(counter); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		return existing, nil
	}
	return counter, nil
}

// IncTreeBuild increments the build counter for the category.
func (p *PrometheusCollector) IncTreeBuild(category string) {
	if p == nil || p.treeBuilds == nil {
		return
	}
	p.treeBuilds.WithLabelValues(category).Inc()
}

// IncBindingMiss records conf-map binding misses for the category.
func (p *PrometheusCollector) IncBindingMiss(category string, count int) {
	if p == nil || p.bindingMisses == nil || count == 0 {
		return
	}
	p.bindingMisses.WithLabelValues(category).Add(float64(count))
}

// IncNormalization increments the normalization pass counter.
func (p *PrometheusCollector) IncNormalization() {
	if p == nil || p.normalizations == nil {
		return
	}
	p.normalizations.Inc()
}

// IncExportRender increments the render counter for the derived file.
func (p *PrometheusCollector) IncExportRender(file string) {
	if p == nil || p.exportRenders == nil {
		return
	}
	p.exportRenders.WithLabelValues(file).Inc()
}
