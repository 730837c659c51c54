// Package metrics exports stream and bin buffer statistics to Prometheus.
package metrics

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/spreadbuf/errs"
	"github.com/arloliu/spreadbuf/stream"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultNamespace prefixes every metric name unless NewCollector is given
// another namespace.
const DefaultNamespace = "spreadbuf"

// StatsSource is anything that reports stream statistics, such as
// *stream.Stream and *bin.Buffer.
type StatsSource interface {
	Stats() stream.Stats
}

// cloneSource is implemented by bin buffers.
type cloneSource interface {
	Clones() uint64
}

// Collector is a prometheus.Collector reading the statistics of registered
// sources on every scrape. Each source is exported with a "stream" label
// holding its registration name.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]StatsSource
	logger  *zap.Logger

	length        *prometheus.Desc
	capacity      *prometheus.Desc
	generation    *prometheus.Desc
	reallocations *prometheus.Desc
	populated     *prometheus.Desc
	trims         *prometheus.Desc
	clones        *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector. An empty namespace selects
// DefaultNamespace; a nil logger disables logging.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	desc := func(subsystem, name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, []string{"stream"}, nil)
	}

	return &Collector{
		sources:       make(map[string]StatsSource),
		logger:        logger.With(zap.String("component", "metrics")),
		length:        desc("stream", "length", "Logical slice count of the stream."),
		capacity:      desc("stream", "capacity", "Allocated backing slots of the stream."),
		generation:    desc("stream", "generation", "View generation of the stream."),
		reallocations: desc("stream", "reallocations_total", "Backing storage reallocations of the stream."),
		populated:     desc("stream", "populated_slots_total", "Slots populated by the growth hook of the stream."),
		trims:         desc("stream", "trims_total", "Trim calls that released backing storage."),
		clones:        desc("bin", "clones_total", "Inner spreads cloned while growing a bin buffer."),
	}
}

// Register adds src under name. Names must be unique.
func (c *Collector) Register(name string, src StatsSource) error {
	if src == nil {
		return fmt.Errorf("%w: nil stats source %q", errs.ErrInvalidArgument, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sources[name]; ok {
		return fmt.Errorf("%w: stats source %q already registered", errs.ErrInvalidArgument, name)
	}
	c.sources[name] = src
	c.logger.Debug("stats source registered", zap.String("stream", name))

	return nil
}

// Unregister removes the source registered under name and reports whether it
// existed.
func (c *Collector) Unregister(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sources[name]; !ok {
		return false
	}
	delete(c.sources, name)
	c.logger.Debug("stats source unregistered", zap.String("stream", name))

	return true
}

// Names returns the registered source names in sorted order.
func (c *Collector) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.capacity
	ch <- c.generation
	ch <- c.reallocations
	ch <- c.populated
	ch <- c.trims
	ch <- c.clones
}

// Collect implements prometheus.Collector.
//
// Sources are read without synchronization; streams are single-writer, so
// scrapes should not overlap a resize of a registered source.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, src := range c.sources {
		s := src.Stats()

		ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(s.Length), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.generation, prometheus.GaugeValue, float64(s.Generation), name)
		ch <- prometheus.MustNewConstMetric(c.reallocations, prometheus.CounterValue, float64(s.Reallocations), name)
		ch <- prometheus.MustNewConstMetric(c.populated, prometheus.CounterValue, float64(s.PopulatedSlots), name)
		ch <- prometheus.MustNewConstMetric(c.trims, prometheus.CounterValue, float64(s.Trims), name)

		if cs, ok := src.(cloneSource); ok {
			ch <- prometheus.MustNewConstMetric(c.clones, prometheus.CounterValue, float64(cs.Clones()), name)
		}
	}
}
