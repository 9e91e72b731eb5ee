// Package metrics exports lot activity to Prometheus.
//
// Recorder implements lot.Observer and counts Park/Remove outcomes by result
// kind. Collector reads free and total spots per floor at scrape time.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/lotkit/pkg/types"
)

const namespace = "lot"

// Recorder counts Park and Remove outcomes. It is safe for concurrent use.
type Recorder struct {
	parks   *prometheus.CounterVec
	removes *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its counters with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		parks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "park_total",
			Help:      "Park requests by vehicle kind and result.",
		}, []string{"kind", "result"}),
		removes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remove_total",
			Help:      "Remove requests by result.",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{r.parks, r.removes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObservePark implements lot.Observer.
func (r *Recorder) ObservePark(kind types.VehicleKind, err error) {
	label := "invalid"
	if kind.Valid() {
		label = kind.String()
	}
	r.parks.WithLabelValues(label, Result(err)).Inc()
}

// ObserveRemove implements lot.Observer.
func (r *Recorder) ObserveRemove(err error) {
	r.removes.WithLabelValues(Result(err)).Inc()
}

// Result maps an operation error to its metric label: "ok" for nil, the
// error kind for typed errors, "error" otherwise.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := types.KindOf(err); ok {
		return kind.String()
	}
	return "error"
}

// AvailabilitySource is the part of *lot.Lot the Collector reads.
type AvailabilitySource interface {
	Available() []types.FloorAvailability
	Parked() int
}

// Collector reports per-floor free and total spots, plus the number of parked
// vehicles, each time it is scraped.
type Collector struct {
	src       AvailabilitySource
	available *prometheus.Desc
	capacity  *prometheus.Desc
	parked    *prometheus.Desc
}

// NewCollector returns a Collector reading from src.
func NewCollector(src AvailabilitySource) *Collector {
	return &Collector{
		src: src,
		available: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "floor", "available_spots"),
			"Free spots on the floor.",
			[]string{"floor"}, nil,
		),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "floor", "capacity_spots"),
			"Total spots on the floor.",
			[]string{"floor"}, nil,
		),
		parked: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "parked_vehicles"),
			"Vehicles currently holding a placement.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.available
	ch <- c.capacity
	ch <- c.parked
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, fa := range c.src.Available() {
		floor := strconv.Itoa(fa.Floor)
		ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, float64(fa.Available), floor)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(fa.Capacity), floor)
	}
	ch <- prometheus.MustNewConstMetric(c.parked, prometheus.GaugeValue, float64(c.src.Parked()))
}
