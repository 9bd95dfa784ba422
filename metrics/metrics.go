// SPDX-License-Identifier: EPL-2.0

// Package metrics exports encoder session activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ik5/audlame/lame"
)

const namespace = "audlame"

// Operation label values.
const (
	opEncode = "encode"
	opFlush  = "flush"
)

// Collector counts session activity. It implements lame.Observer; pass it to
// lame.WithObserver and register it with a prometheus.Registerer.
type Collector struct {
	calls    *prometheus.CounterVec
	samples  prometheus.Counter
	bytes    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

var _ lame.Observer = (*Collector)(nil)

// NewCollector returns an unregistered Collector. Every series carries the
// given constant labels, for example the engine name.
func NewCollector(constLabels prometheus.Labels) *Collector {
	return &Collector{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "calls_total",
				Help:        "Total number of successful encode and flush calls",
				ConstLabels: constLabels,
			},
			[]string{"op"}, // op: encode, flush
		),
		samples: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "pcm_samples_total",
				Help:        "Total number of PCM samples submitted for encoding",
				ConstLabels: constLabels,
			},
		),
		bytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "mp3_bytes_total",
				Help:        "Total number of MP3 bytes produced",
				ConstLabels: constLabels,
			},
			[]string{"op"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "failures_total",
				Help:        "Total number of failed encode and flush calls",
				ConstLabels: constLabels,
			},
			[]string{"op"},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.calls.Describe(ch)
	c.samples.Describe(ch)
	c.bytes.Describe(ch)
	c.failures.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.calls.Collect(ch)
	c.samples.Collect(ch)
	c.bytes.Collect(ch)
	c.failures.Collect(ch)
}

func (c *Collector) Encoded(samples, bytes int) {
	c.calls.WithLabelValues(opEncode).Inc()
	c.samples.Add(float64(samples))
	c.bytes.WithLabelValues(opEncode).Add(float64(bytes))
}

func (c *Collector) Flushed(bytes int) {
	c.calls.WithLabelValues(opFlush).Inc()
	c.bytes.WithLabelValues(opFlush).Add(float64(bytes))
}

func (c *Collector) Failed(op string, _ error) {
	c.failures.WithLabelValues(op).Inc()
}
