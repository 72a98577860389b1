// Package metrics exposes synth counters to Prometheus. Host builds only:
// the firmware reports through the console instead.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"sinedac-go/types"
)

const namespace = "sinedac"

// StatsSource is satisfied by *synth.Service.
type StatsSource interface {
	Stats() types.SynthStats
}

// Collectors builds one collector per counter, each reading src on scrape.
func Collectors(src StatsSource, info types.SynthInfo) []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Timer ticks handled by the oscillator",
		}, func() float64 { return float64(src.Stats().Ticks) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overruns_total",
			Help:      "Ticks whose handler finished after the next deadline",
		}, func() float64 { return float64(src.Stats().Overruns) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_samples_total",
			Help:      "Samples the DAC transport rejected",
		}, func() float64 { return float64(src.Stats().Dropped) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase",
			Help:      "Current phase accumulator (2^32 = one cycle)",
		}, func() float64 { return float64(src.Stats().Phase) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tone_hz",
			Help:      "Generated frequency: increment * sample_hz / 2^32",
			ConstLabels: prometheus.Labels{
				"requested_hz": strconv.FormatUint(uint64(info.ToneHz), 10),
				"sample_hz":    strconv.FormatUint(uint64(info.SampleHz), 10),
				"table_size":   strconv.Itoa(info.TableSize),
			},
		}, func() float64 { return info.ActualHz }),
	}
}

// Register adds the collectors for src to reg.
func Register(reg prometheus.Registerer, src StatsSource, info types.SynthInfo) error {
	for _, c := range Collectors(src, info) {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
