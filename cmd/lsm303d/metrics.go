// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

type metrics struct {
	temp    prometheus.Gauge
	mag     *prometheus.GaugeVec
	acc     *prometheus.GaugeVec
	samples prometheus.Counter
	errors  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, device string) *metrics {
	labels := prometheus.Labels{"device": device}
	m := &metrics{
		temp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "lsm303d_temperature_counts",
			Help:        "Raw 12 bit temperature field.",
			ConstLabels: labels,
		}),
		mag: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "lsm303d_magnetometer_counts",
			Help:        "Raw magnetometer reading per axis.",
			ConstLabels: labels,
		}, []string{"axis"}),
		acc: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "lsm303d_accelerometer_counts",
			Help:        "Raw accelerometer reading per axis.",
			ConstLabels: labels,
		}, []string{"axis"}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "lsm303d_samples_total",
			Help:        "Successful reads.",
			ConstLabels: labels,
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "lsm303d_read_errors_total",
			Help:        "Failed reads by error kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
	}
	reg.MustRegister(m.temp, m.mag, m.acc, m.samples, m.errors)
	return m
}

func (m *metrics) observe(s lsm303d.Sample) {
	m.temp.Set(float64(s.Temp))
	setAxes(m.mag, s.Mag)
	setAxes(m.acc, s.Acc)
	m.samples.Inc()
}

func (m *metrics) failed(err error) {
	m.errors.WithLabelValues(errorKind(err)).Inc()
}

func setAxes(g *prometheus.GaugeVec, a lsm303d.Axes) {
	g.WithLabelValues("x").Set(float64(a.X))
	g.WithLabelValues("y").Set(float64(a.Y))
	g.WithLabelValues("z").Set(float64(a.Z))
}

// errorKind returns a label value for err.
func errorKind(err error) string {
	switch err {
	case lsm303d.ErrInvalidArgument:
		return "invalid_argument"
	case lsm303d.ErrIOCtrl:
		return "io_ctrl"
	case lsm303d.ErrIORead:
		return "io_read"
	case lsm303d.ErrIOWrite:
		return "io_write"
	case lsm303d.ErrInvalidSignature:
		return "invalid_signature"
	default:
		return "other"
	}
}
