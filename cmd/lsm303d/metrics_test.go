// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg, "LSM303D{addr:0x1d, speed:100kHz}")
	m.observe(lsm303d.Sample{
		Temp: 308,
		Mag:  lsm303d.Axes{X: 16, Y: -256, Z: -32767},
		Acc:  lsm303d.Axes{X: 1, Y: 2, Z: 3},
	})
	m.failed(lsm303d.ErrIORead)
	m.failed(lsm303d.ErrIORead)
	m.failed(errors.New("boom"))

	data := []struct {
		c    prometheus.Collector
		want float64
	}{
		{m.temp, 308},
		{m.mag.WithLabelValues("y"), -256},
		{m.mag.WithLabelValues("z"), -32767},
		{m.acc.WithLabelValues("x"), 1},
		{m.samples, 1},
		{m.errors.WithLabelValues("io_read"), 2},
		{m.errors.WithLabelValues("other"), 1},
	}
	for i, line := range data {
		if got := testutil.ToFloat64(line.c); got != line.want {
			t.Errorf("#%d: got %v, expected %v", i, got, line.want)
		}
	}
}

func TestErrorKind(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range []error{lsm303d.ErrInvalidArgument, lsm303d.ErrIOCtrl, lsm303d.ErrIORead, lsm303d.ErrIOWrite, lsm303d.ErrInvalidSignature, nil} {
		k := errorKind(e)
		if seen[k] {
			t.Fatalf("duplicate kind %q", k)
		}
		seen[k] = true
	}
}
