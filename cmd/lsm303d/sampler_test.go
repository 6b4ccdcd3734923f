// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
	"github.com/GermanBionicSystems/sensorbus/twowire/twowiretest"
)

const addr = lsm303d.DefaultAddress

func readOps(temp byte) []twowiretest.IO {
	return []twowiretest.IO{
		{Addr: addr, W: []byte{0x85}},
		{Addr: addr, R: []byte{temp, 0x00}},
		{Addr: addr, W: []byte{0x88}},
		{Addr: addr, R: []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00}},
		{Addr: addr, W: []byte{0xA8}},
		{Addr: addr, R: []byte{0xFF, 0xFF, 0xFE, 0xFF, 0xFD, 0xFF}},
	}
}

func TestSampler_limit(t *testing.T) {
	var ops []twowiretest.IO
	ops = append(ops, twowiretest.IO{Addr: addr, W: []byte{0x85}, Status: 2})
	ops = append(ops, readOps(10)...)
	ops = append(ops, readOps(11)...)
	bus := twowiretest.Playback{Ops: ops, On: true}

	var got []lsm303d.Sample
	var errs []error
	s := &sampler{
		dev:      lsm303d.New(&bus, addr, lsm303d.DefaultSpeed, nil),
		interval: time.Millisecond,
		limit:    2,
		onSample: func(smp lsm303d.Sample) { got = append(got, smp) },
		onError:  func(err error) { errs = append(errs, err) },
	}
	if err := s.run(context.Background()); err != nil {
		t.Fatal(err)
	}
	mag := lsm303d.Axes{X: 1, Y: 2, Z: 3}
	acc := lsm303d.Axes{X: -1, Y: -2, Z: -3}
	want := []lsm303d.Sample{{Temp: 10, Mag: mag, Acc: acc}, {Temp: 11, Mag: mag, Acc: acc}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("samples mismatch (-want +got):\n%s", diff)
	}
	if len(errs) != 1 || errs[0] != lsm303d.ErrIORead {
		t.Fatalf("unexpected errors %v", errs)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

type failingReader struct {
	calls int
}

func (f *failingReader) Read(*lsm303d.Sample) error {
	f.calls++
	return lsm303d.ErrIORead
}

func TestSampler_cancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	r := &failingReader{}
	s := &sampler{
		dev:      r,
		interval: time.Millisecond,
		onSample: func(lsm303d.Sample) { t.Error("unexpected sample") },
	}
	if err := s.run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("got %v, expected %v", err, context.DeadlineExceeded)
	}
	if r.calls == 0 {
		t.Fatal("device never read")
	}
	if ignoreCanceled(context.Canceled) != nil {
		t.Fatal("context.Canceled must be ignored")
	}
}
