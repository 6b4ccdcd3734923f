// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

func TestRender(t *testing.T) {
	samples := []lsm303d.Sample{
		{Temp: 300, Mag: lsm303d.Axes{X: 16, Y: -256, Z: -32767}, Acc: lsm303d.Axes{X: 0, Y: 0, Z: 16384}},
		{Temp: 310, Mag: lsm303d.Axes{X: 20, Y: -250, Z: -32000}, Acc: lsm303d.Axes{X: 12, Y: -8, Z: 16300}},
		{Temp: 305, Mag: lsm303d.Axes{X: 18, Y: -240, Z: -31000}, Acc: lsm303d.Axes{X: -3, Y: 4, Z: 16420}},
	}
	for _, s := range [][]lsm303d.Sample{samples, samples[:1]} {
		var buf bytes.Buffer
		if err := Render(&buf, s, &Opts{W: 320, H: 480, Title: "test"}); err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 480 {
			t.Fatalf("unexpected size %s", b)
		}
	}
}

func TestRender_errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, nil); err == nil {
		t.Fatal("expected an error for an empty series")
	}
	if err := Render(&buf, []lsm303d.Sample{{}}, &Opts{W: 10, H: 10}); err == nil {
		t.Fatal("expected an error for a tiny image")
	}
	if buf.Len() != 0 {
		t.Fatal("output written on error")
	}
}

func TestBounds(t *testing.T) {
	lo, hi := bounds([][]float64{{3, 3}, {3}})
	if lo != 2 || hi != 4 {
		t.Fatalf("flat series: got [%v, %v]", lo, hi)
	}
	lo, hi = bounds([][]float64{{-5, 1}, {7}})
	if lo != -5 || hi != 7 {
		t.Fatalf("got [%v, %v]", lo, hi)
	}
}
