// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen1d

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

func TestDev_Show(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{Width: 2, W: &buf})
	s := lsm303d.Sample{
		Temp: 0x0FFF,
		Mag:  lsm303d.Axes{X: 32767, Y: -32768, Z: 0},
		Acc:  lsm303d.Axes{X: -256, Y: 256, Z: 1},
	}
	if err := d.Show(s); err != nil {
		t.Fatal(err)
	}
	var want strings.Builder
	want.WriteString("\r\033[0m")
	for _, c := range []color.NRGBA{
		{G: 255, A: 255},
		{R: 255, A: 255},
		{B: 255, A: 255},
		{A: 255},
		{B: 2, A: 255},
		{R: 2, A: 255},
		{A: 255},
	} {
		b := ansi256.Default.Block(c)
		want.WriteString(b + b)
	}
	want.WriteString("\033[0m " + s.String())
	if got := buf.String(); got != want.String() {
		t.Fatalf("got %q\nexpected %q", got, want.String())
	}
}

func TestDev_Halt(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: &buf})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\n\033[0m" {
		t.Fatalf("got %q", buf.String())
	}
	if d.String() != "Screen1D" {
		t.Fatal(d.String())
	}
}
