// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen1d shows LSM303D samples on a terminal line using ANSI color
// codes.
//
// Each sample is drawn as a strip of cells: temperature, then magnetometer
// X/Y/Z, then accelerometer X/Y/Z. Negative axis values are blue, positive
// ones red, and the brightness follows the magnitude. The line is redrawn in
// place on every Show.
package screen1d

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

// Cells is the number of cells in a strip.
const Cells = 7

// Opts represents the options available for this display.
type Opts struct {
	// Width is the number of blocks per cell. Default is 4.
	Width   int
	Palette *ansi256.Palette
	// W is the output. Default is a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a terminal strip showing the last sample.
type Dev struct {
	w       io.Writer
	width   int
	palette ansi256.Palette

	cells [Cells]color.NRGBA
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console. The Opts can be nil.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	width := opts.Width
	if width <= 0 {
		width = 4
	}
	return &Dev{w: w, width: width, palette: *p}
}

func (d *Dev) String() string {
	return "Screen1D"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and ends the line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show redraws the strip with s.
func (d *Dev) Show(s lsm303d.Sample) error {
	d.cells[0] = tempColor(s.Temp)
	for i, v := range []int16{s.Mag.X, s.Mag.Y, s.Mag.Z, s.Acc.X, s.Acc.Y, s.Acc.Z} {
		d.cells[i+1] = axisColor(v)
	}
	return d.refresh(s)
}

func (d *Dev) refresh(s lsm303d.Sample) error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for _, c := range d.cells {
		block := d.palette.Block(c)
		for i := 0; i < d.width; i++ {
			_, _ = io.WriteString(&d.buf, block)
		}
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %s", s)
	_, err := d.buf.WriteTo(d.w)
	return err
}

// axisColor maps a signed axis count to blue (negative) or red (positive).
func axisColor(v int16) color.NRGBA {
	if v < 0 {
		return color.NRGBA{B: intensity(-int32(v)), A: 255}
	}
	return color.NRGBA{R: intensity(int32(v)), A: 255}
}

// tempColor maps the 12 bit temperature field to green.
func tempColor(v int16) color.NRGBA {
	return color.NRGBA{G: byte((uint16(v) & 0x0FFF) >> 4), A: 255}
}

// intensity scales 0..32768 to 0..255.
func intensity(m int32) byte {
	if m >= 32768 {
		return 255
	}
	return byte(m >> 7)
}

var _ conn.Resource = &Dev{}
