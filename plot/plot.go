// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package plot draws a series of LSM303D samples as a PNG chart.
//
// The chart has three panels sharing the time axis: the temperature field,
// the magnetometer axes and the accelerometer axes. Values are raw counts;
// each panel is scaled to the range of its own data.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

// Opts holds the chart options.
type Opts struct {
	// W and H are the image size in pixels.
	W, H int
	// Face is used for the labels. Default is Go Regular at 12pt.
	Face font.Face
	// Title is drawn above the first panel.
	Title string
}

// DefaultOpts holds the default chart options.
var DefaultOpts = Opts{W: 800, H: 600}

// Axis colors, X, Y then Z.
var axisColors = [3]color.Color{
	color.RGBA{0xd6, 0x27, 0x28, 0xff},
	color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.RGBA{0x1f, 0x77, 0xb4, 0xff},
}

const margin = 40

type panel struct {
	title  string
	series [][]float64
}

// Render writes the chart of samples to w as a PNG. The Opts can be nil.
func Render(w io.Writer, samples []lsm303d.Sample, opts *Opts) error {
	if len(samples) == 0 {
		return errors.New("plot: no samples")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.W <= 2*margin || opts.H <= 6*margin {
		return fmt.Errorf("plot: image %dx%d is too small", opts.W, opts.H)
	}
	face := opts.Face
	if face == nil {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		face = truetype.NewFace(f, &truetype.Options{Size: 12})
	}

	dc := gg.NewContext(opts.W, opts.H)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)

	panels := split(samples)
	top := float64(margin)
	if opts.Title != "" {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(opts.Title, float64(opts.W)/2, float64(margin)/2, 0.5, 0.5)
	}
	h := (float64(opts.H) - top - margin/2) / float64(len(panels))
	for i, p := range panels {
		drawPanel(dc, p, margin, top+float64(i)*h, float64(opts.W)-2*margin, h-margin/2)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

func split(samples []lsm303d.Sample) []panel {
	temp := make([]float64, len(samples))
	mag := [][]float64{make([]float64, len(samples)), make([]float64, len(samples)), make([]float64, len(samples))}
	acc := [][]float64{make([]float64, len(samples)), make([]float64, len(samples)), make([]float64, len(samples))}
	for i, s := range samples {
		temp[i] = float64(s.Temp)
		mag[0][i], mag[1][i], mag[2][i] = float64(s.Mag.X), float64(s.Mag.Y), float64(s.Mag.Z)
		acc[0][i], acc[1][i], acc[2][i] = float64(s.Acc.X), float64(s.Acc.Y), float64(s.Acc.Z)
	}
	return []panel{
		{title: "temperature", series: [][]float64{temp}},
		{title: "magnetometer", series: mag},
		{title: "accelerometer", series: acc},
	}
}

// bounds returns the range of all the series, widened when flat.
func bounds(series [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo == hi {
		lo--
		hi++
	}
	return lo, hi
}

func drawPanel(dc *gg.Context, p panel, x, y, w, h float64) {
	lo, hi := bounds(p.series)

	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.DrawStringAnchored(p.title, x, y-4, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", hi), x-4, y, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", lo), x-4, y+h, 1, 0.5)

	dc.SetLineWidth(1.5)
	for i, s := range p.series {
		dc.SetColor(axisColors[i%len(axisColors)])
		for j, v := range s {
			px := x
			if len(s) > 1 {
				px += w * float64(j) / float64(len(s)-1)
			}
			py := y + h - h*(v-lo)/(hi-lo)
			if j == 0 {
				dc.MoveTo(px, py)
			} else {
				dc.LineTo(px, py)
			}
		}
		if len(s) == 1 {
			dc.DrawPoint(x, y+h-h*(s[0]-lo)/(hi-lo), 2)
			dc.Fill()
			continue
		}
		dc.Stroke()
	}
}
