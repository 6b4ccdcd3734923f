// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lsm303d reads an LSM303D accelerometer/magnetometer over I²C.
//
// Commands:
//
//	read   print one sample
//	watch  show samples on a terminal strip
//	plot   record samples into a PNG chart
//	serve  export samples as Prometheus metrics
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
	"github.com/GermanBionicSystems/sensorbus/plot"
	"github.com/GermanBionicSystems/sensorbus/screen1d"
	"github.com/GermanBionicSystems/sensorbus/twowire"
)

func main() {
	app := cli.NewApp()
	app.Name = "lsm303d"
	app.Usage = "read an LSM303D accelerometer/magnetometer over I²C"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load configuration from `FILE`",
		},
		cli.StringFlag{Name: keyBus, Usage: "I²C bus name, empty for the first one"},
		cli.StringFlag{Name: keyAddress, Usage: "device address (0x1d or 0x1e)"},
		cli.StringFlag{Name: keySpeed, Usage: "bus clock, e.g. 400kHz"},
		cli.DurationFlag{Name: keyTimeout, Usage: "bound on each register read, 0 waits forever"},
		cli.DurationFlag{Name: keyInterval, Usage: "time between samples"},
		cli.BoolFlag{Name: keyDebug, Usage: "trace bus transactions"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "read",
			Usage:  "print one sample",
			Action: withDevice(readCmd),
		},
		{
			Name:   "watch",
			Usage:  "show samples on a terminal strip",
			Action: withDevice(watchCmd),
		},
		{
			Name:  "plot",
			Usage: "record samples into a PNG chart",
			Flags: []cli.Flag{
				cli.IntFlag{Name: keySamples, Usage: "number of samples to record"},
				cli.StringFlag{Name: keyOutput + ", o", Usage: "PNG `FILE` to write"},
			},
			Action: withDevice(plotCmd),
		},
		{
			Name:  "serve",
			Usage: "export samples as Prometheus metrics",
			Flags: []cli.Flag{
				cli.StringFlag{Name: keyListen, Usage: "metrics listen address"},
			},
			Action: withDevice(serveCmd),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type deviceAction func(ctx context.Context, cfg *config, d *lsm303d.Dev) error

// withDevice loads the configuration, opens and initializes the device and
// runs fn until it returns or the process is interrupted.
func withDevice(fn deviceAction) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c.GlobalString("config"), flagOverrides(c))
		if err != nil {
			return err
		}
		log.SetFormatter(&log.TextFormatter{DisableColors: true})
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}

		w := twowire.Open(cfg.Bus)
		defer w.Close()
		if cfg.Debug {
			w.EnableDebug(log.Debugf)
		}
		d, err := openDevice(w, cfg)
		if err != nil {
			return err
		}
		log.WithField("device", d.String()).Debug("initialized")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return fn(ctx, cfg, d)
	}
}

// openDevice enables w and initializes the sensor on it. The bus is opened
// here rather than by Init so a failure keeps the bus name and cause.
func openDevice(w *twowire.Bus, cfg *config) (*lsm303d.Dev, error) {
	if err := w.Begin(); err != nil {
		return nil, errors.Wrapf(err, "opening I²C bus %q", cfg.Bus)
	}
	d := lsm303d.New(w, cfg.Address, cfg.Speed, &lsm303d.Opts{ReadTimeout: cfg.Timeout})
	if err := d.Init(); err != nil {
		return nil, errors.Wrapf(err, "initializing %s on %s", d, w)
	}
	return d, nil
}

// flagOverrides returns the flags explicitly set on the command line.
func flagOverrides(c *cli.Context) map[string]interface{} {
	o := map[string]interface{}{}
	for _, k := range []string{keyBus, keyAddress, keySpeed} {
		if c.GlobalIsSet(k) {
			o[k] = c.GlobalString(k)
		}
	}
	for _, k := range []string{keyTimeout, keyInterval} {
		if c.GlobalIsSet(k) {
			o[k] = c.GlobalDuration(k)
		}
	}
	if c.GlobalIsSet(keyDebug) {
		o[keyDebug] = c.GlobalBool(keyDebug)
	}
	if c.IsSet(keySamples) {
		o[keySamples] = c.Int(keySamples)
	}
	for _, k := range []string{keyOutput, keyListen} {
		if c.IsSet(k) {
			o[k] = c.String(k)
		}
	}
	return o
}

func logError(err error) {
	log.WithError(err).Warn("read failed")
}

func readCmd(ctx context.Context, cfg *config, d *lsm303d.Dev) error {
	var s lsm303d.Sample
	if err := d.Read(&s); err != nil {
		return errors.Wrap(err, "reading sample")
	}
	fmt.Println(s)
	return nil
}

func watchCmd(ctx context.Context, cfg *config, d *lsm303d.Dev) error {
	screen := screen1d.New(nil)
	defer screen.Halt()
	s := &sampler{
		dev:      d,
		interval: cfg.Interval,
		onSample: func(smp lsm303d.Sample) {
			if err := screen.Show(smp); err != nil {
				log.WithError(err).Warn("display failed")
			}
		},
		onError: logError,
	}
	return ignoreCanceled(s.run(ctx))
}

func plotCmd(ctx context.Context, cfg *config, d *lsm303d.Dev) error {
	if cfg.Samples <= 0 {
		return errors.Errorf("invalid %s %d", keySamples, cfg.Samples)
	}
	samples := make([]lsm303d.Sample, 0, cfg.Samples)
	s := &sampler{
		dev:      d,
		interval: cfg.Interval,
		limit:    cfg.Samples,
		onSample: func(smp lsm303d.Sample) { samples = append(samples, smp) },
		onError:  logError,
	}
	log.WithField("samples", cfg.Samples).Info("recording")
	if err := ignoreCanceled(s.run(ctx)); err != nil {
		return err
	}
	if len(samples) == 0 {
		return errors.New("no sample recorded")
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return errors.Wrap(err, "creating chart")
	}
	opts := plot.DefaultOpts
	opts.Title = fmt.Sprintf("%s, %d samples every %s", d, len(samples), cfg.Interval)
	if err := plot.Render(f, samples, &opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "writing chart")
	}
	log.WithField("file", cfg.Output).Info("chart written")
	return nil
}

func serveCmd(ctx context.Context, cfg *config, d *lsm303d.Dev) error {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg, d.String())
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.Listen, Handler: mux}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		log.WithField("listen", cfg.Listen).Info("serving metrics")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errc <- err
			cancel()
		}
	}()

	s := &sampler{
		dev:      d,
		interval: cfg.Interval,
		onSample: m.observe,
		onError: func(err error) {
			m.failed(err)
			logError(err)
		},
	}
	runErr := ignoreCanceled(s.run(ctx))
	if err := srv.Shutdown(context.Background()); err != nil {
		return errors.Wrap(err, "stopping metrics server")
	}
	if err := <-errc; err != nil {
		return errors.Wrap(err, "metrics server")
	}
	return runErr
}

func ignoreCanceled(err error) error {
	if err == context.Canceled {
		return nil
	}
	return err
}
