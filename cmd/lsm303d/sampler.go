// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

type reader interface {
	Read(s *lsm303d.Sample) error
}

// sampler polls a device at a fixed interval. The driver doesn't retry, a
// failed read is reported to onError and the next tick tries again.
type sampler struct {
	dev      reader
	interval time.Duration
	// limit stops the sampler after that many samples. 0 means run until
	// the context is done.
	limit    int
	onSample func(lsm303d.Sample)
	onError  func(error)
}

func (s *sampler) run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var smp lsm303d.Sample
		if err := s.dev.Read(&smp); err != nil {
			if s.onError != nil {
				s.onError(err)
			}
		} else {
			s.onSample(smp)
			if n++; s.limit > 0 && n >= s.limit {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
