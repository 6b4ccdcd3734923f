// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
	"github.com/GermanBionicSystems/sensorbus/twowire"
)

func TestOpenDevice_unknownBus(t *testing.T) {
	const name = "lsm303d-no-such-bus"
	cfg := &config{Bus: name, Address: lsm303d.DefaultAddress, Speed: lsm303d.DefaultSpeed}
	w := twowire.Open(name)
	defer w.Close()
	_, err := openDevice(w, cfg)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err == lsm303d.ErrIOCtrl {
		t.Fatal("bus failure reduced to the driver error kind")
	}
	if !strings.Contains(err.Error(), name) {
		t.Fatalf("error %q doesn't name the bus", err)
	}
}
