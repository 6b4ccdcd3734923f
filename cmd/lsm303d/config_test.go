// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

func TestLoadConfig_defaults(t *testing.T) {
	cfg, err := loadConfig("", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := &config{
		Address:  0x1D,
		Speed:    100 * physic.KiloHertz,
		Timeout:  time.Second,
		Interval: 100 * time.Millisecond,
		Samples:  100,
		Output:   "lsm303d.png",
		Listen:   ":9303",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsm303d.toml")
	content := `bus = "1"
address = "0x1e"
speed = "400kHz"
interval = "50ms"
samples = 20
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path, map[string]interface{}{keyInterval: 10 * time.Millisecond, keyDebug: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bus != "1" || cfg.Address != 0x1E || cfg.Speed != 400*physic.KiloHertz || cfg.Samples != 20 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Interval != 10*time.Millisecond || !cfg.Debug {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfig_invalid(t *testing.T) {
	data := []map[string]interface{}{
		{keyAddress: "0x80"},
		{keyAddress: "sensor"},
		{keySpeed: "fast"},
		{keySpeed: "0Hz"},
		{keyInterval: "0s"},
	}
	for _, o := range data {
		if _, err := loadConfig("", o); err == nil {
			t.Errorf("%v: expected an error", o)
		}
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}
