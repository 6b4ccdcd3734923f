// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/sensorbus/lsm303d"
)

// Configuration keys. They double as flag names.
const (
	keyBus      = "bus"
	keyAddress  = "address"
	keySpeed    = "speed"
	keyTimeout  = "timeout"
	keyInterval = "interval"
	keySamples  = "samples"
	keyOutput   = "output"
	keyListen   = "listen"
	keyDebug    = "debug"
)

type config struct {
	Bus      string
	Address  uint16
	Speed    physic.Frequency
	Timeout  time.Duration
	Interval time.Duration
	Samples  int
	Output   string
	Listen   string
	Debug    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyBus, "")
	v.SetDefault(keyAddress, strconv.Itoa(int(lsm303d.DefaultAddress)))
	v.SetDefault(keySpeed, lsm303d.DefaultSpeed.String())
	v.SetDefault(keyTimeout, "1s")
	v.SetDefault(keyInterval, "100ms")
	v.SetDefault(keySamples, 100)
	v.SetDefault(keyOutput, "lsm303d.png")
	v.SetDefault(keyListen, ":9303")
	v.SetDefault(keyDebug, false)
}

// loadConfig resolves the configuration from, in increasing priority, the
// defaults, the optional file at path, LSM303D_* environment variables and
// overrides.
func loadConfig(path string, overrides map[string]interface{}) (*config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("lsm303d")
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := &config{
		Bus:      v.GetString(keyBus),
		Timeout:  v.GetDuration(keyTimeout),
		Interval: v.GetDuration(keyInterval),
		Samples:  v.GetInt(keySamples),
		Output:   v.GetString(keyOutput),
		Listen:   v.GetString(keyListen),
		Debug:    v.GetBool(keyDebug),
	}
	addr, err := strconv.ParseUint(v.GetString(keyAddress), 0, 7)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s %q", keyAddress, v.GetString(keyAddress))
	}
	cfg.Address = uint16(addr)
	if err := cfg.Speed.Set(v.GetString(keySpeed)); err != nil {
		return nil, errors.Wrapf(err, "invalid %s %q", keySpeed, v.GetString(keySpeed))
	}
	if cfg.Speed <= 0 {
		return nil, errors.Errorf("invalid %s %s", keySpeed, cfg.Speed)
	}
	if cfg.Interval <= 0 {
		return nil, errors.Errorf("invalid %s %s", keyInterval, cfg.Interval)
	}
	return cfg, nil
}
