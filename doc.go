// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensorbus is a container for the LSM303D driver and the tooling
// around it.
//
// lsm303d holds the register protocol, twowire the I²C transport it runs on,
// screen1d and plot render samples, and cmd/lsm303d ties them together.
package sensorbus
