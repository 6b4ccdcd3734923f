// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lsm303d controls an ST LSM303D accelerometer/magnetometer over I²C.
//
// The driver verifies the WHO_AM_I register, writes a fixed configuration
// (accelerometer 12.5 Hz XYZ, magnetometer 12.5 Hz high resolution ±4 gauss,
// continuous conversion) and reads raw counts. It does not convert counts to
// physical units.
//
// The bus is reached through the Wire interface, a transaction model in the
// style of the Arduino Wire library. Package twowire provides an
// implementation on top of a periph.io i2c.Bus.
//
// # Temperature
//
// The temperature field is assembled as ((hi & 0x0F) << 8) | lo. The upper
// nibble of the 16 bit value is zero-filled rather than sign-extended from
// bit 11, so readings that the sensor reports as negative show up as large
// positive values (0x800..0xFFF). It is unclear whether this is the intended
// packing; the value is returned as read.
//
// **Datasheet:** https://www.st.com/resource/en/datasheet/lsm303d.pdf
package lsm303d
