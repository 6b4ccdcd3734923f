// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lsm303d

// Register addresses.
const (
	regWhoAmI  byte = 0x0F
	regCtrl0   byte = 0x1F // CTRL0..CTRL7 are sequential.
	regTempOut byte = 0x05 // TEMP_OUT_L, TEMP_OUT_H
	regMagOut  byte = 0x08 // OUT_X_L_M .. OUT_Z_H_M
	regAccOut  byte = 0x28 // OUT_X_L_A .. OUT_Z_H_A
)

// Burst lengths.
const (
	tempOutReads = 2
	magOutReads  = 6
	accOutReads  = 6
)

const (
	// whoAmIValue is the content of WHO_AM_I on an LSM303D.
	whoAmIValue byte = 0x49

	// autoIncrement makes the device advance its register pointer during a
	// burst read. Only set on the read address select.
	autoIncrement byte = 0x80
)

// ctrlSet is written to CTRL0..CTRL7 on Init.
var ctrlSet = [8]byte{
	0x00, // CTRL0 default
	0x37, // CTRL1 acc: 12.5 Hz, XYZ enabled
	0x00, // CTRL2 default
	0x00, // CTRL3 default
	0x00, // CTRL4 default
	0xE8, // CTRL5 mag: 12.5 Hz, high resolution, temperature enabled
	0x20, // CTRL6 mag full scale ±4 gauss
	0x00, // CTRL7 continuous conversion
}
