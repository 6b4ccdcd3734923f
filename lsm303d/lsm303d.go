// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lsm303d

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/sensorbus/twowire"
)

const (
	// DefaultAddress is the I²C address with SA0 pulled high.
	DefaultAddress uint16 = 0x1D
	// AltAddress is the I²C address with SA0 pulled low.
	AltAddress uint16 = 0x1E

	// DefaultSpeed is the I²C standard mode clock.
	DefaultSpeed = 100 * physic.KiloHertz
)

// Wire is the bus transport used by Dev.
//
// It follows the transaction model of the Arduino Wire library: a write is
// queued between BeginTransmission and EndTransmission, a read is requested
// with RequestFrom and drained byte by byte. The transport is shared and is
// expected to serialize transactions itself.
type Wire interface {
	// Begin enables the transport.
	Begin() error
	// Enabled reports whether Begin already succeeded.
	Enabled() bool
	// SetSpeed sets the clock of the following transactions.
	SetSpeed(f physic.Frequency) error
	// BeginTransmission starts queuing a write to addr.
	BeginTransmission(addr uint16)
	// WriteByte queues one byte in the pending transmission.
	WriteByte(c byte) error
	// EndTransmission sends the pending transmission. It returns 0 on
	// success.
	EndTransmission() byte
	// RequestFrom reads n bytes from addr into the receive buffer and
	// returns the number of bytes received.
	RequestFrom(addr uint16, n int) int
	// Available returns the number of bytes left in the receive buffer.
	Available() int
	// ReadByte consumes one byte from the receive buffer.
	ReadByte() (byte, error)
}

// Opts holds the configuration options for the device.
type Opts struct {
	// ReadTimeout bounds the wait for the requested bytes of a register read.
	// 0 means no timeout: the read polls until the bytes show up, which
	// stalls forever on a bus that never delivers them. Through twowire a
	// NACKed or failed read delivers no byte at all, so callers of NewI2C
	// should set a timeout.
	ReadTimeout time.Duration
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{}

// Axes is a raw 3-axis reading.
type Axes struct {
	X, Y, Z int16
}

func (a Axes) String() string {
	return fmt.Sprintf("{X:%d Y:%d Z:%d}", a.X, a.Y, a.Z)
}

// Sample is one snapshot of the sensor output registers, in raw counts.
type Sample struct {
	// Temp is the 12 bit temperature field. See the package documentation.
	Temp int16
	// Mag is the magnetometer reading.
	Mag Axes
	// Acc is the accelerometer reading.
	Acc Axes
}

func (s Sample) String() string {
	return fmt.Sprintf("temp=%d mag=%s acc=%s", s.Temp, s.Mag, s.Acc)
}

// Dev is a handle to an LSM303D.
//
// It holds no state besides its address and speed. Callers must call Init
// before Read; the order is not checked.
type Dev struct {
	w     Wire
	addr  uint16
	speed physic.Frequency
	opts  Opts
}

// New returns a Dev that talks to the sensor at addr through w.
//
// It doesn't perform any I/O. The Opts can be nil.
func New(w Wire, addr uint16, speed physic.Frequency, opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Dev{w: w, addr: addr, speed: speed, opts: *opts}
}

// NewI2C returns a Dev on an already opened I²C bus. The Opts can be nil.
func NewI2C(b i2c.Bus, addr uint16, speed physic.Frequency, opts *Opts) *Dev {
	return New(twowire.New(b), addr, speed, opts)
}

func (d *Dev) String() string {
	return fmt.Sprintf("LSM303D{addr:%#x, speed:%s}", d.addr, d.speed)
}

// Addr returns the I²C address of the device.
func (d *Dev) Addr() uint16 {
	return d.addr
}

// Speed returns the bus clock used for each transaction.
func (d *Dev) Speed() physic.Frequency {
	return d.speed
}

// Init enables the bus if needed, verifies the device identity and writes
// the configuration registers.
//
// It returns ErrInvalidSignature if the device doesn't identify as an
// LSM303D, in which case nothing is written.
func (d *Dev) Init() error {
	if !d.w.Enabled() {
		if err := d.w.Begin(); err != nil {
			return ErrIOCtrl
		}
	}
	if err := d.identify(); err != nil {
		return err
	}
	return d.configure()
}

// Read reads the temperature, magnetometer and accelerometer registers into
// s.
//
// s is only modified when all three reads succeed.
func (d *Dev) Read(s *Sample) error {
	if s == nil {
		return ErrInvalidArgument
	}
	var buf [6]byte
	var out Sample
	if err := d.readRegs(regTempOut, buf[:tempOutReads]); err != nil {
		return err
	}
	out.Temp = decodeTemp(buf[:tempOutReads])
	if err := d.readRegs(regMagOut, buf[:magOutReads]); err != nil {
		return err
	}
	out.Mag = decodeAxes(buf[:magOutReads])
	if err := d.readRegs(regAccOut, buf[:accOutReads]); err != nil {
		return err
	}
	out.Acc = decodeAxes(buf[:accOutReads])
	*s = out
	return nil
}

func (d *Dev) identify() error {
	var id [1]byte
	if err := d.readRegs(regWhoAmI, id[:]); err != nil {
		return err
	}
	if id[0] != whoAmIValue {
		return ErrInvalidSignature
	}
	return nil
}

func (d *Dev) configure() error {
	for i, v := range ctrlSet {
		if err := d.writeReg(regCtrl0+byte(i), v); err != nil {
			return err
		}
	}
	return nil
}

// start opens a transmission to the device.
//
// SetSpeed errors are ignored; a host without clock control keeps its
// current speed.
func (d *Dev) start() {
	d.w.BeginTransmission(d.addr)
	_ = d.w.SetSpeed(d.speed)
}

// end closes the pending transmission.
func (d *Dev) end() error {
	if d.w.EndTransmission() != 0 {
		return ErrIOCtrl
	}
	return nil
}

// readRegs selects reg with auto-increment and reads len(buf) bytes. Every
// failure, including one while selecting the register, is an ErrIORead.
func (d *Dev) readRegs(reg byte, buf []byte) error {
	d.start()
	err := d.w.WriteByte(reg | autoIncrement)
	// Always end the transmission; the transport must not keep a pending
	// write.
	if endErr := d.end(); err == nil {
		err = endErr
	}
	if err != nil {
		return ErrIORead
	}
	d.w.RequestFrom(d.addr, len(buf))
	if err := d.waitAvailable(len(buf)); err != nil {
		return err
	}
	for i := range buf {
		b, err := d.w.ReadByte()
		if err != nil {
			return ErrIORead
		}
		buf[i] = b
	}
	return nil
}

// waitAvailable polls until n bytes can be read.
func (d *Dev) waitAvailable(n int) error {
	if d.opts.ReadTimeout <= 0 {
		for d.w.Available() < n {
		}
		return nil
	}
	end := time.Now().Add(d.opts.ReadTimeout)
	for d.w.Available() < n {
		if !time.Now().Before(end) {
			return ErrIORead
		}
	}
	return nil
}

// writeReg writes v to reg.
func (d *Dev) writeReg(reg, v byte) error {
	d.start()
	err := d.w.WriteByte(reg)
	if err == nil {
		err = d.w.WriteByte(v)
	}
	if endErr := d.end(); err == nil {
		err = endErr
	}
	if err != nil {
		return ErrIOWrite
	}
	return nil
}

// decodeTemp assembles TEMP_OUT_L/TEMP_OUT_H. Bits 12..15 are zero-filled.
func decodeTemp(b []byte) int16 {
	return int16(uint16(b[1]&0x0F)<<8 | uint16(b[0]))
}

// decodeAxes assembles three little endian two's complement values.
func decodeAxes(b []byte) Axes {
	return Axes{
		X: int16(binary.LittleEndian.Uint16(b[0:])),
		Y: int16(binary.LittleEndian.Uint16(b[2:])),
		Z: int16(binary.LittleEndian.Uint16(b[4:])),
	}
}

var _ fmt.Stringer = &Dev{}
