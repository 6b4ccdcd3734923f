// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package twowire implements an Arduino Wire style transaction model on top
// of a periph.io I²C bus.
//
// A write is queued between BeginTransmission and EndTransmission and sent as
// a single I²C write. RequestFrom performs a single I²C read whose bytes are
// then consumed with ReadByte.
//
// A Bus keeps the pending transmission and the receive buffer, so it must
// not be used by several goroutines without external locking.
package twowire

import (
	"errors"
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Status codes returned by EndTransmission.
const (
	StatusOK          byte = 0
	StatusDataTooLong byte = 1
	StatusOther       byte = 4
)

// BufferLength is the maximum number of bytes queued in one transmission.
const BufferLength = 32

// DebugF the debug function type.
type DebugF func(string, ...interface{})

var (
	errNotEnabled = errors.New("twowire: bus not enabled")
	errNoTx       = errors.New("twowire: no transmission in progress")
	errBufferFull = errors.New("twowire: transmission buffer full")
)

// openBus is replaced in tests.
var openBus = func(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return i2creg.Open(name)
}

// Bus is a Wire transport on a periph I²C bus.
type Bus struct {
	name   string
	bus    i2c.Bus
	closer io.Closer

	addr     uint16
	inTx     bool
	overflow bool
	tx       []byte
	rx       []byte
	debug    DebugF
}

// New returns a Bus on an already opened I²C bus. It is enabled from the
// start and Close doesn't close b.
func New(b i2c.Bus) *Bus {
	return &Bus{bus: b, debug: noop}
}

// Open returns a Bus that opens the I²C bus name through the periph registry
// on Begin. An empty name selects the first available bus.
func Open(name string) *Bus {
	return &Bus{name: name, debug: noop}
}

// EnableDebug sets the function used to trace transactions.
func (b *Bus) EnableDebug(f DebugF) {
	if f == nil {
		f = noop
	}
	b.debug = f
}

func (b *Bus) String() string {
	if b.bus == nil {
		return fmt.Sprintf("twowire(%q)", b.name)
	}
	return fmt.Sprintf("twowire(%s)", b.bus)
}

// Begin initializes periph and opens the bus. It is a no-op when the bus is
// already enabled.
func (b *Bus) Begin() error {
	if b.bus != nil {
		return nil
	}
	bc, err := openBus(b.name)
	if err != nil {
		return fmt.Errorf("twowire: can't open I²C bus %q: %w", b.name, err)
	}
	b.debug("opened %s", bc)
	b.bus = bc
	b.closer = bc
	return nil
}

// Enabled reports whether the underlying bus is open.
func (b *Bus) Enabled() bool {
	return b.bus != nil
}

// SetSpeed sets the bus clock.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	if b.bus == nil {
		return errNotEnabled
	}
	if err := b.bus.SetSpeed(f); err != nil {
		b.debug("set speed %s: %v", f, err)
		return err
	}
	return nil
}

// BeginTransmission starts queuing a write to addr. A transmission that was
// not ended is discarded.
func (b *Bus) BeginTransmission(addr uint16) {
	b.addr = addr
	b.inTx = true
	b.overflow = false
	b.tx = b.tx[:0]
}

// WriteByte queues c in the pending transmission.
func (b *Bus) WriteByte(c byte) error {
	if !b.inTx {
		return errNoTx
	}
	if len(b.tx) >= BufferLength {
		b.overflow = true
		return errBufferFull
	}
	b.tx = append(b.tx, c)
	return nil
}

// EndTransmission sends the queued bytes as one I²C write.
func (b *Bus) EndTransmission() byte {
	if !b.inTx {
		return StatusOther
	}
	b.inTx = false
	if b.overflow {
		return StatusDataTooLong
	}
	if b.bus == nil {
		b.debug("write %#x: %v", b.addr, errNotEnabled)
		return StatusOther
	}
	b.debug("write %#x % x", b.addr, b.tx)
	if err := b.bus.Tx(b.addr, b.tx, nil); err != nil {
		b.debug("write %#x: %v", b.addr, err)
		return StatusOther
	}
	return StatusOK
}

// RequestFrom reads n bytes from addr and replaces the receive buffer with
// them. It returns the number of bytes received, 0 on failure.
func (b *Bus) RequestFrom(addr uint16, n int) int {
	b.rx = b.rx[:0]
	if n <= 0 {
		return 0
	}
	if b.bus == nil {
		b.debug("read %#x: %v", addr, errNotEnabled)
		return 0
	}
	r := make([]byte, n)
	if err := b.bus.Tx(addr, nil, r); err != nil {
		b.debug("read %#x: %v", addr, err)
		return 0
	}
	b.debug("read %#x % x", addr, r)
	b.rx = append(b.rx, r...)
	return n
}

// Available returns the number of unread bytes.
func (b *Bus) Available() int {
	return len(b.rx)
}

// ReadByte consumes one received byte. It returns io.EOF when the receive
// buffer is empty.
func (b *Bus) ReadByte() (byte, error) {
	if len(b.rx) == 0 {
		return 0, io.EOF
	}
	c := b.rx[0]
	b.rx = b.rx[1:]
	return c, nil
}

// Close closes the bus if it was opened by Begin.
func (b *Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.bus = nil
	b.closer = nil
	return err
}

func noop(string, ...interface{}) {}

var _ io.ByteReader = &Bus{}
var _ io.ByteWriter = &Bus{}
var _ fmt.Stringer = &Bus{}
