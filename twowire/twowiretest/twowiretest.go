// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package twowiretest is meant to be used to test drivers over a Wire style
// transport.
//
// Playback replays a list of expected transactions and can inject failures
// at any of them.
package twowiretest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/physic"
)

// IO registers one transaction.
//
// A write transaction (BeginTransmission..EndTransmission) has W set. A read
// transaction (RequestFrom) has R set.
type IO struct {
	Addr uint16
	// W is the expected content of a write transaction.
	W []byte
	// R is the data returned by a read transaction. Its length must match
	// the number of requested bytes.
	R []byte
	// Status is returned by EndTransmission instead of 0.
	Status byte
	// Short withholds the last Short bytes of R.
	Short int
	// WriteErr makes WriteByte fail.
	WriteErr error
}

// Playback implements the Wire transport of package lsm303d.
//
// It is the equivalent of i2ctest.Playback. Any mismatch is recorded and
// returned by Close.
type Playback struct {
	sync.Mutex
	Ops []IO
	// Count is the number of transactions consumed.
	Count int
	// On reports whether the transport is enabled.
	On bool
	// BeginErr is returned by Begin.
	BeginErr error
	// SpeedErr is returned by SetSpeed.
	SpeedErr error

	// Begins is the number of Begin calls.
	Begins int
	// Speeds records every SetSpeed call.
	Speeds []physic.Frequency

	errs []error
	addr uint16
	inTx bool
	tx   []byte
	rx   []byte
}

func (p *Playback) String() string {
	return "twowiretest.Playback"
}

// Begin implements lsm303d.Wire.
func (p *Playback) Begin() error {
	p.Lock()
	defer p.Unlock()
	p.Begins++
	if p.BeginErr != nil {
		return p.BeginErr
	}
	p.On = true
	return nil
}

// Enabled implements lsm303d.Wire.
func (p *Playback) Enabled() bool {
	p.Lock()
	defer p.Unlock()
	return p.On
}

// SetSpeed implements lsm303d.Wire.
func (p *Playback) SetSpeed(f physic.Frequency) error {
	p.Lock()
	defer p.Unlock()
	p.Speeds = append(p.Speeds, f)
	return p.SpeedErr
}

// BeginTransmission implements lsm303d.Wire.
func (p *Playback) BeginTransmission(addr uint16) {
	p.Lock()
	defer p.Unlock()
	p.addr = addr
	p.inTx = true
	p.tx = p.tx[:0]
}

// WriteByte implements lsm303d.Wire.
func (p *Playback) WriteByte(c byte) error {
	p.Lock()
	defer p.Unlock()
	if !p.inTx {
		p.errorf("WriteByte(%#x) outside of a transmission", c)
		return errors.New("twowiretest: no transmission in progress")
	}
	if op := p.peek(); op != nil && op.WriteErr != nil {
		return op.WriteErr
	}
	p.tx = append(p.tx, c)
	return nil
}

// EndTransmission implements lsm303d.Wire.
func (p *Playback) EndTransmission() byte {
	p.Lock()
	defer p.Unlock()
	if !p.inTx {
		p.errorf("EndTransmission() outside of a transmission")
		return 4
	}
	p.inTx = false
	op := p.next()
	if op == nil {
		p.errorf("unexpected write %#x % x (count #%d) expected nothing", p.addr, p.tx, p.Count)
		return 4
	}
	if op.Addr != p.addr || op.R != nil || !bytes.Equal(op.W, p.tx) {
		p.errorf("unexpected write %#x % x (count #%d) expected %#x W:% x R:% x", p.addr, p.tx, p.Count-1, op.Addr, op.W, op.R)
		return 4
	}
	return op.Status
}

// RequestFrom implements lsm303d.Wire.
func (p *Playback) RequestFrom(addr uint16, n int) int {
	p.Lock()
	defer p.Unlock()
	p.rx = p.rx[:0]
	op := p.next()
	if op == nil {
		p.errorf("unexpected read %#x [%d] (count #%d) expected nothing", addr, n, p.Count)
		return 0
	}
	if op.Addr != addr || op.W != nil || len(op.R) != n {
		p.errorf("unexpected read %#x [%d] (count #%d) expected %#x W:% x R:% x", addr, n, p.Count-1, op.Addr, op.W, op.R)
		return 0
	}
	r := op.R[:len(op.R)-op.Short]
	p.rx = append(p.rx, r...)
	return len(r)
}

// Available implements lsm303d.Wire.
func (p *Playback) Available() int {
	p.Lock()
	defer p.Unlock()
	return len(p.rx)
}

// ReadByte implements lsm303d.Wire.
func (p *Playback) ReadByte() (byte, error) {
	p.Lock()
	defer p.Unlock()
	if len(p.rx) == 0 {
		return 0, io.EOF
	}
	c := p.rx[0]
	p.rx = p.rx[1:]
	return c, nil
}

// Close verifies that all the expected transactions were done and that no
// mismatch happened.
func (p *Playback) Close() error {
	p.Lock()
	defer p.Unlock()
	if len(p.Ops) != p.Count {
		p.errorf("expected playback to be empty: I/O count %d; expected %d", p.Count, len(p.Ops))
	}
	return errors.Join(p.errs...)
}

func (p *Playback) peek() *IO {
	if p.Count >= len(p.Ops) {
		return nil
	}
	return &p.Ops[p.Count]
}

func (p *Playback) next() *IO {
	op := p.peek()
	if op != nil {
		p.Count++
	}
	return op
}

func (p *Playback) errorf(format string, a ...interface{}) {
	p.errs = append(p.errs, fmt.Errorf("twowiretest: "+format, a...))
}
