// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"github.com/roboplc/iec60870-5/clog"
)

// SerialConfig holds serial port configuration parameters.
type SerialConfig struct {
	// Address is the serial port address (e.g. "COM3" on Windows,
	// "/dev/ttyS0" on Linux).
	Address string
	// BaudRate is the serial port speed. Zero defaults to 9600.
	BaudRate int
	// DataBits is the number of data bits. Zero defaults to 8.
	DataBits int
	// StopBits specifies the number of stop bits.
	StopBits serial.StopBits
	// Parity specifies the parity mode. The standard transmission frame
	// wants even parity.
	Parity serial.Parity
	// Timeout is the read timeout of the port. Zero means blocking
	// reads.
	Timeout time.Duration
}

// mapParity maps a byte representation to serial.Parity.
// 0 = none, 1 = odd, 2 = even.
func mapParity(p byte) serial.Parity {
	switch p {
	case 1:
		return serial.OddParity
	case 2:
		return serial.EvenParity
	default:
		return serial.NoParity
	}
}

// mapStopBits maps a byte representation to serial.StopBits.
// 2 = two stop bits, anything else one.
func mapStopBits(s byte) serial.StopBits {
	if s == 2 {
		return serial.TwoStopBits
	}
	return serial.OneStopBit
}

// SerialStream adapts a configured serial port into the byte stream the
// framing layer reads and writes. It owns the port lifecycle only; link
// procedure stays with the caller.
type SerialStream struct {
	clog.Clog
	cfg  SerialConfig
	port serial.Port
}

var _ io.ReadWriteCloser = (*SerialStream)(nil)

// NewSerialStream returns an unopened stream for the configuration.
func NewSerialStream(cfg SerialConfig) *SerialStream {
	return &SerialStream{
		Clog: clog.NewLogger("cs101 serial => "),
		cfg:  cfg,
	}
}

// Open opens and configures the port.
func (sf *SerialStream) Open() error {
	if sf.port != nil {
		return errors.New("serial port already open")
	}
	if sf.cfg.Address == "" {
		return errors.New("serial address (port name) must be configured")
	}
	mode := &serial.Mode{
		BaudRate: sf.cfg.BaudRate,
		DataBits: sf.cfg.DataBits,
		Parity:   sf.cfg.Parity,
		StopBits: sf.cfg.StopBits,
	}
	if mode.BaudRate == 0 {
		mode.BaudRate = 9600
	}
	if mode.DataBits == 0 {
		mode.DataBits = 8
	}
	port, err := serial.Open(sf.cfg.Address, mode)
	if err != nil {
		sf.Error("open %s: %v", sf.cfg.Address, err)
		return fmt.Errorf("opening serial port %s: %w", sf.cfg.Address, err)
	}
	if sf.cfg.Timeout > 0 {
		if err := port.SetReadTimeout(sf.cfg.Timeout); err != nil {
			port.Close()
			return fmt.Errorf("setting read timeout on %s: %w", sf.cfg.Address, err)
		}
	}
	sf.port = port
	sf.Debug("opened %s at %d baud", sf.cfg.Address, mode.BaudRate)
	return nil
}

// Read reads from the port.
func (sf *SerialStream) Read(p []byte) (int, error) {
	if sf.port == nil {
		return 0, ErrUseClosedConnection
	}
	return sf.port.Read(p)
}

// Write writes to the port.
func (sf *SerialStream) Write(p []byte) (int, error) {
	if sf.port == nil {
		return 0, ErrUseClosedConnection
	}
	return sf.port.Write(p)
}

// Close closes the port. Closing a closed stream is a no-op.
func (sf *SerialStream) Close() error {
	if sf.port == nil {
		return nil
	}
	err := sf.port.Close()
	sf.port = nil
	sf.Debug("closed %s", sf.cfg.Address)
	return err
}
