// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package cs104 provides the networked-variant telegram framing of
// IEC 60870-5: the APCI envelope with its information, supervisory and
// unnumbered telegram kinds, and the chat sequence counter tying
// information telegrams together. The transport is any io.Reader/io.Writer
// pair; connection management stays with the caller.
package cs104

import (
	"fmt"
	"io"

	"github.com/roboplc/iec60870-5/asdu"
)

// Telegram envelope:
//
//	| 0x68 | length | ctrl1 | ctrl2 | ctrl3 | ctrl4 | ASDU... |
//
// length covers the four control octets plus the ASDU. The low bits of
// ctrl1 select the kind:
//
//	| send SN << 1          . 0 |  information
//	| 0x01                  . 1 |  supervisory
//	| function bits      1  . 1 |  unnumbered
const (
	startByte byte = 0x68

	minAPDULen = 4
	maxAPDULen = 253
)

// UFunction is the function of an unnumbered control telegram, encoded as
// its activation bit. Confirmation shifts the bit left by one.
type UFunction byte

const (
	// UStartDT starts data transfer.
	UStartDT UFunction = 0x04
	// UStopDT stops data transfer.
	UStopDT UFunction = 0x10
	// UTestFR tests the connection.
	UTestFR UFunction = 0x40
)

func (sf UFunction) String() string {
	switch sf {
	case UStartDT:
		return "STARTDT"
	case UStopDT:
		return "STOPDT"
	case UTestFR:
		return "TESTFR"
	}
	return fmt.Sprintf("UFunction(0x%02X)", byte(sf))
}

// Telegram is one telegram of the networked variant.
type Telegram interface {
	// Write encodes the telegram onto w in one call.
	Write(w io.Writer) error
	// ApplyOutgoing stamps outgoing sequence numbers from c. Only
	// information telegrams advance the counter; supervisory telegrams
	// pick up the acknowledgment number, unnumbered ones do nothing.
	ApplyOutgoing(c *ChatSequenceCounter)
	// ValidateIncoming checks received sequence numbers against c. A
	// no-op for supervisory and unnumbered telegrams.
	ValidateIncoming(c *ChatSequenceCounter) error
}

// ITelegram is an information telegram: sequence numbers plus an ASDU.
type ITelegram struct {
	SendSN uint16
	RecvSN uint16
	ASDU   *asdu.ASDU
}

// NewITelegram wraps an ASDU for sending. Sequence numbers are stamped by
// ApplyOutgoing.
func NewITelegram(a *asdu.ASDU) *ITelegram {
	return &ITelegram{ASDU: a}
}

// ApplyOutgoing stamps the send sequence number, advancing the counter,
// and the current acknowledgment number.
func (sf *ITelegram) ApplyOutgoing(c *ChatSequenceCounter) {
	sf.SendSN = c.ApplyOutgoing()
	sf.RecvSN = c.CurrentRX()
}

// ValidateIncoming checks the received send sequence number.
func (sf *ITelegram) ValidateIncoming(c *ChatSequenceCounter) error {
	return c.ValidateIncoming(sf.SendSN)
}

// Write encodes the telegram onto w.
func (sf *ITelegram) Write(w io.Writer) error {
	if sf.ASDU == nil {
		return fmt.Errorf("%w: information telegram without ASDU", ErrFormat)
	}
	if sf.SendSN >= seqMod || sf.RecvSN >= seqMod {
		return fmt.Errorf("%w: send %d recv %d", ErrSeqRange, sf.SendSN, sf.RecvSN)
	}
	body, err := sf.ASDU.MarshalBinary()
	if err != nil {
		return err
	}
	if minAPDULen+len(body) > maxAPDULen {
		return fmt.Errorf("%w: APDU length %d", ErrFormat, minAPDULen+len(body))
	}
	buf := make([]byte, 0, 2+minAPDULen+len(body))
	buf = append(buf, startByte, byte(minAPDULen+len(body)),
		byte(sf.SendSN<<1), byte(sf.SendSN>>7),
		byte(sf.RecvSN<<1), byte(sf.RecvSN>>7))
	buf = append(buf, body...)
	_, err = w.Write(buf)
	return err
}

// STelegram is a supervisory telegram acknowledging received information
// telegrams.
type STelegram struct {
	RecvSN uint16
}

// NewSTelegram returns a supervisory telegram. The acknowledgment number
// is stamped by ApplyOutgoing.
func NewSTelegram() *STelegram {
	return &STelegram{}
}

// ApplyOutgoing stamps the current acknowledgment number. The counter does
// not advance.
func (sf *STelegram) ApplyOutgoing(c *ChatSequenceCounter) {
	sf.RecvSN = c.CurrentRX()
}

// ValidateIncoming is a no-op; acknowledgment bookkeeping is window
// management and stays with the caller.
func (sf *STelegram) ValidateIncoming(*ChatSequenceCounter) error {
	return nil
}

// Write encodes the telegram onto w.
func (sf *STelegram) Write(w io.Writer) error {
	if sf.RecvSN >= seqMod {
		return fmt.Errorf("%w: recv %d", ErrSeqRange, sf.RecvSN)
	}
	_, err := w.Write([]byte{startByte, minAPDULen, 0x01, 0x00,
		byte(sf.RecvSN << 1), byte(sf.RecvSN >> 7)})
	return err
}

// UTelegram is an unnumbered control telegram.
type UTelegram struct {
	Function UFunction
	Confirm  bool
}

// NewStartDT returns a start data transfer activation.
func NewStartDT() *UTelegram { return &UTelegram{Function: UStartDT} }

// NewStartDTCon returns a start data transfer confirmation.
func NewStartDTCon() *UTelegram { return &UTelegram{Function: UStartDT, Confirm: true} }

// NewStopDT returns a stop data transfer activation.
func NewStopDT() *UTelegram { return &UTelegram{Function: UStopDT} }

// NewStopDTCon returns a stop data transfer confirmation.
func NewStopDTCon() *UTelegram { return &UTelegram{Function: UStopDT, Confirm: true} }

// NewTestFrame returns a test activation.
func NewTestFrame() *UTelegram { return &UTelegram{Function: UTestFR} }

// NewTestFrameCon returns a test confirmation.
func NewTestFrameCon() *UTelegram { return &UTelegram{Function: UTestFR, Confirm: true} }

// ApplyOutgoing is a no-op; unnumbered telegrams carry no sequence
// numbers.
func (sf *UTelegram) ApplyOutgoing(*ChatSequenceCounter) {}

// ValidateIncoming is a no-op.
func (sf *UTelegram) ValidateIncoming(*ChatSequenceCounter) error {
	return nil
}

// Write encodes the telegram onto w.
func (sf *UTelegram) Write(w io.Writer) error {
	ctrl, err := sf.control()
	if err != nil {
		return err
	}
	_, err = w.Write([]byte{startByte, minAPDULen, ctrl, 0x00, 0x00, 0x00})
	return err
}

func (sf *UTelegram) control() (byte, error) {
	switch sf.Function {
	case UStartDT, UStopDT, UTestFR:
	default:
		return 0, fmt.Errorf("%w: function 0x%02X", ErrUnknownControl, byte(sf.Function))
	}
	ctrl := byte(sf.Function)
	if sf.Confirm {
		ctrl <<= 1
	}
	return ctrl | 0x03, nil
}

func parseUControl(c byte) (*UTelegram, error) {
	u := &UTelegram{}
	switch c &^ 0x03 {
	case byte(UStartDT):
		u.Function = UStartDT
	case byte(UStartDT) << 1:
		u.Function, u.Confirm = UStartDT, true
	case byte(UStopDT):
		u.Function = UStopDT
	case byte(UStopDT) << 1:
		u.Function, u.Confirm = UStopDT, true
	case byte(UTestFR):
		u.Function = UTestFR
	case byte(UTestFR) << 1:
		u.Function, u.Confirm = UTestFR, true
	default:
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownControl, c)
	}
	return u, nil
}

// Read consumes exactly one telegram from r. The ASDU of an information
// telegram decodes per params. If the ASDU decode fails the returned
// telegram still carries the envelope fields next to the error, so the
// header stays inspectable for mirror replies.
func Read(r io.Reader, params *asdu.Params) (Telegram, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("reading telegram header: %w", err)
	}
	if head[0] != startByte {
		return nil, fmt.Errorf("%w: start 0x%02X", ErrFormat, head[0])
	}
	length := int(head[1])
	if length < minAPDULen || length > maxAPDULen {
		return nil, fmt.Errorf("%w: APDU length %d", ErrFormat, length)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("reading telegram body: %w", err)
	}

	switch {
	case body[0]&0x01 == 0: // information
		if body[2]&0x01 != 0 {
			return nil, fmt.Errorf("%w: receive sequence low bit set", ErrFormat)
		}
		if length == minAPDULen {
			return nil, fmt.Errorf("%w: information telegram without ASDU", ErrFormat)
		}
		t := &ITelegram{
			SendSN: uint16(body[0])>>1 | uint16(body[1])<<7,
			RecvSN: uint16(body[2])>>1 | uint16(body[3])<<7,
			ASDU:   asdu.NewEmptyASDU(params),
		}
		if err := t.ASDU.UnmarshalBinary(body[4:]); err != nil {
			return t, err
		}
		return t, nil

	case body[0] == 0x01: // supervisory
		if length != minAPDULen {
			return nil, fmt.Errorf("%w: supervisory telegram with payload", ErrFormat)
		}
		if body[1] != 0 || body[2]&0x01 != 0 {
			return nil, fmt.Errorf("%w: supervisory control octets % X", ErrFormat, body[:4])
		}
		return &STelegram{RecvSN: uint16(body[2])>>1 | uint16(body[3])<<7}, nil

	case body[0]&0x03 == 0x03: // unnumbered
		if length != minAPDULen {
			return nil, fmt.Errorf("%w: unnumbered telegram with payload", ErrFormat)
		}
		if body[1] != 0 || body[2] != 0 || body[3] != 0 {
			return nil, fmt.Errorf("%w: unnumbered control octets % X", ErrFormat, body[:4])
		}
		return parseUControl(body[0])

	default: // low bits 01 with spurious function bits
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownControl, body[0])
	}
}
