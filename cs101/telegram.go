// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"fmt"
	"io"

	"github.com/roboplc/iec60870-5/asdu"
)

// Telegram101 is one telegram of the serial variant: the link header plus
// an optional ASDU. Fixed frames (acknowledgments, link requests) carry no
// ASDU.
type Telegram101 struct {
	Ctrl     ControlField
	LinkAddr uint16
	ASDU     *asdu.ASDU
}

// NewTelegram101 builds a user data telegram for the configured link. The
// control field defaults to unconfirmed primary user data; adjust Ctrl for
// confirmed sends.
func NewTelegram101(cfg *Config, typ asdu.TypeID, coa asdu.CauseOfTransmission, commonAddr asdu.CommonAddr) *Telegram101 {
	return &Telegram101{
		Ctrl:     ControlField{PRM: true, Fun: PrimFcUserDataNoConf},
		LinkAddr: cfg.LinkAddress,
		ASDU:     asdu.NewASDU(&cfg.Params, typ, coa, commonAddr),
	}
}

// NewFixedTelegram101 builds a fixed-frame telegram, such as an
// acknowledgment or a link status request.
func NewFixedTelegram101(ctrl ControlField, linkAddr uint16) *Telegram101 {
	return &Telegram101{Ctrl: ctrl, LinkAddr: linkAddr}
}

// Write encodes the telegram onto w in one call. A telegram without an
// ASDU goes out as a fixed frame.
func (sf *Telegram101) Write(w io.Writer, cfg *Config) error {
	if err := cfg.Valid(); err != nil {
		return err
	}
	frame := &Frame{
		Fixed:    sf.ASDU == nil,
		Control:  sf.Ctrl.Value(),
		LinkAddr: sf.LinkAddr,
	}
	if sf.ASDU != nil {
		raw, err := sf.ASDU.MarshalBinary()
		if err != nil {
			return err
		}
		frame.ASDU = raw
	}
	buf, err := frame.MarshalBinary(cfg.LinkAddrSize)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// ReadTelegram101 consumes exactly one telegram from r. If the ASDU decode
// fails the returned telegram still carries the link header next to the
// error.
func ReadTelegram101(r io.Reader, cfg *Config) (*Telegram101, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	frame, err := ReadFrame(r, cfg.LinkAddrSize)
	if err != nil {
		return nil, err
	}
	t := &Telegram101{
		Ctrl:     frame.GetControlField(),
		LinkAddr: frame.LinkAddr,
	}
	if frame.Fixed {
		return t, nil
	}
	if len(frame.ASDU) == 0 {
		return nil, fmt.Errorf("%w: variable frame without ASDU", ErrFrameTooShort)
	}
	a := asdu.NewEmptyASDU(&cfg.Params)
	if err := a.UnmarshalBinary(frame.ASDU); err != nil {
		t.ASDU = a
		return t, err
	}
	t.ASDU = a
	return t, nil
}
