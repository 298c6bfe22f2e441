// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package cs101 provides the serial-variant telegram framing of
// IEC 60870-5: FT1.2 fixed and variable frames around the asdu model, the
// link control field, and the serial stream adapter the framing reads and
// writes. Link procedure (polling, retries, confirmations) stays with the
// caller.
package cs101

import (
	"fmt"
	"io"
)

// FT1.2 frame format constants.
const (
	// StartFixed is the start character of fixed-length frames.
	StartFixed byte = 0x10
	// StartVariable is the start character of variable-length frames.
	StartVariable byte = 0x68
	// EndChar terminates both frame forms.
	EndChar byte = 0x16

	// MaxFrameLen is the frame transfer unit capacity.
	MaxFrameLen = 255

	// maxUserDataLen bounds the length field of a variable frame:
	// control + link address + ASDU. Start, both length octets, the
	// repeated start, checksum and end char make 6 octets of envelope.
	maxUserDataLen = MaxFrameLen - 6
)

// Control field bits.
const (
	// CtrlDIR is the direction bit of balanced mode.
	CtrlDIR byte = 0x80
	// CtrlPRM set means a primary station message.
	CtrlPRM byte = 0x40
	// CtrlFCB is the frame count bit (primary).
	CtrlFCB byte = 0x20
	// CtrlFCV set means the frame count bit is valid (primary).
	CtrlFCV byte = 0x10
	// CtrlACD is the access demand bit (secondary).
	CtrlACD byte = 0x20
	// CtrlDFC is the data flow control bit (secondary).
	CtrlDFC byte = 0x10
	// CtrlFuncMask masks the function code.
	CtrlFuncMask byte = 0x0f
)

// Primary station function codes (PRM=1).
const (
	PrimFcResetLink      byte = 0  // reset of remote link
	PrimFcResetUser      byte = 1  // reset of user process
	PrimFcTestLink       byte = 2  // test function for link (balanced)
	PrimFcUserDataConf   byte = 3  // user data, confirm expected
	PrimFcUserDataNoConf byte = 4  // user data, no reply expected
	PrimFcReqAccess      byte = 8  // request access demand
	PrimFcReqStatus      byte = 9  // request status of link
	PrimFcReqData1       byte = 10 // request user data class 1
	PrimFcReqData2       byte = 11 // request user data class 2
)

// Secondary station function codes (PRM=0).
const (
	SecFcConfACK       byte = 0  // positive acknowledge
	SecFcConfNACK      byte = 1  // negative acknowledge, link busy
	SecFcUserData      byte = 8  // respond: user data
	SecFcUserDataNone  byte = 9  // respond: no user data available
	SecFcRespStatus    byte = 11 // respond: status of link
	SecFcRespLinkNF    byte = 14 // link service not functioning
	SecFcRespLinkNI    byte = 15 // link service not implemented
)

// ControlField is the parsed link control octet. FCB/FCV apply to primary
// messages, ACD/DFC to secondary ones.
type ControlField struct {
	PRM bool
	FCB bool
	FCV bool
	ACD bool
	DFC bool
	Fun byte
}

// ParseControlField parses the control octet.
func ParseControlField(b byte) ControlField {
	cf := ControlField{
		PRM: b&CtrlPRM != 0,
		Fun: b & CtrlFuncMask,
	}
	if cf.PRM {
		cf.FCB = b&CtrlFCB != 0
		cf.FCV = b&CtrlFCV != 0
	} else {
		cf.ACD = b&CtrlACD != 0
		cf.DFC = b&CtrlDFC != 0
	}
	return cf
}

// Value encodes the control octet.
func (sf ControlField) Value() byte {
	b := sf.Fun & CtrlFuncMask
	if sf.PRM {
		b |= CtrlPRM
		if sf.FCB {
			b |= CtrlFCB
		}
		if sf.FCV {
			b |= CtrlFCV
		}
	} else {
		if sf.ACD {
			b |= CtrlACD
		}
		if sf.DFC {
			b |= CtrlDFC
		}
	}
	return b
}

func (sf ControlField) String() string {
	prm := "SEC"
	if sf.PRM {
		prm = "PRM"
	}
	extra := ""
	switch {
	case sf.PRM && sf.FCV:
		if sf.FCB {
			extra = " FCB=1"
		} else {
			extra = " FCB=0"
		}
	case !sf.PRM && sf.ACD:
		extra = " ACD"
	}
	if !sf.PRM && sf.DFC {
		extra += " DFC"
	}
	return fmt.Sprintf("CTRL<%s FC=%d%s>", prm, sf.Fun, extra)
}

// Frame is one FT1.2 frame. Fixed frames carry no user data; variable
// frames carry an encoded ASDU.
type Frame struct {
	Fixed    bool
	Control  byte
	LinkAddr uint16
	ASDU     []byte
}

// checksum is the arithmetic sum over control, link address and user data,
// truncated to eight bits.
func checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// ReadFrame consumes exactly one frame from r. linkAddrSize is the link
// address size in octets, 0 to 2.
func ReadFrame(r io.Reader, linkAddrSize int) (*Frame, error) {
	if linkAddrSize < 0 || linkAddrSize > 2 {
		return nil, ErrInvalidLinkAddrLen
	}

	var start [1]byte
	if _, err := io.ReadFull(r, start[:]); err != nil {
		return nil, fmt.Errorf("reading start character: %w", err)
	}

	switch start[0] {
	case StartFixed:
		// control + link address + checksum + end
		body := make([]byte, 1+linkAddrSize+2)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("reading fixed frame: %w", err)
		}
		if end := body[len(body)-1]; end != EndChar {
			return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidEndChar, EndChar, end)
		}
		sum := body[len(body)-2]
		if got := checksum(body[:len(body)-2]); got != sum {
			return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrChecksumMismatch, got, sum)
		}
		return &Frame{
			Fixed:    true,
			Control:  body[0],
			LinkAddr: parseLinkAddr(body[1 : 1+linkAddrSize]),
		}, nil

	case StartVariable:
		// length, repeated length, repeated start
		var head [3]byte
		if _, err := io.ReadFull(r, head[:]); err != nil {
			return nil, fmt.Errorf("reading variable frame header: %w", err)
		}
		if head[0] != head[1] {
			return nil, fmt.Errorf("%w: L1=0x%02X, L2=0x%02X", ErrLengthMismatch, head[0], head[1])
		}
		if head[2] != StartVariable {
			return nil, fmt.Errorf("%w: repeated start 0x%02X", ErrInvalidStartChar, head[2])
		}
		length := int(head[0])
		if length < 1+linkAddrSize {
			return nil, fmt.Errorf("%w: length %d with link address size %d", ErrFrameTooShort, length, linkAddrSize)
		}
		if length > maxUserDataLen {
			return nil, fmt.Errorf("%w: L=%d", ErrFrameLenExceeded, length)
		}
		// control + link address + ASDU + checksum + end
		body := make([]byte, length+2)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("reading variable frame body: %w", err)
		}
		if end := body[length+1]; end != EndChar {
			return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidEndChar, EndChar, end)
		}
		if got := checksum(body[:length]); got != body[length] {
			return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrChecksumMismatch, got, body[length])
		}
		return &Frame{
			Control:  body[0],
			LinkAddr: parseLinkAddr(body[1 : 1+linkAddrSize]),
			ASDU:     body[1+linkAddrSize : length],
		}, nil

	default:
		return nil, fmt.Errorf("%w: expected 0x10 or 0x68, got 0x%02X", ErrInvalidStartChar, start[0])
	}
}

// MarshalBinary encodes the frame with the given link address size.
func (sf *Frame) MarshalBinary(linkAddrSize int) ([]byte, error) {
	if linkAddrSize < 0 || linkAddrSize > 2 {
		return nil, ErrInvalidLinkAddrLen
	}
	if linkAddrSize < 2 && sf.LinkAddr > 0xff {
		return nil, fmt.Errorf("%w: link address %d", ErrInvalidLinkAddrLen, sf.LinkAddr)
	}

	if sf.Fixed {
		buf := make([]byte, 0, 4+linkAddrSize)
		buf = append(buf, StartFixed, sf.Control)
		buf = appendLinkAddr(buf, sf.LinkAddr, linkAddrSize)
		buf = append(buf, checksum(buf[1:]), EndChar)
		return buf, nil
	}

	length := 1 + linkAddrSize + len(sf.ASDU)
	if length > maxUserDataLen {
		return nil, fmt.Errorf("%w: L=%d", ErrFrameLenExceeded, length)
	}
	buf := make([]byte, 0, length+6)
	buf = append(buf, StartVariable, byte(length), byte(length), StartVariable, sf.Control)
	buf = appendLinkAddr(buf, sf.LinkAddr, linkAddrSize)
	buf = append(buf, sf.ASDU...)
	buf = append(buf, checksum(buf[4:]), EndChar)
	return buf, nil
}

// GetControlField parses and returns the control field.
func (sf *Frame) GetControlField() ControlField {
	return ParseControlField(sf.Control)
}

func appendLinkAddr(buf []byte, addr uint16, size int) []byte {
	if size >= 1 {
		buf = append(buf, byte(addr))
	}
	if size == 2 {
		buf = append(buf, byte(addr>>8))
	}
	return buf
}

func parseLinkAddr(raw []byte) uint16 {
	switch len(raw) {
	case 1:
		return uint16(raw[0])
	case 2:
		return uint16(raw[0]) | uint16(raw[1])<<8
	}
	return 0
}
