// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"encoding/binary"
	"fmt"
)

// System information elements.

// Qualifier of interrogation values. 21..36 interrogate groups 1..16.
const (
	// QOIStation is a global station interrogation.
	QOIStation uint8 = 20
)

// QOIGroup returns the qualifier interrogating group n, 1..16.
func QOIGroup(n uint8) uint8 {
	return QOIStation + n
}

// InterrogationCommand is an interrogation command, C_IC_NA_1.
type InterrogationCommand struct {
	ID        TypeID
	Qualifier uint8 // QOI
}

// TypeID returns the type identification.
func (sf *InterrogationCommand) TypeID() TypeID { return sf.ID }

func (sf *InterrogationCommand) check() error {
	if sf.ID == C_IC_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not an interrogation command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *InterrogationCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	return []byte{sf.Qualifier}, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *InterrogationCommand) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Qualifier = data[0]
	return nil
}

// Counter interrogation request qualifiers (RQT).
const (
	// QCCGroup1 requests counter group 1; groups 2..4 follow.
	QCCGroup1 uint8 = 1
	QCCGroup2 uint8 = 2
	QCCGroup3 uint8 = 3
	QCCGroup4 uint8 = 4
	// QCCGeneral requests all counters.
	QCCGeneral uint8 = 5
)

// Counter interrogation freeze qualifiers (FRZ).
const (
	// FRZRead reads without freezing.
	FRZRead uint8 = 0
	// FRZFreeze freezes without reset.
	FRZFreeze uint8 = 1
	// FRZFreezeReset freezes and resets.
	FRZFreezeReset uint8 = 2
	// FRZReset resets without freezing.
	FRZReset uint8 = 3
)

// CounterInterrogationCommand is a counter interrogation command,
// C_CI_NA_1.
//
//	| FRZ (2 bits) | RQT (6 bits) |
type CounterInterrogationCommand struct {
	ID      TypeID
	Request uint8 // 0..63
	Freeze  uint8 // 0..3
}

// TypeID returns the type identification.
func (sf *CounterInterrogationCommand) TypeID() TypeID { return sf.ID }

func (sf *CounterInterrogationCommand) check() error {
	if sf.ID == C_CI_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a counter interrogation command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *CounterInterrogationCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.Request > 63 || sf.Freeze > 3 {
		return nil, fmt.Errorf("%w: counter interrogation %d/%d", ErrValueRange, sf.Request, sf.Freeze)
	}
	return []byte{sf.Request | sf.Freeze<<6}, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *CounterInterrogationCommand) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Request = data[0] & 0x3f
	sf.Freeze = data[0] >> 6
	return nil
}

// ReadCommand is a read command, C_RD_NA_1. It carries no information
// element; the object address alone selects what to read.
type ReadCommand struct {
	ID TypeID
}

// TypeID returns the type identification.
func (sf *ReadCommand) TypeID() TypeID { return sf.ID }

func (sf *ReadCommand) check() error {
	if sf.ID == C_RD_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a read command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ReadCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	return []byte{}, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *ReadCommand) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	return checkRawLen(sf.ID, data)
}

// ClockSyncCommand is a clock synchronization command, C_CS_NA_1.
type ClockSyncCommand struct {
	ID   TypeID
	Time CP56Time2a
}

// TypeID returns the type identification.
func (sf *ClockSyncCommand) TypeID() TypeID { return sf.ID }

func (sf *ClockSyncCommand) check() error {
	if sf.ID == C_CS_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a clock synchronization command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ClockSyncCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	return appendTimeTag(nil, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *ClockSyncCommand) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	_, t, err := splitTimeTag(data, sf.ID)
	if err != nil {
		return err
	}
	sf.Time = t
	return nil
}

// testPattern is the fixed bit pattern of the test command.
var testPattern = [2]byte{0xaa, 0x55}

// TestCommand is a test command, C_TS_NA_1. Encoding always writes the
// fixed pattern; decoding reports a pattern match through Valid.
type TestCommand struct {
	ID    TypeID
	Valid bool
}

// TypeID returns the type identification.
func (sf *TestCommand) TypeID() TypeID { return sf.ID }

func (sf *TestCommand) check() error {
	if sf.ID == C_TS_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a test command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *TestCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	return []byte{testPattern[0], testPattern[1]}, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *TestCommand) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Valid = data[0] == testPattern[0] && data[1] == testPattern[1]
	return nil
}

// Reset process qualifiers (QRP).
const (
	// QRPGeneral is a general reset of the process.
	QRPGeneral uint8 = 1
	// QRPPendingTimeTagged resets pending information with time tag.
	QRPPendingTimeTagged uint8 = 2
)

// ResetProcessCommand is a reset process command, C_RP_NA_1.
type ResetProcessCommand struct {
	ID        TypeID
	Qualifier uint8 // QRP
}

// TypeID returns the type identification.
func (sf *ResetProcessCommand) TypeID() TypeID { return sf.ID }

func (sf *ResetProcessCommand) check() error {
	if sf.ID == C_RP_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a reset process command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ResetProcessCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	return []byte{sf.Qualifier}, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *ResetProcessCommand) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Qualifier = data[0]
	return nil
}

// DelayAcquireCommand is a delay acquisition command, C_CD_NA_1.
type DelayAcquireCommand struct {
	ID    TypeID
	Delay CP16Time2a
}

// TypeID returns the type identification.
func (sf *DelayAcquireCommand) TypeID() TypeID { return sf.ID }

func (sf *DelayAcquireCommand) check() error {
	if sf.ID == C_CD_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a delay acquisition command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *DelayAcquireCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	return sf.Delay.MarshalBinary()
}

// UnmarshalBinary decodes the information element payload.
func (sf *DelayAcquireCommand) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	delay, err := ParseCP16Time2a(data)
	if err != nil {
		return err
	}
	sf.Delay = delay
	return nil
}

// TestCommandCP56 is a test command with a test sequence counter and time
// tag, C_TS_TA_1. The counter travels big endian, unlike every other
// multi-octet field.
type TestCommandCP56 struct {
	ID      TypeID
	Counter uint16
	Time    CP56Time2a
}

// TypeID returns the type identification.
func (sf *TestCommandCP56) TypeID() TypeID { return sf.ID }

func (sf *TestCommandCP56) check() error {
	if sf.ID == C_TS_TA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a time-tagged test command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *TestCommandCP56) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, sf.Counter)
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *TestCommandCP56) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	body, t, err := splitTimeTag(data, sf.ID)
	if err != nil {
		return err
	}
	sf.Counter = binary.BigEndian.Uint16(body)
	sf.Time = t
	return nil
}
