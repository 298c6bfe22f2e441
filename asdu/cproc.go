// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Information elements in the control direction.

// SingleCommand is a single command.
//
//	| S/E | QU (5 bits) | RES | SCS |
//
// Used by C_SC_NA_1 and C_SC_TA_1.
type SingleCommand struct {
	ID    TypeID
	Value bool
	Qual  QualifierOfCommand
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *SingleCommand) TypeID() TypeID { return sf.ID }

func (sf *SingleCommand) check() error {
	switch sf.ID {
	case C_SC_NA_1, C_SC_TA_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a single command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *SingleCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	var state byte
	if sf.Value {
		state = 0x01
	}
	b, err := sf.Qual.value(state)
	if err != nil {
		return nil, err
	}
	return appendTimeTag([]byte{b}, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *SingleCommand) UnmarshalBinary(data []byte) error {
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
	sf.Value = body[0]&0x01 != 0
	sf.Qual = parseQualifierOfCommand(body[0])
	sf.Time = t
	return nil
}

// DoubleCommand is a double command.
//
//	| S/E | QU (5 bits) | DCS (2 bits) |
//
// Used by C_DC_NA_1 and C_DC_TA_1.
type DoubleCommand struct {
	ID    TypeID
	Value DoublePointState
	Qual  QualifierOfCommand
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *DoubleCommand) TypeID() TypeID { return sf.ID }

func (sf *DoubleCommand) check() error {
	switch sf.ID {
	case C_DC_NA_1, C_DC_TA_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a double command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *DoubleCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.Value > DPIndeterminate {
		return nil, fmt.Errorf("%w: double command state %d", ErrValueRange, sf.Value)
	}
	b, err := sf.Qual.value(byte(sf.Value))
	if err != nil {
		return nil, err
	}
	return appendTimeTag([]byte{b}, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *DoubleCommand) UnmarshalBinary(data []byte) error {
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
	sf.Value = DoublePointState(body[0] & 0x03)
	sf.Qual = parseQualifierOfCommand(body[0])
	sf.Time = t
	return nil
}

// StepCommand is a regulating step command.
//
//	| S/E | QU (5 bits) | RCS (2 bits) |
//
// Used by C_RC_NA_1 and C_RC_TA_1.
type StepCommand struct {
	ID    TypeID
	Value StepCommandState
	Qual  QualifierOfCommand
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *StepCommand) TypeID() TypeID { return sf.ID }

func (sf *StepCommand) check() error {
	switch sf.ID {
	case C_RC_NA_1, C_RC_TA_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a regulating step command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *StepCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.Value > StepNotAllowed3 {
		return nil, fmt.Errorf("%w: step command state %d", ErrValueRange, sf.Value)
	}
	b, err := sf.Qual.value(byte(sf.Value))
	if err != nil {
		return nil, err
	}
	return appendTimeTag([]byte{b}, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *StepCommand) UnmarshalBinary(data []byte) error {
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
	sf.Value = StepCommandState(body[0] & 0x03)
	sf.Qual = parseQualifierOfCommand(body[0])
	sf.Time = t
	return nil
}

// SetpointNormalized is a set-point command with a normalized value.
//
// Used by C_SE_NA_1 and C_SE_TA_1.
type SetpointNormalized struct {
	ID    TypeID
	Value int16
	Qos   QualifierOfSetpoint
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *SetpointNormalized) TypeID() TypeID { return sf.ID }

func (sf *SetpointNormalized) check() error {
	switch sf.ID {
	case C_SE_NA_1, C_SE_TA_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a normalized set-point command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *SetpointNormalized) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	qos, err := sf.Qos.value()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b, uint16(sf.Value))
	b[2] = qos
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *SetpointNormalized) UnmarshalBinary(data []byte) error {
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
	sf.Value = int16(binary.LittleEndian.Uint16(body))
	sf.Qos = parseQualifierOfSetpoint(body[2])
	sf.Time = t
	return nil
}

// SetpointScaled is a set-point command with a scaled value.
//
// Used by C_SE_NB_1 and C_SE_TB_1.
type SetpointScaled struct {
	ID    TypeID
	Value int16
	Qos   QualifierOfSetpoint
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *SetpointScaled) TypeID() TypeID { return sf.ID }

func (sf *SetpointScaled) check() error {
	switch sf.ID {
	case C_SE_NB_1, C_SE_TB_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a scaled set-point command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *SetpointScaled) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	qos, err := sf.Qos.value()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b, uint16(sf.Value))
	b[2] = qos
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *SetpointScaled) UnmarshalBinary(data []byte) error {
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
	sf.Value = int16(binary.LittleEndian.Uint16(body))
	sf.Qos = parseQualifierOfSetpoint(body[2])
	sf.Time = t
	return nil
}

// SetpointFloat is a set-point command with a short floating point value.
//
// Used by C_SE_NC_1 and C_SE_TC_1.
type SetpointFloat struct {
	ID    TypeID
	Value float32
	Qos   QualifierOfSetpoint
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *SetpointFloat) TypeID() TypeID { return sf.ID }

func (sf *SetpointFloat) check() error {
	switch sf.ID {
	case C_SE_NC_1, C_SE_TC_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a floating point set-point command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *SetpointFloat) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	qos, err := sf.Qos.value()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b, math.Float32bits(sf.Value))
	b[4] = qos
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *SetpointFloat) UnmarshalBinary(data []byte) error {
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
	sf.Value = math.Float32frombits(binary.LittleEndian.Uint32(body))
	sf.Qos = parseQualifierOfSetpoint(body[4])
	sf.Time = t
	return nil
}

// BitstringCommand is a bitstring of 32 bits command.
//
// Used by C_BO_NA_1 and C_BO_TA_1.
type BitstringCommand struct {
	ID    TypeID
	Value uint32
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *BitstringCommand) TypeID() TypeID { return sf.ID }

func (sf *BitstringCommand) check() error {
	switch sf.ID {
	case C_BO_NA_1, C_BO_TA_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a bitstring command", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *BitstringCommand) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, sf.Value)
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *BitstringCommand) UnmarshalBinary(data []byte) error {
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
	sf.Value = binary.LittleEndian.Uint32(body)
	sf.Time = t
	return nil
}
