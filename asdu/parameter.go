// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Parameters of measured values.

// ParameterNormalized is a parameter of a normalized measured value,
// P_ME_NA_1.
type ParameterNormalized struct {
	ID    TypeID
	Value int16
	Qpm   QualifierOfParam
}

// TypeID returns the type identification.
func (sf *ParameterNormalized) TypeID() TypeID { return sf.ID }

func (sf *ParameterNormalized) check() error {
	if sf.ID == P_ME_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a normalized measured value parameter", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ParameterNormalized) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	qpm, err := sf.Qpm.value()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b, uint16(sf.Value))
	b[2] = qpm
	return b, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *ParameterNormalized) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Value = int16(binary.LittleEndian.Uint16(data))
	sf.Qpm = parseQualifierOfParam(data[2])
	return nil
}

// ParameterScaled is a parameter of a scaled measured value, P_ME_NB_1.
type ParameterScaled struct {
	ID    TypeID
	Value int16
	Qpm   QualifierOfParam
}

// TypeID returns the type identification.
func (sf *ParameterScaled) TypeID() TypeID { return sf.ID }

func (sf *ParameterScaled) check() error {
	if sf.ID == P_ME_NB_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a scaled measured value parameter", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ParameterScaled) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	qpm, err := sf.Qpm.value()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b, uint16(sf.Value))
	b[2] = qpm
	return b, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *ParameterScaled) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Value = int16(binary.LittleEndian.Uint16(data))
	sf.Qpm = parseQualifierOfParam(data[2])
	return nil
}

// ParameterFloat is a parameter of a short floating point measured value,
// P_ME_NC_1.
type ParameterFloat struct {
	ID    TypeID
	Value float32
	Qpm   QualifierOfParam
}

// TypeID returns the type identification.
func (sf *ParameterFloat) TypeID() TypeID { return sf.ID }

func (sf *ParameterFloat) check() error {
	if sf.ID == P_ME_NC_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a floating point measured value parameter", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ParameterFloat) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	qpm, err := sf.Qpm.value()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b, math.Float32bits(sf.Value))
	b[4] = qpm
	return b, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *ParameterFloat) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Value = math.Float32frombits(binary.LittleEndian.Uint32(data))
	sf.Qpm = parseQualifierOfParam(data[4])
	return nil
}

// Parameter activation qualifiers (QPA).
const (
	// QPAGeneral acts or deacts the previously loaded parameters.
	QPAGeneral uint8 = 1
	// QPAObject acts or deacts the parameters of the addressed object.
	QPAObject uint8 = 2
	// QPACycle acts or deacts the persistent cyclic or periodic
	// transmission of the addressed object.
	QPACycle uint8 = 3
)

// ParameterActivation is a parameter activation, P_AC_NA_1.
type ParameterActivation struct {
	ID        TypeID
	Qualifier uint8 // QPA
}

// TypeID returns the type identification.
func (sf *ParameterActivation) TypeID() TypeID { return sf.ID }

func (sf *ParameterActivation) check() error {
	if sf.ID == P_AC_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not a parameter activation", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ParameterActivation) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	return []byte{sf.Qualifier}, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *ParameterActivation) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Qualifier = data[0]
	return nil
}
