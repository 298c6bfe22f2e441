// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Information elements in the monitor direction. Each struct covers one
// structural family; ID selects the concrete type identification and with
// it the time tag suffix. Short-tag variants carry the minute fields of
// Time only.

// SinglePoint is single-point information.
//
//	| IV | NT | SB | BL | RES | RES | RES | SPI |
//
// Used by M_SP_NA_1, M_SP_TA_1 and M_SP_TB_1.
type SinglePoint struct {
	ID    TypeID
	Value bool
	Qual  QualityDescriptor
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *SinglePoint) TypeID() TypeID { return sf.ID }

func (sf *SinglePoint) check() error {
	switch sf.ID {
	case M_SP_NA_1, M_SP_TA_1, M_SP_TB_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not single-point information", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *SinglePoint) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := byte(sf.Qual) & 0xf0
	if sf.Value {
		b |= 0x01
	}
	return appendTimeTag([]byte{b}, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *SinglePoint) UnmarshalBinary(data []byte) error {
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
	sf.Qual = QualityDescriptor(body[0] & 0xf0)
	sf.Time = t
	return nil
}

// DoublePoint is double-point information.
//
//	| IV | NT | SB | BL | RES | RES | DPI (2 bits) |
//
// Used by M_DP_NA_1, M_DP_TA_1 and M_DP_TB_1.
type DoublePoint struct {
	ID    TypeID
	Value DoublePointState
	Qual  QualityDescriptor
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *DoublePoint) TypeID() TypeID { return sf.ID }

func (sf *DoublePoint) check() error {
	switch sf.ID {
	case M_DP_NA_1, M_DP_TA_1, M_DP_TB_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not double-point information", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *DoublePoint) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.Value > DPIndeterminate {
		return nil, fmt.Errorf("%w: double-point state %d", ErrValueRange, sf.Value)
	}
	b := byte(sf.Qual)&0xf0 | byte(sf.Value)
	return appendTimeTag([]byte{b}, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *DoublePoint) UnmarshalBinary(data []byte) error {
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
	sf.Qual = QualityDescriptor(body[0] & 0xf0)
	sf.Time = t
	return nil
}

// StepPosition is step position information, a transmitter position value.
//
//	| T | value (7 bits, two's complement) | then quality
//
// Used by M_ST_NA_1, M_ST_TA_1 and M_ST_TB_1.
type StepPosition struct {
	ID        TypeID
	Value     int8 // -64..63
	Transient bool
	Qual      QualityDescriptor
	Time      CP56Time2a
}

// TypeID returns the type identification.
func (sf *StepPosition) TypeID() TypeID { return sf.ID }

func (sf *StepPosition) check() error {
	switch sf.ID {
	case M_ST_NA_1, M_ST_TA_1, M_ST_TB_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not step position information", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *StepPosition) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.Value < -64 || sf.Value > 63 {
		return nil, fmt.Errorf("%w: step position %d", ErrValueRange, sf.Value)
	}
	b := byte(sf.Value) & 0x7f
	if sf.Transient {
		b |= 0x80
	}
	return appendTimeTag([]byte{b, byte(sf.Qual) & 0xf0}, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *StepPosition) UnmarshalBinary(data []byte) error {
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
	v := body[0] & 0x7f
	if v&0x40 != 0 {
		v |= 0x80 // sign extend
	}
	sf.Value = int8(v)
	sf.Transient = body[0]&0x80 != 0
	sf.Qual = QualityDescriptor(body[1] & 0xf0)
	sf.Time = t
	return nil
}

// Bitstring32 is a bitstring of 32 bits.
//
// Used by M_BO_NA_1, M_BO_TA_1 and M_BO_TB_1.
type Bitstring32 struct {
	ID    TypeID
	Value uint32
	Qual  QualityDescriptor
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *Bitstring32) TypeID() TypeID { return sf.ID }

func (sf *Bitstring32) check() error {
	switch sf.ID {
	case M_BO_NA_1, M_BO_TA_1, M_BO_TB_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a bitstring of 32 bits", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *Bitstring32) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b, sf.Value)
	b[4] = byte(sf.Qual) & 0xf1
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *Bitstring32) UnmarshalBinary(data []byte) error {
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
	sf.Qual = QualityDescriptor(body[4] & 0xf1)
	sf.Time = t
	return nil
}

// MeasuredNormalized is a normalized measured value, a signed 16 bit
// fixed-point fraction of full scale.
//
// Used by M_ME_NA_1, M_ME_TA_1, M_ME_TD_1 and the quality-less M_ME_ND_1.
type MeasuredNormalized struct {
	ID    TypeID
	Value int16
	Qual  QualityDescriptor
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *MeasuredNormalized) TypeID() TypeID { return sf.ID }

func (sf *MeasuredNormalized) check() error {
	switch sf.ID {
	case M_ME_NA_1, M_ME_TA_1, M_ME_TD_1, M_ME_ND_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a normalized measured value", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *MeasuredNormalized) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := make([]byte, 2, 3)
	binary.LittleEndian.PutUint16(b, uint16(sf.Value))
	if sf.ID != M_ME_ND_1 {
		b = append(b, byte(sf.Qual)&0xf1)
	}
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *MeasuredNormalized) UnmarshalBinary(data []byte) error {
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
	if sf.ID != M_ME_ND_1 {
		sf.Qual = QualityDescriptor(body[2] & 0xf1)
	} else {
		sf.Qual = QDSGood
	}
	sf.Time = t
	return nil
}

// MeasuredScaled is a scaled measured value.
//
// Used by M_ME_NB_1, M_ME_TB_1 and M_ME_TE_1.
type MeasuredScaled struct {
	ID    TypeID
	Value int16
	Qual  QualityDescriptor
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *MeasuredScaled) TypeID() TypeID { return sf.ID }

func (sf *MeasuredScaled) check() error {
	switch sf.ID {
	case M_ME_NB_1, M_ME_TB_1, M_ME_TE_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a scaled measured value", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *MeasuredScaled) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b, uint16(sf.Value))
	b[2] = byte(sf.Qual) & 0xf1
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *MeasuredScaled) UnmarshalBinary(data []byte) error {
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
	sf.Qual = QualityDescriptor(body[2] & 0xf1)
	sf.Time = t
	return nil
}

// MeasuredFloat is a short floating point measured value.
//
// Used by M_ME_NC_1, M_ME_TC_1 and M_ME_TF_1.
type MeasuredFloat struct {
	ID    TypeID
	Value float32
	Qual  QualityDescriptor
	Time  CP56Time2a
}

// TypeID returns the type identification.
func (sf *MeasuredFloat) TypeID() TypeID { return sf.ID }

func (sf *MeasuredFloat) check() error {
	switch sf.ID {
	case M_ME_NC_1, M_ME_TC_1, M_ME_TF_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a short floating point measured value", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *MeasuredFloat) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b, math.Float32bits(sf.Value))
	b[4] = byte(sf.Qual) & 0xf1
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *MeasuredFloat) UnmarshalBinary(data []byte) error {
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
	sf.Qual = QualityDescriptor(body[4] & 0xf1)
	sf.Time = t
	return nil
}

// IntegratedTotals is a binary counter reading.
//
//	| counter (32 bits, LE)                 |
//	| IV | CA | CY | sequence (5 bits)      |
//
// Used by M_IT_NA_1, M_IT_TA_1 and M_IT_TB_1.
type IntegratedTotals struct {
	ID        TypeID
	Count     int32
	SeqNumber uint8 // 0..31
	Carry     bool
	Adjusted  bool
	Invalid   bool
	Time      CP56Time2a
}

// TypeID returns the type identification.
func (sf *IntegratedTotals) TypeID() TypeID { return sf.ID }

func (sf *IntegratedTotals) check() error {
	switch sf.ID {
	case M_IT_NA_1, M_IT_TA_1, M_IT_TB_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not integrated totals", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *IntegratedTotals) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.SeqNumber > 31 {
		return nil, fmt.Errorf("%w: counter sequence %d", ErrValueRange, sf.SeqNumber)
	}
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b, uint32(sf.Count))
	b[4] = sf.SeqNumber
	if sf.Carry {
		b[4] |= 0x20
	}
	if sf.Adjusted {
		b[4] |= 0x40
	}
	if sf.Invalid {
		b[4] |= 0x80
	}
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *IntegratedTotals) UnmarshalBinary(data []byte) error {
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
	sf.Count = int32(binary.LittleEndian.Uint32(body))
	sf.SeqNumber = body[4] & 0x1f
	sf.Carry = body[4]&0x20 != 0
	sf.Adjusted = body[4]&0x40 != 0
	sf.Invalid = body[4]&0x80 != 0
	sf.Time = t
	return nil
}

// ProtectionEvent is an event of protection equipment with the relay
// elapsed time.
//
//	| IV | NT | SB | BL | EI | RES | ES (2 bits) |
//
// Used by M_EP_TA_1 and M_EP_TD_1.
type ProtectionEvent struct {
	ID      TypeID
	State   EventState
	Qual    QualityDescriptor
	Elapsed CP16Time2a
	Time    CP56Time2a
}

// TypeID returns the type identification.
func (sf *ProtectionEvent) TypeID() TypeID { return sf.ID }

func (sf *ProtectionEvent) check() error {
	switch sf.ID {
	case M_EP_TA_1, M_EP_TD_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not a protection equipment event", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ProtectionEvent) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.State > EventIndeterminate3 {
		return nil, fmt.Errorf("%w: event state %d", ErrValueRange, sf.State)
	}
	elapsed, err := sf.Elapsed.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b := append([]byte{byte(sf.Qual)&0xf8 | byte(sf.State)}, elapsed...)
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *ProtectionEvent) UnmarshalBinary(data []byte) error {
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
	sf.State = EventState(body[0] & 0x03)
	sf.Qual = QualityDescriptor(body[0] & 0xf8)
	if sf.Elapsed, err = ParseCP16Time2a(body[1:3]); err != nil {
		return err
	}
	sf.Time = t
	return nil
}

// ProtectionStartEvents is the packed start events of protection equipment
// with the relay duration time.
//
// Used by M_EP_TB_1 and M_EP_TE_1.
type ProtectionStartEvents struct {
	ID       TypeID
	Events   StartEvents
	Qual     QualityDescriptor
	Duration CP16Time2a
	Time     CP56Time2a
}

// TypeID returns the type identification.
func (sf *ProtectionStartEvents) TypeID() TypeID { return sf.ID }

func (sf *ProtectionStartEvents) check() error {
	switch sf.ID {
	case M_EP_TB_1, M_EP_TE_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not packed protection start events", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ProtectionStartEvents) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	duration, err := sf.Duration.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b := append([]byte{byte(sf.Events) & 0x3f, byte(sf.Qual) & 0xf8}, duration...)
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *ProtectionStartEvents) UnmarshalBinary(data []byte) error {
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
	sf.Events = StartEvents(body[0] & 0x3f)
	sf.Qual = QualityDescriptor(body[1] & 0xf8)
	if sf.Duration, err = ParseCP16Time2a(body[2:4]); err != nil {
		return err
	}
	sf.Time = t
	return nil
}

// ProtectionOutputCircuits is the packed output circuit information of
// protection equipment with the relay operating time.
//
// Used by M_EP_TC_1 and M_EP_TF_1.
type ProtectionOutputCircuits struct {
	ID        TypeID
	Circuits  OutputCircuits
	Qual      QualityDescriptor
	Operating CP16Time2a
	Time      CP56Time2a
}

// TypeID returns the type identification.
func (sf *ProtectionOutputCircuits) TypeID() TypeID { return sf.ID }

func (sf *ProtectionOutputCircuits) check() error {
	switch sf.ID {
	case M_EP_TC_1, M_EP_TF_1:
		return nil
	}
	return fmt.Errorf("%w: %v is not packed output circuit information", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *ProtectionOutputCircuits) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	operating, err := sf.Operating.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b := append([]byte{byte(sf.Circuits) & 0x0f, byte(sf.Qual) & 0xf8}, operating...)
	return appendTimeTag(b, sf.ID, sf.Time)
}

// UnmarshalBinary decodes the information element payload.
func (sf *ProtectionOutputCircuits) UnmarshalBinary(data []byte) error {
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
	sf.Circuits = OutputCircuits(body[0] & 0x0f)
	sf.Qual = QualityDescriptor(body[1] & 0xf8)
	if sf.Operating, err = ParseCP16Time2a(body[2:4]); err != nil {
		return err
	}
	sf.Time = t
	return nil
}

// PackedSinglePoints is sixteen single points packed with change detection.
//
//	| status (16 bits, LE) | change detection (16 bits, LE) | QDS |
//
// Used by M_PS_NA_1.
type PackedSinglePoints struct {
	ID           TypeID
	Status       uint16
	ChangeDetect uint16
	Qual         QualityDescriptor
}

// TypeID returns the type identification.
func (sf *PackedSinglePoints) TypeID() TypeID { return sf.ID }

func (sf *PackedSinglePoints) check() error {
	if sf.ID == M_PS_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not packed single-point information", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *PackedSinglePoints) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	b := make([]byte, 5)
	binary.LittleEndian.PutUint16(b, sf.Status)
	binary.LittleEndian.PutUint16(b[2:], sf.ChangeDetect)
	b[4] = byte(sf.Qual) & 0xf0
	return b, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *PackedSinglePoints) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Status = binary.LittleEndian.Uint16(data)
	sf.ChangeDetect = binary.LittleEndian.Uint16(data[2:])
	sf.Qual = QualityDescriptor(data[4] & 0xf0)
	return nil
}

// EndOfInitialization signals the end of a station initialization.
//
//	| LPC | COI (7 bits) |
//
// COI 0 is a local power switch on, 1 a local manual reset, 2 a remote
// reset. Used by M_EI_NA_1.
type EndOfInitialization struct {
	ID          TypeID
	Cause       uint8 // 0..127
	LocalChange bool
}

// TypeID returns the type identification.
func (sf *EndOfInitialization) TypeID() TypeID { return sf.ID }

func (sf *EndOfInitialization) check() error {
	if sf.ID == M_EI_NA_1 {
		return nil
	}
	return fmt.Errorf("%w: %v is not end of initialization", ErrTypeMismatch, sf.ID)
}

// MarshalBinary encodes the information element payload.
func (sf *EndOfInitialization) MarshalBinary() ([]byte, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}
	if sf.Cause > 127 {
		return nil, fmt.Errorf("%w: cause of initialization %d", ErrValueRange, sf.Cause)
	}
	b := sf.Cause
	if sf.LocalChange {
		b |= 0x80
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the information element payload.
func (sf *EndOfInitialization) UnmarshalBinary(data []byte) error {
	if err := sf.check(); err != nil {
		return err
	}
	if err := checkRawLen(sf.ID, data); err != nil {
		return err
	}
	sf.Cause = data[0] & 0x7f
	sf.LocalChange = data[0]&0x80 != 0
	return nil
}
