// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"fmt"
)

// QualityDescriptor is the quality bits shared by the monitor direction
// elements.
//
//	| IV | NT | SB | BL | EI | RES | RES | OV |
//
// OV applies to measured values, EI to protection equipment only.
type QualityDescriptor byte

const (
	// QDSOverflow marks the value beyond a predefined range.
	QDSOverflow QualityDescriptor = 1 << 0
	// QDSElapsedTimeInvalid marks the elapsed time of a protection event
	// as unusable.
	QDSElapsedTimeInvalid QualityDescriptor = 1 << 3
	// QDSBlocked marks the value blocked for transmission.
	QDSBlocked QualityDescriptor = 1 << 4
	// QDSSubstituted marks the value provided by input of an operator.
	QDSSubstituted QualityDescriptor = 1 << 5
	// QDSNotTopical marks the value not updated during a configured interval.
	QDSNotTopical QualityDescriptor = 1 << 6
	// QDSInvalid marks the value unusable.
	QDSInvalid QualityDescriptor = 1 << 7

	// QDSGood means no flags, no problems.
	QDSGood QualityDescriptor = 0
)

// DoublePointState is a double-point information state.
type DoublePointState uint8

const (
	// DPIndeterminateOrIntermediate state
	DPIndeterminateOrIntermediate DoublePointState = iota
	// DPDeterminedOff state
	DPDeterminedOff
	// DPDeterminedOn state
	DPDeterminedOn
	// DPIndeterminate state
	DPIndeterminate
)

// StepCommandState is a regulating step command state.
type StepCommandState uint8

const (
	// StepNotAllowed0 is not permitted
	StepNotAllowed0 StepCommandState = iota
	// StepLower next step lower
	StepLower
	// StepHigher next step higher
	StepHigher
	// StepNotAllowed3 is not permitted
	StepNotAllowed3
)

// EventState is a protection equipment event state.
type EventState uint8

const (
	// EventIndeterminate0 state
	EventIndeterminate0 EventState = iota
	// EventOff state
	EventOff
	// EventOn state
	EventOn
	// EventIndeterminate3 state
	EventIndeterminate3
)

// StartEvents is the packed start events of protection equipment.
type StartEvents byte

const (
	// SEPGeneralStart of operation
	SEPGeneralStart StartEvents = 1 << iota
	// SEPStartL1 start of operation phase L1
	SEPStartL1
	// SEPStartL2 start of operation phase L2
	SEPStartL2
	// SEPStartL3 start of operation phase L3
	SEPStartL3
	// SEPStartEarthCurrent start of operation IE
	SEPStartEarthCurrent
	// SEPStartReverseDirection start of operation in reverse direction
	SEPStartReverseDirection
)

// OutputCircuits is the packed output circuit information of protection
// equipment.
type OutputCircuits byte

const (
	// OCGeneralCommand to output circuit
	OCGeneralCommand OutputCircuits = 1 << iota
	// OCCommandL1 to output circuit phase L1
	OCCommandL1
	// OCCommandL2 to output circuit phase L2
	OCCommandL2
	// OCCommandL3 to output circuit phase L3
	OCCommandL3
)

// QOCQual is the qualifier of command.
type QOCQual uint8

const (
	// QOCNoAdditionalDefinition no additional definition
	QOCNoAdditionalDefinition QOCQual = iota
	// QOCShortPulseDuration determined by a system parameter in the
	// outstation
	QOCShortPulseDuration
	// QOCLongPulseDuration determined by a system parameter in the
	// outstation
	QOCLongPulseDuration
	// QOCPersistentOutput circuit
	QOCPersistentOutput
	// 4..8: reserved for standard definitions
	// 9..15: reserved for other predefined functions
	// 16..31: available for special use
)

// QualifierOfCommand is the command qualifier octet minus the state bits.
//
//	| S/E | QU (5 bits) | state (2 bits) |
//
// S/E set selects, cleared executes.
type QualifierOfCommand struct {
	Qual   QOCQual // 0..31
	Select bool
}

// value packs the qualifier around the low state bits.
func (sf QualifierOfCommand) value(state byte) (byte, error) {
	if sf.Qual > 31 {
		return 0, fmt.Errorf("%w: command qualifier %d", ErrValueRange, sf.Qual)
	}
	b := byte(sf.Qual)<<2 | state&0x03
	if sf.Select {
		b |= 0x80
	}
	return b, nil
}

// parseQualifierOfCommand unpacks the qualifier of a command octet.
func parseQualifierOfCommand(b byte) QualifierOfCommand {
	return QualifierOfCommand{
		Qual:   QOCQual(b >> 2 & 0x1f),
		Select: b&0x80 != 0,
	}
}

// QualifierOfSetpoint is the set-point command qualifier octet.
//
//	| S/E | QL (7 bits) |
//
// QL zero is the default; 1..63 are reserved, 64..127 for special use.
type QualifierOfSetpoint struct {
	Qual   uint8 // 0..127
	Select bool
}

func (sf QualifierOfSetpoint) value() (byte, error) {
	if sf.Qual > 127 {
		return 0, fmt.Errorf("%w: set-point qualifier %d", ErrValueRange, sf.Qual)
	}
	b := sf.Qual
	if sf.Select {
		b |= 0x80
	}
	return b, nil
}

func parseQualifierOfSetpoint(b byte) QualifierOfSetpoint {
	return QualifierOfSetpoint{Qual: b & 0x7f, Select: b&0x80 != 0}
}

// ParamKind is the kind of parameter field of the QPM qualifier.
type ParamKind uint8

const (
	// ParamKindUnused not used
	ParamKindUnused ParamKind = iota
	// ParamKindThreshold threshold value
	ParamKindThreshold
	// ParamKindSmoothing smoothing factor (filter time constant)
	ParamKindSmoothing
	// ParamKindLowLimit low limit for transmission of measured values
	ParamKindLowLimit
	// ParamKindHighLimit high limit for transmission of measured values
	ParamKindHighLimit
	// 5..31: reserved for standard definitions
	// 32..63: available for special use
)

// QualifierOfParam is the qualifier of parameter of measured values.
//
//	| POP | LPC | KPA (6 bits) |
//
// LPC flags a local parameter change, POP flags the parameter as not in
// operation.
type QualifierOfParam struct {
	Kind           ParamKind // 0..63
	Change         bool
	NotInOperation bool
}

func (sf QualifierOfParam) value() (byte, error) {
	if sf.Kind > 63 {
		return 0, fmt.Errorf("%w: parameter kind %d", ErrValueRange, sf.Kind)
	}
	b := byte(sf.Kind)
	if sf.Change {
		b |= 0x40
	}
	if sf.NotInOperation {
		b |= 0x80
	}
	return b, nil
}

func parseQualifierOfParam(b byte) QualifierOfParam {
	return QualifierOfParam{
		Kind:           ParamKind(b & 0x3f),
		Change:         b&0x40 != 0,
		NotInOperation: b&0x80 != 0,
	}
}
