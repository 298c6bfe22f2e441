// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"fmt"
)

// Cause is the cause of transmission.
type Cause uint8

// Cause of transmission values. 14 to 19 and 42 to 43 are reserved,
// 48 to 63 are available for special use.
const (
	Unused                Cause = 0
	Periodic              Cause = 1
	Background            Cause = 2
	Spontaneous           Cause = 3
	Initialized           Cause = 4
	Request               Cause = 5
	Activation            Cause = 6
	ActivationCon         Cause = 7
	Deactivation          Cause = 8
	DeactivationCon       Cause = 9
	ActivationTerm        Cause = 10
	ReturnInfoRemote      Cause = 11
	ReturnInfoLocal       Cause = 12
	FileTransfer          Cause = 13
	InterrogatedByStation Cause = 20
	InterrogatedByGroup1  Cause = 21
	InterrogatedByGroup2  Cause = 22
	InterrogatedByGroup3  Cause = 23
	InterrogatedByGroup4  Cause = 24
	InterrogatedByGroup5  Cause = 25
	InterrogatedByGroup6  Cause = 26
	InterrogatedByGroup7  Cause = 27
	InterrogatedByGroup8  Cause = 28
	InterrogatedByGroup9  Cause = 29
	InterrogatedByGroup10 Cause = 30
	InterrogatedByGroup11 Cause = 31
	InterrogatedByGroup12 Cause = 32
	InterrogatedByGroup13 Cause = 33
	InterrogatedByGroup14 Cause = 34
	InterrogatedByGroup15 Cause = 35
	InterrogatedByGroup16 Cause = 36
	RequestByGenCounter   Cause = 37
	RequestByGroup1       Cause = 38
	RequestByGroup2       Cause = 39
	RequestByGroup3       Cause = 40
	RequestByGroup4       Cause = 41
	UnknownTypeID         Cause = 44
	UnknownCOT            Cause = 45
	UnknownCA             Cause = 46
	UnknownIOA            Cause = 47
)

// maxCause is the highest encodable cause value.
const maxCause Cause = 63

// CauseOfTransmission is the one-octet cause field of the ASDU identifier.
//
//	| P/N | cause (7 bits) |
//
// P/N set marks a negative confirmation.
type CauseOfTransmission struct {
	Cause    Cause
	Negative bool
}

// ParseCauseOf decodes the cause octet. Values outside the standard table
// are rejected.
func ParseCauseOf(b byte) (CauseOfTransmission, error) {
	c := Cause(b & 0x7f)
	if c > maxCause {
		return CauseOfTransmission{}, fmt.Errorf("%w: %d", ErrCause, uint8(c))
	}
	return CauseOfTransmission{Cause: c, Negative: b&0x80 != 0}, nil
}

// Value encodes the cause octet.
func (sf CauseOfTransmission) Value() byte {
	b := byte(sf.Cause) & 0x7f
	if sf.Negative {
		b |= 0x80
	}
	return b
}
