// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"fmt"
)

// InfoValue is a decoded information element payload. Implementations are
// the structural families; the type identification carried by the value
// selects the time tag suffix.
type InfoValue interface {
	TypeID() TypeID
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// timeTag selects the trailing time tag of a type identification.
type timeTag uint8

const (
	tagNone timeTag = iota
	tagCP24
	tagCP56
)

type catalogueEntry struct {
	size  int
	tag   timeTag
	fresh func(id TypeID) InfoValue
}

// One constructor per structural family.
var (
	freshSinglePoint = func(id TypeID) InfoValue { return &SinglePoint{ID: id} }
	freshDoublePoint = func(id TypeID) InfoValue { return &DoublePoint{ID: id} }
	freshStepPos     = func(id TypeID) InfoValue { return &StepPosition{ID: id} }
	freshBitstring   = func(id TypeID) InfoValue { return &Bitstring32{ID: id} }
	freshNormal      = func(id TypeID) InfoValue { return &MeasuredNormalized{ID: id} }
	freshScaled      = func(id TypeID) InfoValue { return &MeasuredScaled{ID: id} }
	freshFloat       = func(id TypeID) InfoValue { return &MeasuredFloat{ID: id} }
	freshTotals      = func(id TypeID) InfoValue { return &IntegratedTotals{ID: id} }
	freshProtEvent   = func(id TypeID) InfoValue { return &ProtectionEvent{ID: id} }
	freshProtStart   = func(id TypeID) InfoValue { return &ProtectionStartEvents{ID: id} }
	freshProtOutput  = func(id TypeID) InfoValue { return &ProtectionOutputCircuits{ID: id} }
	freshPacked      = func(id TypeID) InfoValue { return &PackedSinglePoints{ID: id} }
	freshEndOfInit   = func(id TypeID) InfoValue { return &EndOfInitialization{ID: id} }
	freshSingleCmd   = func(id TypeID) InfoValue { return &SingleCommand{ID: id} }
	freshDoubleCmd   = func(id TypeID) InfoValue { return &DoubleCommand{ID: id} }
	freshStepCmd     = func(id TypeID) InfoValue { return &StepCommand{ID: id} }
	freshSetNormal   = func(id TypeID) InfoValue { return &SetpointNormalized{ID: id} }
	freshSetScaled   = func(id TypeID) InfoValue { return &SetpointScaled{ID: id} }
	freshSetFloat    = func(id TypeID) InfoValue { return &SetpointFloat{ID: id} }
	freshBitsCmd     = func(id TypeID) InfoValue { return &BitstringCommand{ID: id} }
	freshInterro     = func(id TypeID) InfoValue { return &InterrogationCommand{ID: id} }
	freshCntInterro  = func(id TypeID) InfoValue { return &CounterInterrogationCommand{ID: id} }
	freshRead        = func(id TypeID) InfoValue { return &ReadCommand{ID: id} }
	freshClockSync   = func(id TypeID) InfoValue { return &ClockSyncCommand{ID: id} }
	freshTest        = func(id TypeID) InfoValue { return &TestCommand{ID: id} }
	freshReset       = func(id TypeID) InfoValue { return &ResetProcessCommand{ID: id} }
	freshDelay       = func(id TypeID) InfoValue { return &DelayAcquireCommand{ID: id} }
	freshTest56      = func(id TypeID) InfoValue { return &TestCommandCP56{ID: id} }
	freshParamNormal = func(id TypeID) InfoValue { return &ParameterNormalized{ID: id} }
	freshParamScaled = func(id TypeID) InfoValue { return &ParameterScaled{ID: id} }
	freshParamFloat  = func(id TypeID) InfoValue { return &ParameterFloat{ID: id} }
	freshParamAct    = func(id TypeID) InfoValue { return &ParameterActivation{ID: id} }
)

// catalogue fixes the encoded payload size and time tag suffix per type
// identification.
var catalogue = map[TypeID]catalogueEntry{
	M_SP_NA_1: {1, tagNone, freshSinglePoint},
	M_SP_TA_1: {4, tagCP24, freshSinglePoint},
	M_SP_TB_1: {8, tagCP56, freshSinglePoint},
	M_DP_NA_1: {1, tagNone, freshDoublePoint},
	M_DP_TA_1: {4, tagCP24, freshDoublePoint},
	M_DP_TB_1: {8, tagCP56, freshDoublePoint},
	M_ST_NA_1: {2, tagNone, freshStepPos},
	M_ST_TA_1: {5, tagCP24, freshStepPos},
	M_ST_TB_1: {9, tagCP56, freshStepPos},
	M_BO_NA_1: {5, tagNone, freshBitstring},
	M_BO_TA_1: {8, tagCP24, freshBitstring},
	M_BO_TB_1: {12, tagCP56, freshBitstring},
	M_ME_NA_1: {3, tagNone, freshNormal},
	M_ME_TA_1: {6, tagCP24, freshNormal},
	M_ME_TD_1: {10, tagCP56, freshNormal},
	M_ME_ND_1: {2, tagNone, freshNormal},
	M_ME_NB_1: {3, tagNone, freshScaled},
	M_ME_TB_1: {6, tagCP24, freshScaled},
	M_ME_TE_1: {10, tagCP56, freshScaled},
	M_ME_NC_1: {5, tagNone, freshFloat},
	M_ME_TC_1: {8, tagCP24, freshFloat},
	M_ME_TF_1: {12, tagCP56, freshFloat},
	M_IT_NA_1: {5, tagNone, freshTotals},
	M_IT_TA_1: {8, tagCP24, freshTotals},
	M_IT_TB_1: {12, tagCP56, freshTotals},
	M_EP_TA_1: {6, tagCP24, freshProtEvent},
	M_EP_TD_1: {10, tagCP56, freshProtEvent},
	M_EP_TB_1: {7, tagCP24, freshProtStart},
	M_EP_TE_1: {11, tagCP56, freshProtStart},
	M_EP_TC_1: {7, tagCP24, freshProtOutput},
	M_EP_TF_1: {11, tagCP56, freshProtOutput},
	M_PS_NA_1: {5, tagNone, freshPacked},
	M_EI_NA_1: {1, tagNone, freshEndOfInit},

	C_SC_NA_1: {1, tagNone, freshSingleCmd},
	C_SC_TA_1: {8, tagCP56, freshSingleCmd},
	C_DC_NA_1: {1, tagNone, freshDoubleCmd},
	C_DC_TA_1: {8, tagCP56, freshDoubleCmd},
	C_RC_NA_1: {1, tagNone, freshStepCmd},
	C_RC_TA_1: {8, tagCP56, freshStepCmd},
	C_SE_NA_1: {3, tagNone, freshSetNormal},
	C_SE_TA_1: {10, tagCP56, freshSetNormal},
	C_SE_NB_1: {3, tagNone, freshSetScaled},
	C_SE_TB_1: {10, tagCP56, freshSetScaled},
	C_SE_NC_1: {5, tagNone, freshSetFloat},
	C_SE_TC_1: {12, tagCP56, freshSetFloat},
	C_BO_NA_1: {4, tagNone, freshBitsCmd},
	C_BO_TA_1: {11, tagCP56, freshBitsCmd},

	C_IC_NA_1: {1, tagNone, freshInterro},
	C_CI_NA_1: {1, tagNone, freshCntInterro},
	C_RD_NA_1: {0, tagNone, freshRead},
	C_CS_NA_1: {7, tagCP56, freshClockSync},
	C_TS_NA_1: {2, tagNone, freshTest},
	C_RP_NA_1: {1, tagNone, freshReset},
	C_CD_NA_1: {2, tagNone, freshDelay},
	C_TS_TA_1: {9, tagCP56, freshTest56},

	P_ME_NA_1: {3, tagNone, freshParamNormal},
	P_ME_NB_1: {3, tagNone, freshParamScaled},
	P_ME_NC_1: {5, tagNone, freshParamFloat},
	P_AC_NA_1: {1, tagNone, freshParamAct},
}

// InfoLen returns the encoded information element size in octets for the
// type identification.
func InfoLen(id TypeID) (int, error) {
	e, ok := catalogue[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownType, uint8(id))
	}
	return e.size, nil
}

// DecodeInfoValue decodes one information element payload of the given
// type identification.
func DecodeInfoValue(id TypeID, raw []byte) (InfoValue, error) {
	e, ok := catalogue[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(id))
	}
	v := e.fresh(id)
	if err := v.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return v, nil
}

func timeTagOf(id TypeID) timeTag {
	return catalogue[id].tag
}

// appendTimeTag appends the time suffix selected by id. Short-tag variants
// carry the minute fields of t only.
func appendTimeTag(dst []byte, id TypeID, t CP56Time2a) ([]byte, error) {
	switch timeTagOf(id) {
	case tagCP24:
		b, err := t.shortTag().MarshalBinary()
		if err != nil {
			return nil, err
		}
		return append(dst, b...), nil
	case tagCP56:
		b, err := t.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return append(dst, b...), nil
	}
	return dst, nil
}

// splitTimeTag strips and decodes the time suffix selected by id.
func splitTimeTag(raw []byte, id TypeID) ([]byte, CP56Time2a, error) {
	switch timeTagOf(id) {
	case tagCP24:
		n := len(raw) - 3
		if n < 0 {
			return nil, CP56Time2a{}, fmt.Errorf("%w: %v too short for its time tag", ErrDecodeLength, id)
		}
		t, err := ParseCP24Time2a(raw[n:], false)
		if err != nil {
			return nil, CP56Time2a{}, err
		}
		return raw[:n], cp56FromShort(t), nil
	case tagCP56:
		n := len(raw) - 7
		if n < 0 {
			return nil, CP56Time2a{}, fmt.Errorf("%w: %v too short for its time tag", ErrDecodeLength, id)
		}
		t, err := ParseCP56Time2a(raw[n:], false)
		if err != nil {
			return nil, CP56Time2a{}, err
		}
		return raw[:n], t, nil
	}
	return raw, CP56Time2a{}, nil
}

// checkTimeTagStrict re-validates the reserved bits of the trailing time
// tag of an already sized payload.
func checkTimeTagStrict(id TypeID, raw []byte) error {
	switch timeTagOf(id) {
	case tagCP24:
		if n := len(raw) - 3; n >= 0 {
			_, err := ParseCP24Time2a(raw[n:], true)
			return err
		}
	case tagCP56:
		if n := len(raw) - 7; n >= 0 {
			_, err := ParseCP56Time2a(raw[n:], true)
			return err
		}
	}
	return nil
}

// checkRawLen verifies a payload against the catalogue size.
func checkRawLen(id TypeID, raw []byte) error {
	n, err := InfoLen(id)
	if err != nil {
		return err
	}
	if len(raw) != n {
		return fmt.Errorf("%w: %v wants %d octets, have %d", ErrDecodeLength, id, n, len(raw))
	}
	return nil
}
