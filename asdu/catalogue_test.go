// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestInfoLen(t *testing.T) {
	cases := []struct {
		id   TypeID
		want int
	}{
		{M_SP_NA_1, 1}, {M_SP_TA_1, 4}, {M_SP_TB_1, 8},
		{M_ST_NA_1, 2}, {M_ST_TB_1, 9},
		{M_ME_NC_1, 5}, {M_ME_TF_1, 12}, {M_ME_ND_1, 2},
		{M_EP_TB_1, 7}, {M_EP_TE_1, 11}, {M_PS_NA_1, 5},
		{C_SC_NA_1, 1}, {C_RC_TA_1, 8}, {C_SE_TC_1, 12},
		{C_RD_NA_1, 0}, {C_CS_NA_1, 7}, {C_TS_TA_1, 9},
		{P_ME_NC_1, 5}, {P_AC_NA_1, 1},
	}
	for _, c := range cases {
		got, err := InfoLen(c.id)
		if err != nil {
			t.Errorf("%v: %v", c.id, err)
			continue
		}
		if got != c.want {
			t.Errorf("%v: got %d, want %d", c.id, got, c.want)
		}
	}
	if _, err := InfoLen(TypeID(200)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type: got %v, want ErrUnknownType", err)
	}
}

func TestMonitorElementOctets(t *testing.T) {
	cases := []struct {
		name string
		v    InfoValue
		want []byte
	}{
		{
			"single point on, invalid+blocked",
			&SinglePoint{ID: M_SP_NA_1, Value: true, Qual: QDSInvalid | QDSBlocked},
			[]byte{0x91},
		},
		{
			"double point on, not topical",
			&DoublePoint{ID: M_DP_NA_1, Value: DPDeterminedOn, Qual: QDSNotTopical},
			[]byte{0x42},
		},
		{
			"step position negative transient",
			&StepPosition{ID: M_ST_NA_1, Value: -5, Transient: true},
			[]byte{0xfb, 0x00},
		},
		{
			"bitstring with overflow quality",
			&Bitstring32{ID: M_BO_NA_1, Value: 0x01020304, Qual: QDSOverflow},
			[]byte{0x04, 0x03, 0x02, 0x01, 0x01},
		},
		{
			"normalized without quality",
			&MeasuredNormalized{ID: M_ME_ND_1, Value: -2},
			[]byte{0xfe, 0xff},
		},
		{
			"scaled with substituted quality",
			&MeasuredScaled{ID: M_ME_NB_1, Value: 1000, Qual: QDSSubstituted},
			[]byte{0xe8, 0x03, 0x20},
		},
		{
			"float one",
			&MeasuredFloat{ID: M_ME_NC_1, Value: 1.0},
			[]byte{0x00, 0x00, 0x80, 0x3f, 0x00},
		},
		{
			"integrated totals flags",
			&IntegratedTotals{ID: M_IT_NA_1, Count: 256, SeqNumber: 3, Carry: true, Invalid: true},
			[]byte{0x00, 0x01, 0x00, 0x00, 0xa3},
		},
		{
			"packed single points",
			&PackedSinglePoints{ID: M_PS_NA_1, Status: 0x00ff, ChangeDetect: 0x0001, Qual: QDSBlocked},
			[]byte{0xff, 0x00, 0x01, 0x00, 0x10},
		},
		{
			"end of init remote reset after change",
			&EndOfInitialization{ID: M_EI_NA_1, Cause: 2, LocalChange: true},
			[]byte{0x82},
		},
	}
	for _, c := range cases {
		got, err := c.v.MarshalBinary()
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("%s: got % X, want % X", c.name, got, c.want)
		}
		back, err := DecodeInfoValue(c.v.TypeID(), c.want)
		if err != nil {
			t.Errorf("%s: decode: %v", c.name, err)
			continue
		}
		if !reflect.DeepEqual(back, c.v) {
			t.Errorf("%s: round trip got %+v, want %+v", c.name, back, c.v)
		}
	}
}

func TestCommandOctets(t *testing.T) {
	cases := []struct {
		name string
		v    InfoValue
		want []byte
	}{
		{
			"single command select short pulse on",
			&SingleCommand{ID: C_SC_NA_1, Value: true,
				Qual: QualifierOfCommand{Qual: QOCShortPulseDuration, Select: true}},
			[]byte{0x85},
		},
		{
			"double command execute long pulse off",
			&DoubleCommand{ID: C_DC_NA_1, Value: DPDeterminedOff,
				Qual: QualifierOfCommand{Qual: QOCLongPulseDuration}},
			[]byte{0x09},
		},
		{
			"step command execute persistent higher",
			&StepCommand{ID: C_RC_NA_1, Value: StepHigher,
				Qual: QualifierOfCommand{Qual: QOCPersistentOutput}},
			[]byte{0x0e},
		},
		{
			"float setpoint select",
			&SetpointFloat{ID: C_SE_NC_1, Value: 1.0,
				Qos: QualifierOfSetpoint{Select: true}},
			[]byte{0x00, 0x00, 0x80, 0x3f, 0x80},
		},
		{
			"normalized setpoint execute",
			&SetpointNormalized{ID: C_SE_NA_1, Value: -1},
			[]byte{0xff, 0xff, 0x00},
		},
		{
			"bitstring command",
			&BitstringCommand{ID: C_BO_NA_1, Value: 0xdeadbeef},
			[]byte{0xef, 0xbe, 0xad, 0xde},
		},
		{
			"interrogation station",
			&InterrogationCommand{ID: C_IC_NA_1, Qualifier: QOIStation},
			[]byte{0x14},
		},
		{
			"counter interrogation general freeze+reset",
			&CounterInterrogationCommand{ID: C_CI_NA_1, Request: QCCGeneral, Freeze: FRZFreezeReset},
			[]byte{0x85},
		},
		{
			"read command is empty",
			&ReadCommand{ID: C_RD_NA_1},
			[]byte{},
		},
		{
			"reset process general",
			&ResetProcessCommand{ID: C_RP_NA_1, Qualifier: QRPGeneral},
			[]byte{0x01},
		},
		{
			"delay acquisition",
			&DelayAcquireCommand{ID: C_CD_NA_1, Delay: 500},
			[]byte{0xf4, 0x01},
		},
		{
			"parameter threshold with local change",
			&ParameterNormalized{ID: P_ME_NA_1, Value: 1000,
				Qpm: QualifierOfParam{Kind: ParamKindThreshold, Change: true}},
			[]byte{0xe8, 0x03, 0x41},
		},
		{
			"parameter activation general",
			&ParameterActivation{ID: P_AC_NA_1, Qualifier: QPAGeneral},
			[]byte{0x01},
		},
	}
	for _, c := range cases {
		got, err := c.v.MarshalBinary()
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("%s: got % X, want % X", c.name, got, c.want)
		}
		back, err := DecodeInfoValue(c.v.TypeID(), c.want)
		if err != nil {
			t.Errorf("%s: decode: %v", c.name, err)
			continue
		}
		if !reflect.DeepEqual(back, c.v) {
			t.Errorf("%s: round trip got %+v, want %+v", c.name, back, c.v)
		}
	}
}

func TestTestCommandPattern(t *testing.T) {
	raw, err := (&TestCommand{ID: C_TS_NA_1}).MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(raw, []byte{0xaa, 0x55}) {
		t.Errorf("got % X, want AA 55", raw)
	}

	var tc TestCommand
	tc.ID = C_TS_NA_1
	if err := tc.UnmarshalBinary(raw); err != nil || !tc.Valid {
		t.Errorf("pattern match: %+v, %v", tc, err)
	}
	if err := tc.UnmarshalBinary([]byte{0x00, 0x55}); err != nil || tc.Valid {
		t.Errorf("pattern mismatch not flagged: %+v, %v", tc, err)
	}
}

func TestTestCommandCP56CounterBigEndian(t *testing.T) {
	v := &TestCommandCP56{ID: C_TS_TA_1, Counter: 0x1234, Time: cp56Golden}
	raw, err := v.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := append([]byte{0x12, 0x34}, cp56GoldenRaw...)
	if !bytes.Equal(raw, want) {
		t.Errorf("got % X, want % X", raw, want)
	}
	back, err := DecodeInfoValue(C_TS_TA_1, raw)
	if err != nil || !reflect.DeepEqual(back, v) {
		t.Errorf("round trip got %+v, %v", back, err)
	}
}

func TestTimeTaggedRoundTrips(t *testing.T) {
	shortTime := CP56Time2a{Millisecond: 1500, Minute: 7}
	cases := []InfoValue{
		&SinglePoint{ID: M_SP_TA_1, Value: true, Time: shortTime},
		&SinglePoint{ID: M_SP_TB_1, Value: true, Qual: QDSInvalid, Time: cp56Golden},
		&DoublePoint{ID: M_DP_TB_1, Value: DPIndeterminate, Time: cp56Golden},
		&StepPosition{ID: M_ST_TB_1, Value: 63, Qual: QDSBlocked, Time: cp56Golden},
		&MeasuredNormalized{ID: M_ME_TA_1, Value: 12345, Time: shortTime},
		&MeasuredFloat{ID: M_ME_TF_1, Value: -2.5, Qual: QDSOverflow, Time: cp56Golden},
		&IntegratedTotals{ID: M_IT_TB_1, Count: -1, SeqNumber: 31, Time: cp56Golden},
		&ProtectionEvent{ID: M_EP_TA_1, State: EventOn, Qual: QDSElapsedTimeInvalid, Elapsed: 120, Time: shortTime},
		&ProtectionStartEvents{ID: M_EP_TE_1, Events: SEPGeneralStart | SEPStartL2, Duration: 55, Time: cp56Golden},
		&ProtectionOutputCircuits{ID: M_EP_TC_1, Circuits: OCGeneralCommand, Operating: 30, Time: shortTime},
		&SingleCommand{ID: C_SC_TA_1, Value: true, Time: cp56Golden},
		&SetpointScaled{ID: C_SE_TB_1, Value: -300, Time: cp56Golden},
		&BitstringCommand{ID: C_BO_TA_1, Value: 7, Time: cp56Golden},
		&ClockSyncCommand{ID: C_CS_NA_1, Time: cp56Golden},
	}
	for _, v := range cases {
		raw, err := v.MarshalBinary()
		if err != nil {
			t.Errorf("%v: marshal: %v", v.TypeID(), err)
			continue
		}
		if err := checkRawLen(v.TypeID(), raw); err != nil {
			t.Errorf("%v: %v", v.TypeID(), err)
			continue
		}
		back, err := DecodeInfoValue(v.TypeID(), raw)
		if err != nil {
			t.Errorf("%v: decode: %v", v.TypeID(), err)
			continue
		}
		if !reflect.DeepEqual(back, v) {
			t.Errorf("%v: round trip got %+v, want %+v", v.TypeID(), back, v)
		}
	}
}

func TestFamilyTypeMismatch(t *testing.T) {
	if _, err := (&SinglePoint{ID: M_DP_NA_1}).MarshalBinary(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("marshal: got %v, want ErrTypeMismatch", err)
	}
	v := &StepCommand{ID: C_RC_NA_1}
	if err := (&SingleCommand{ID: C_RC_NA_1}).UnmarshalBinary([]byte{0}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("unmarshal: got %v, want ErrTypeMismatch", err)
	}
	if err := v.UnmarshalBinary([]byte{0x0e}); err != nil {
		t.Errorf("step command decode: %v", err)
	}
}

func TestUnmarshalLengthMismatch(t *testing.T) {
	if err := (&SinglePoint{ID: M_SP_NA_1}).UnmarshalBinary([]byte{0, 0}); !errors.Is(err, ErrDecodeLength) {
		t.Errorf("got %v, want ErrDecodeLength", err)
	}
	if err := (&MeasuredFloat{ID: M_ME_TF_1}).UnmarshalBinary(make([]byte, 11)); !errors.Is(err, ErrDecodeLength) {
		t.Errorf("got %v, want ErrDecodeLength", err)
	}
}

func TestMarshalValueRange(t *testing.T) {
	if _, err := (&IntegratedTotals{ID: M_IT_NA_1, SeqNumber: 32}).MarshalBinary(); !errors.Is(err, ErrValueRange) {
		t.Errorf("counter sequence: got %v, want ErrValueRange", err)
	}
	bad := &SingleCommand{ID: C_SC_NA_1, Qual: QualifierOfCommand{Qual: 32}}
	if _, err := bad.MarshalBinary(); !errors.Is(err, ErrValueRange) {
		t.Errorf("command qualifier: got %v, want ErrValueRange", err)
	}
	if _, err := (&CounterInterrogationCommand{ID: C_CI_NA_1, Freeze: 4}).MarshalBinary(); !errors.Is(err, ErrValueRange) {
		t.Errorf("freeze: got %v, want ErrValueRange", err)
	}
}
