// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"bytes"
	"errors"
	"testing"
)

func TestASDUMarshalWide(t *testing.T) {
	a := NewASDU(ParamsWide, C_IC_NA_1,
		CauseOfTransmission{Cause: Activation}, 0x0102)
	a.OrigAddr = 7
	err := a.AppendInfoObj(0x030201,
		&InterrogationCommand{ID: C_IC_NA_1, Qualifier: QOIStation})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	raw, err := a.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{100, 1, 6, 7, 0x02, 0x01, 0x01, 0x02, 0x03, 20}
	if !bytes.Equal(raw, want) {
		t.Errorf("got % X, want % X", raw, want)
	}
}

func TestASDUNarrowRoundTrip(t *testing.T) {
	a := NewASDU(ParamsNarrow, M_ME_NB_1,
		CauseOfTransmission{Cause: Spontaneous}, 0x0c)
	for _, obj := range []struct {
		addr  InfoObjAddr
		value int16
	}{
		{0x0100, -1}, {0x0200, 1000},
	} {
		err := a.AppendInfoObj(obj.addr,
			&MeasuredScaled{ID: M_ME_NB_1, Value: obj.value})
		if err != nil {
			t.Fatalf("append %d: %v", obj.addr, err)
		}
	}
	raw, err := a.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	b := NewEmptyASDU(ParamsNarrow)
	if err := b.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Type != M_ME_NB_1 || b.Sequence || b.Coa.Cause != Spontaneous ||
		b.OrigAddr != 0 || b.CommonAddr != 0x0c || b.InfoObjCount() != 2 {
		t.Fatalf("header mismatch: %s", b)
	}
	var v MeasuredScaled
	v.ID = M_ME_NB_1
	if err := b.ValueInto(1, &v); err != nil {
		t.Fatalf("value: %v", err)
	}
	if v.Value != 1000 || b.InfoObjs()[1].Addr != 0x0200 {
		t.Errorf("object mismatch: %+v at %d", v, b.InfoObjs()[1].Addr)
	}
}

func TestASDUSequence(t *testing.T) {
	a := NewASDU(ParamsWide, M_SP_NA_1,
		CauseOfTransmission{Cause: InterrogatedByStation}, 9)
	on := &SinglePoint{ID: M_SP_NA_1, Value: true}
	off := &SinglePoint{ID: M_SP_NA_1}
	if err := a.AppendInfoObjSeq(100, on, off, on); err != nil {
		t.Fatalf("append: %v", err)
	}
	raw, err := a.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if raw[1] != 0x83 {
		t.Errorf("vsq: got %#02x, want 0x83", raw[1])
	}
	// identifier plus one address plus three single octet elements
	if len(raw) != a.IdentifierSize()+3+3 {
		t.Errorf("length: got %d", len(raw))
	}

	b := NewEmptyASDU(ParamsWide)
	if err := b.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !b.Sequence || b.InfoObjCount() != 3 {
		t.Fatalf("sequence lost: %s", b)
	}
	for i, want := range []InfoObjAddr{100, 101, 102} {
		if got := b.InfoObjs()[i].Addr; got != want {
			t.Errorf("address %d: got %d, want %d", i, got, want)
		}
	}
	if err := b.AppendInfoObj(200, on); !errors.Is(err, ErrInfoObjAddr) {
		t.Errorf("individual append on sequence: got %v, want ErrInfoObjAddr", err)
	}
}

func TestASDUCountOverflow(t *testing.T) {
	a := NewASDU(ParamsWide, M_SP_NA_1,
		CauseOfTransmission{Cause: InterrogatedByStation}, 9)
	v := &SinglePoint{ID: M_SP_NA_1, Value: true}
	for i := 0; i < MaxInfoObj; i++ {
		if err := a.AppendInfoObj(InfoObjAddr(i), v); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := a.AppendInfoObj(MaxInfoObj, v); !errors.Is(err, ErrCountOverflow) {
		t.Errorf("got %v, want ErrCountOverflow", err)
	}
	if _, err := a.MarshalBinary(); err != nil {
		t.Errorf("marshal at capacity: %v", err)
	}
}

func TestASDUUnknownType(t *testing.T) {
	raw := []byte{200, 1, 6, 0, 0x0f, 0x00, 0x01, 0x00, 0x00, 0xff}
	a := NewEmptyASDU(ParamsWide)
	err := a.UnmarshalBinary(raw)
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("got %v, want ErrUnknownType", err)
	}
	// the header stays inspectable for the mirror reply
	if a.Type != TypeID(200) || a.Coa.Cause != Activation || a.CommonAddr != 0x0f {
		t.Fatalf("header not populated: %s", a)
	}

	reply := a.Reply(CauseOfTransmission{Cause: UnknownTypeID, Negative: true})
	got, err := reply.MarshalBinary()
	if err != nil {
		t.Fatalf("reply marshal: %v", err)
	}
	want := []byte{200, 0, 0xac, 0, 0x0f, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("reply: got % X, want % X", got, want)
	}
}

func TestASDUTypeMismatchOnAppend(t *testing.T) {
	a := NewASDU(ParamsWide, M_SP_NA_1,
		CauseOfTransmission{Cause: Spontaneous}, 9)
	err := a.AppendInfoObj(1, &DoublePoint{ID: M_DP_NA_1})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("got %v, want ErrTypeMismatch", err)
	}
}

func TestASDUStrictTime(t *testing.T) {
	p := &Params{WithOriginator: true, CommonAddrSize: 2, InfoObjAddrSize: 3, StrictTime: true}
	a := NewASDU(p, M_SP_TB_1, CauseOfTransmission{Cause: Spontaneous}, 9)
	v := &SinglePoint{ID: M_SP_TB_1, Value: true, Time: cp56Golden}
	if err := a.AppendInfoObj(1, v); err != nil {
		t.Fatalf("append: %v", err)
	}
	raw, err := a.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// flip a reserved bit inside the time tag of the only object
	raw[len(raw)-1] |= 0x80

	b := NewEmptyASDU(p)
	if err := b.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := b.InfoValue(0); !errors.Is(err, ErrTimeFormat) {
		t.Errorf("strict: got %v, want ErrTimeFormat", err)
	}

	b.StrictTime = false
	got, err := b.InfoValue(0)
	if err != nil {
		t.Fatalf("lenient: %v", err)
	}
	if sp := got.(*SinglePoint); !sp.Value || sp.Time != cp56Golden {
		t.Errorf("lenient decode: %+v", sp)
	}
}

func TestASDUAddrLimits(t *testing.T) {
	a := NewASDU(ParamsNarrow, C_SC_NA_1,
		CauseOfTransmission{Cause: Activation}, 0x1ff)
	v := &SingleCommand{ID: C_SC_NA_1, Value: true}
	if err := a.AppendInfoObj(0x10000, v); !errors.Is(err, ErrInfoObjAddr) {
		t.Errorf("object address: got %v, want ErrInfoObjAddr", err)
	}
	if err := a.AppendInfoObj(0xffff, v); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := a.MarshalBinary(); !errors.Is(err, ErrCommonAddr) {
		t.Errorf("common address: got %v, want ErrCommonAddr", err)
	}
}

func TestASDUDecodeLengths(t *testing.T) {
	if err := NewEmptyASDU(ParamsWide).UnmarshalBinary([]byte{1, 1, 3}); !errors.Is(err, ErrDecodeLength) {
		t.Errorf("short identifier: got %v, want ErrDecodeLength", err)
	}
	// one single point announced, payload truncated
	raw := []byte{1, 1, 3, 0, 9, 0, 0x01, 0x00, 0x00}
	if err := NewEmptyASDU(ParamsWide).UnmarshalBinary(raw); !errors.Is(err, ErrDecodeLength) {
		t.Errorf("truncated object: got %v, want ErrDecodeLength", err)
	}
	if err := NewEmptyASDU(ParamsWide).UnmarshalBinary([]byte{1, 1, 64, 0, 9, 0}); !errors.Is(err, ErrCause) {
		t.Errorf("cause range: got %v, want ErrCause", err)
	}
}
