// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package event

import (
	"bytes"
	"testing"

	"github.com/roboplc/iec60870-5/asdu"
	"github.com/roboplc/iec60870-5/cs101"
	"github.com/roboplc/iec60870-5/cs104"
)

func TestEventTelegram104I(t *testing.T) {
	ev := New(9, 100, asdu.Spontaneous,
		&asdu.MeasuredFloat{ID: asdu.M_ME_NC_1, Value: 2.5})

	tg, err := ev.Telegram104I()
	if err != nil {
		t.Fatalf("telegram: %v", err)
	}
	counter := cs104.NewChatSequenceCounter()
	tg.ApplyOutgoing(counter)

	var buf bytes.Buffer
	if err := tg.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := cs104.Read(&buf, asdu.ParamsWide)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	in, ok := got.(*cs104.ITelegram)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	if in.ASDU.Type != asdu.M_ME_NC_1 || in.ASDU.Coa.Cause != asdu.Spontaneous ||
		in.ASDU.CommonAddr != 9 {
		t.Fatalf("header: %s", in.ASDU)
	}
	v, err := in.ASDU.InfoValue(0)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	m := v.(*asdu.MeasuredFloat)
	if m.Value != 2.5 || in.ASDU.InfoObjs()[0].Addr != 100 {
		t.Errorf("decoded %+v at %d", m, in.ASDU.InfoObjs()[0].Addr)
	}
}

func TestEventTelegram101(t *testing.T) {
	cfg := cs101.DefaultConfig()
	ev := New(9, 100, asdu.Spontaneous,
		&asdu.SinglePoint{ID: asdu.M_SP_NA_1, Value: true})

	tg, err := ev.Telegram101(&cfg)
	if err != nil {
		t.Fatalf("telegram: %v", err)
	}
	if !tg.Ctrl.PRM || tg.Ctrl.Fun != cs101.PrimFcUserDataNoConf {
		t.Fatalf("control default: %v", tg.Ctrl)
	}

	var buf bytes.Buffer
	if err := tg.Write(&buf, &cfg); err != nil {
		t.Fatalf("write: %v", err)
	}

	back, err := cs101.ReadTelegram101(&buf, &cfg)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.LinkAddr != cfg.LinkAddress || back.ASDU == nil {
		t.Fatalf("got %+v", back)
	}
	var v asdu.SinglePoint
	v.ID = asdu.M_SP_NA_1
	if err := back.ASDU.ValueInto(0, &v); err != nil {
		t.Fatalf("value: %v", err)
	}
	if !v.Value {
		t.Errorf("decoded %+v", v)
	}
}

func TestEventAppendError(t *testing.T) {
	// a set-point qualifier out of range surfaces from the append
	ev := New(9, 1, asdu.Activation,
		&asdu.SetpointFloat{ID: asdu.C_SE_NC_1,
			Qos: asdu.QualifierOfSetpoint{Qual: 128}})
	if _, err := ev.ASDU(asdu.ParamsWide); err == nil {
		t.Error("qualifier out of range accepted")
	}
}
