// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"bytes"
	"errors"
	"testing"

	"github.com/roboplc/iec60870-5/asdu"
)

func TestUTelegramGolden(t *testing.T) {
	cases := []struct {
		name string
		u    *UTelegram
		ctrl byte
	}{
		{"startdt act", NewStartDT(), 0x07},
		{"startdt con", NewStartDTCon(), 0x0b},
		{"stopdt act", NewStopDT(), 0x13},
		{"stopdt con", NewStopDTCon(), 0x23},
		{"testfr act", NewTestFrame(), 0x43},
		{"testfr con", NewTestFrameCon(), 0x83},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := c.u.Write(&buf); err != nil {
			t.Errorf("%s: write: %v", c.name, err)
			continue
		}
		want := []byte{0x68, 0x04, c.ctrl, 0x00, 0x00, 0x00}
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("%s: got % X, want % X", c.name, buf.Bytes(), want)
		}

		got, err := Read(&buf, asdu.ParamsWide)
		if err != nil {
			t.Errorf("%s: read: %v", c.name, err)
			continue
		}
		u, ok := got.(*UTelegram)
		if !ok || u.Function != c.u.Function || u.Confirm != c.u.Confirm {
			t.Errorf("%s: round trip got %#v", c.name, got)
		}
	}
}

func TestSTelegramGolden(t *testing.T) {
	s := NewSTelegram()
	c := NewChatSequenceCounter()
	for i := 0; i < 5; i++ {
		if err := c.ValidateIncoming(uint16(i)); err != nil {
			t.Fatalf("validate %d: %v", i, err)
		}
	}
	s.ApplyOutgoing(c)

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{0x68, 0x04, 0x01, 0x00, 0x0a, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % X, want % X", buf.Bytes(), want)
	}

	got, err := Read(&buf, asdu.ParamsWide)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if s2, ok := got.(*STelegram); !ok || s2.RecvSN != 5 {
		t.Errorf("round trip got %#v", got)
	}
}

func TestITelegramChat(t *testing.T) {
	a := asdu.NewASDU(asdu.ParamsWide, asdu.C_RC_TA_1,
		asdu.CauseOfTransmission{Cause: asdu.Activation}, 15)
	cmd := &asdu.StepCommand{
		ID:    asdu.C_RC_TA_1,
		Value: asdu.StepHigher,
		Qual:  asdu.QualifierOfCommand{Qual: asdu.QOCPersistentOutput},
		Time: asdu.CP56Time2a{
			Millisecond: 56789, Minute: 34, Hour: 18,
			Day: 30, DayOfWeek: 2, Month: 7, Year: 24, SummerTime: true,
		},
	}
	if err := a.AppendInfoObj(11, cmd); err != nil {
		t.Fatalf("append: %v", err)
	}

	sender := NewChatSequenceCounter()
	tg := NewITelegram(a)
	tg.ApplyOutgoing(sender)
	if tg.SendSN != 0 || sender.CurrentTX() != 1 {
		t.Fatalf("outgoing stamp: send=%d tx=%d", tg.SendSN, sender.CurrentTX())
	}

	var buf bytes.Buffer
	if err := tg.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{
		0x68, 0x15, 0x00, 0x00, 0x00, 0x00,
		0x3c, 0x01, 0x06, 0x00, 0x0f, 0x00,
		0x0b, 0x00, 0x00,
		0x0e,
		0xd5, 0xdd, 0x22, 0x92, 0x5e, 0x07, 0x18,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X, want % X", buf.Bytes(), want)
	}

	receiver := NewChatSequenceCounter()
	got, err := Read(&buf, asdu.ParamsWide)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	in, ok := got.(*ITelegram)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	if err := in.ValidateIncoming(receiver); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if receiver.CurrentRX() != 1 {
		t.Errorf("rx: got %d, want 1", receiver.CurrentRX())
	}

	var back asdu.StepCommand
	back.ID = asdu.C_RC_TA_1
	if err := in.ASDU.ValueInto(0, &back); err != nil {
		t.Fatalf("value: %v", err)
	}
	if back.Value != asdu.StepHigher || back.Qual.Qual != asdu.QOCPersistentOutput ||
		back.Time != cmd.Time {
		t.Errorf("decoded %+v", back)
	}
}

func TestITelegramSeqRange(t *testing.T) {
	a := asdu.NewASDU(asdu.ParamsWide, asdu.C_IC_NA_1,
		asdu.CauseOfTransmission{Cause: asdu.Activation}, 1)
	if err := a.AppendInfoObj(0, &asdu.InterrogationCommand{ID: asdu.C_IC_NA_1, Qualifier: asdu.QOIStation}); err != nil {
		t.Fatalf("append: %v", err)
	}
	tg := NewITelegram(a)
	tg.SendSN = seqMod
	var buf bytes.Buffer
	if err := tg.Write(&buf); !errors.Is(err, ErrSeqRange) {
		t.Errorf("got %v, want ErrSeqRange", err)
	}
}

func TestReadFormatErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want error
	}{
		{"bad start", []byte{0x69, 0x04, 0x07, 0x00, 0x00, 0x00}, ErrFormat},
		{"short length", []byte{0x68, 0x03, 0x07, 0x00, 0x00}, ErrFormat},
		{"unknown control", []byte{0x68, 0x04, 0x05, 0x00, 0x00, 0x00}, ErrUnknownControl},
		{"u with trailing octets", []byte{0x68, 0x04, 0x07, 0x00, 0x01, 0x00}, ErrFormat},
		{"s with payload", []byte{0x68, 0x05, 0x01, 0x00, 0x00, 0x00, 0xff}, ErrFormat},
		{"i without asdu", []byte{0x68, 0x04, 0x00, 0x00, 0x00, 0x00}, ErrFormat},
	}
	for _, c := range cases {
		if _, err := Read(bytes.NewReader(c.raw), asdu.ParamsWide); !errors.Is(err, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}

func TestReadBadASDUKeepsEnvelope(t *testing.T) {
	// type identification 200 is not in the catalogue
	raw := []byte{0x68, 0x0a, 0x02, 0x00, 0x00, 0x00,
		200, 0x01, 0x06, 0x00, 0x09, 0x00}
	got, err := Read(bytes.NewReader(raw), asdu.ParamsWide)
	if !errors.Is(err, asdu.ErrUnknownType) {
		t.Fatalf("got %v, want ErrUnknownType", err)
	}
	in, ok := got.(*ITelegram)
	if !ok || in.SendSN != 1 || in.ASDU == nil {
		t.Fatalf("envelope lost: %#v", got)
	}
	if in.ASDU.Type != asdu.TypeID(200) {
		t.Errorf("header: %s", in.ASDU)
	}
}
