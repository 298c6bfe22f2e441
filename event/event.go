// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package event bridges station events to ready-to-send telegrams of
// either variant.
package event

import (
	"github.com/roboplc/iec60870-5/asdu"
	"github.com/roboplc/iec60870-5/cs101"
	"github.com/roboplc/iec60870-5/cs104"
)

// Event is one station event: a typed information value bound to its
// addresses and cause. The type identification comes from the value.
type Event struct {
	CommonAddr  asdu.CommonAddr
	InfoObjAddr asdu.InfoObjAddr
	Cause       asdu.Cause
	Value       asdu.InfoValue
}

// New builds an event.
func New(commonAddr asdu.CommonAddr, infoObjAddr asdu.InfoObjAddr, cause asdu.Cause, value asdu.InfoValue) Event {
	return Event{
		CommonAddr:  commonAddr,
		InfoObjAddr: infoObjAddr,
		Cause:       cause,
		Value:       value,
	}
}

// ASDU builds a single-object ASDU for the event with the given layout
// parameters.
func (sf Event) ASDU(p *asdu.Params) (*asdu.ASDU, error) {
	a := asdu.NewASDU(p, sf.Value.TypeID(),
		asdu.CauseOfTransmission{Cause: sf.Cause}, sf.CommonAddr)
	if err := a.AppendInfoObj(sf.InfoObjAddr, sf.Value); err != nil {
		return nil, err
	}
	return a, nil
}

// Telegram104I wraps the event into a networked-variant information
// telegram. The networked profile fixes the wide identifier layout.
func (sf Event) Telegram104I() (*cs104.ITelegram, error) {
	a, err := sf.ASDU(asdu.ParamsWide)
	if err != nil {
		return nil, err
	}
	return cs104.NewITelegram(a), nil
}

// Telegram101 wraps the event into a serial-variant user data telegram for
// the configured link.
func (sf Event) Telegram101(cfg *cs101.Config) (*cs101.Telegram101, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	t := cs101.NewTelegram101(cfg, sf.Value.TypeID(),
		asdu.CauseOfTransmission{Cause: sf.Cause}, sf.CommonAddr)
	if err := t.ASDU.AppendInfoObj(sf.InfoObjAddr, sf.Value); err != nil {
		return nil, err
	}
	return t, nil
}
