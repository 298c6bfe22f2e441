// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"errors"
	"testing"
)

func TestChatSequenceCounterOutgoing(t *testing.T) {
	c := NewChatSequenceCounter()
	for want := uint16(0); want < 3; want++ {
		if got := c.ApplyOutgoing(); got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
	if c.CurrentTX() != 3 {
		t.Errorf("tx: got %d, want 3", c.CurrentTX())
	}
}

func TestChatSequenceCounterWrap(t *testing.T) {
	c := NewChatSequenceCounter()
	for i := 0; i < seqMod; i++ {
		c.ApplyOutgoing()
	}
	if got := c.ApplyOutgoing(); got != 0 {
		t.Errorf("after wrap: got %d, want 0", got)
	}
	if c.CurrentTX() != 1 {
		t.Errorf("tx after wrap: got %d, want 1", c.CurrentTX())
	}
}

func TestChatSequenceCounterIncoming(t *testing.T) {
	c := NewChatSequenceCounter()
	if err := c.ValidateIncoming(0); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := c.ValidateIncoming(1); err != nil {
		t.Fatalf("second: %v", err)
	}

	// a duplicate of the last telegram
	err := c.ValidateIncoming(1)
	var seqErr *SequenceError
	if !errors.As(err, &seqErr) {
		t.Fatalf("duplicate: got %v, want *SequenceError", err)
	}
	if seqErr.Expected != 2 || seqErr.Received != 1 {
		t.Errorf("duplicate: got %+v", seqErr)
	}
	if c.CurrentRX() != 2 {
		t.Errorf("rx advanced on mismatch: %d", c.CurrentRX())
	}

	// a gap
	err = c.ValidateIncoming(5)
	if !errors.As(err, &seqErr) || seqErr.Expected != 2 || seqErr.Received != 5 {
		t.Errorf("gap: got %v", err)
	}
}

func TestChatSequenceCounterReset(t *testing.T) {
	c := NewChatSequenceCounter()
	c.ApplyOutgoing()
	if err := c.ValidateIncoming(0); err != nil {
		t.Fatalf("validate: %v", err)
	}
	c.Reset()
	if c.CurrentTX() != 0 || c.CurrentRX() != 0 {
		t.Errorf("after reset: tx=%d rx=%d", c.CurrentTX(), c.CurrentRX())
	}
}
