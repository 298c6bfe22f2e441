// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

// seqMod is the sequence number modulus; both counters are 15 bit rings.
const seqMod = 1 << 15

// ChatSequenceCounter tracks the paired send and receive sequence numbers
// of one connection. Not safe for concurrent use; each connection owns one
// counter on its reader/writer goroutine.
type ChatSequenceCounter struct {
	tx uint16
	rx uint16
}

// NewChatSequenceCounter returns a counter with both sequences at zero.
func NewChatSequenceCounter() *ChatSequenceCounter {
	return &ChatSequenceCounter{}
}

// ApplyOutgoing returns the send sequence number to stamp on the next
// information telegram and advances the send counter.
func (sf *ChatSequenceCounter) ApplyOutgoing() uint16 {
	n := sf.tx
	sf.tx = (sf.tx + 1) % seqMod
	return n
}

// ValidateIncoming checks the send sequence number of a received
// information telegram. On a match the receive counter advances; on a
// mismatch it stays put and a *SequenceError reports both numbers.
func (sf *ChatSequenceCounter) ValidateIncoming(sendSN uint16) error {
	if sendSN != sf.rx {
		return &SequenceError{Expected: sf.rx, Received: sendSN}
	}
	sf.rx = (sf.rx + 1) % seqMod
	return nil
}

// CurrentTX returns the next send sequence number without advancing.
func (sf *ChatSequenceCounter) CurrentTX() uint16 { return sf.tx }

// CurrentRX returns the expected receive sequence number without
// advancing.
func (sf *ChatSequenceCounter) CurrentRX() uint16 { return sf.rx }

// Reset returns both sequences to zero, as after a start of data transfer
// on a fresh connection.
func (sf *ChatSequenceCounter) Reset() {
	sf.tx, sf.rx = 0, 0
}
