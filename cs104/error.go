// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"errors"
	"fmt"
)

// error defined
var (
	ErrFormat         = errors.New("malformed telegram envelope")
	ErrUnknownControl = errors.New("unrecognized control field")
	ErrSeqRange       = errors.New("sequence number exceeds 15 bits")
)

// SequenceError reports a received send sequence number that is not the
// expected one: a lost, duplicated or reordered information telegram.
type SequenceError struct {
	Expected uint16
	Received uint16
}

func (sf *SequenceError) Error() string {
	return fmt.Sprintf("chat sequence mismatch: expected %d, received %d", sf.Expected, sf.Received)
}
