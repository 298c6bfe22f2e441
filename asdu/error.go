// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"errors"
)

// error defined
var (
	ErrParam         = errors.New("invalid system parameters")
	ErrUnknownType   = errors.New("unknown type identification")
	ErrTypeMismatch  = errors.New("type identification mismatch")
	ErrDecodeLength  = errors.New("raw data length does not match type identification")
	ErrCountOverflow = errors.New("information object count out of range")
	ErrInfoObjAddr   = errors.New("information object address exceeds configured octet size")
	ErrCommonAddr    = errors.New("common address exceeds configured octet size")
	ErrCause         = errors.New("cause of transmission out of range")
	ErrValueRange    = errors.New("value outside the encodable range")
	ErrTimeRange     = errors.New("time outside the encodable range")
	ErrTimeFormat    = errors.New("time tag carries nonzero reserved bits")
)
