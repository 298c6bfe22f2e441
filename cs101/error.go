// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"errors"
)

// error defined
var (
	ErrUseClosedConnection = errors.New("use of closed connection")
	ErrInvalidStartChar    = errors.New("invalid start character")
	ErrLengthMismatch      = errors.New("length fields do not match")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
	ErrFrameTooShort       = errors.New("frame is too short for headers")
	ErrFrameLenExceeded    = errors.New("frame length exceeds maximum")
	ErrInvalidLinkAddrLen  = errors.New("invalid link address length in config")
	ErrInvalidEndChar      = errors.New("invalid end character")
)
