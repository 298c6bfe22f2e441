// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

import (
	"errors"

	"github.com/roboplc/iec60870-5/asdu"
)

// Link address size bounds; 0 means no link address on the wire, as in
// point-to-point balanced mode.
const (
	DefaultLinkAddrSize = 1
	LinkAddrSizeMin     = 0
	LinkAddrSizeMax     = 2
)

// Config defines an IEC 60870-5-101 link configuration.
type Config struct {
	// Serial port settings. Validated when the port opens, so a pure
	// codec use needs no port at all.
	Serial SerialConfig

	// LinkAddress is the station link address, sized by LinkAddrSize.
	LinkAddress uint16
	// LinkAddrSize is the link address field size in octets, 0 to 2.
	LinkAddrSize int

	// Params fixes the ASDU identifier layout.
	Params asdu.Params
}

// Valid applies defaults and checks configuration validity.
func (sf *Config) Valid() error {
	if sf == nil {
		return errors.New("invalid nil config")
	}
	if sf.LinkAddrSize < LinkAddrSizeMin || sf.LinkAddrSize > LinkAddrSizeMax {
		return errors.New("link address size must be 0, 1, or 2")
	}
	if sf.LinkAddrSize == 1 && sf.LinkAddress > 0xff {
		return errors.New("link address exceeds 1 octet limit")
	}
	return sf.Params.Valid()
}

// DefaultConfig provides a default configuration: one-octet link address,
// narrow ASDU layout. The serial port must be set explicitly.
func DefaultConfig() Config {
	return Config{
		LinkAddress:  1,
		LinkAddrSize: DefaultLinkAddrSize,
		Params:       *asdu.ParamsNarrow,
	}
}
