// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// System parameters fix the octet layout of the ASDU identifier and the
// information object addresses. Both stations of a link must agree on them.
type Params struct {
	// WithOriginator includes the originator address octet in the
	// identifier. The networked profile always carries it.
	WithOriginator bool
	// CommonAddrSize is the common address size in octets, 1 or 2.
	// Zero defaults to 1.
	CommonAddrSize int
	// InfoObjAddrSize is the information object address size in octets,
	// 1, 2 or 3. Zero defaults to 2.
	InfoObjAddrSize int
	// StrictTime rejects time tags with nonzero reserved bits on decode.
	// Lenient decoding masks them, which is what most field equipment
	// needs.
	StrictTime bool
}

// Fixed profiles.
var (
	// ParamsWide is the networked profile layout: originator address
	// present, two-octet common address, three-octet object address.
	ParamsWide = &Params{WithOriginator: true, CommonAddrSize: 2, InfoObjAddrSize: 3}
	// ParamsNarrow is the common serial profile layout: no originator,
	// one-octet common address, two-octet object address.
	ParamsNarrow = &Params{CommonAddrSize: 1, InfoObjAddrSize: 2}
)

// Valid applies defaults and checks parameter validity.
func (sf *Params) Valid() error {
	if sf == nil {
		return ErrParam
	}
	if sf.CommonAddrSize == 0 {
		sf.CommonAddrSize = 1
	}
	if sf.InfoObjAddrSize == 0 {
		sf.InfoObjAddrSize = 2
	}
	if sf.CommonAddrSize < 1 || sf.CommonAddrSize > 2 ||
		sf.InfoObjAddrSize < 1 || sf.InfoObjAddrSize > 3 {
		return ErrParam
	}
	return nil
}

// IdentifierSize returns the ASDU identifier size in octets for these
// parameters.
func (sf *Params) IdentifierSize() int {
	n := 3 + sf.CommonAddrSize
	if sf.WithOriginator {
		n++
	}
	return n
}
