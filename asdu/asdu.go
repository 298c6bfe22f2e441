// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package asdu provides the application service data unit model of
// IEC 60870-5: the type identification catalogue, the information element
// codecs and the ASDU header with its variable address layout.
package asdu

import (
	"fmt"
)

// MaxInfoObj is the information object capacity of one ASDU; the count
// travels in the low seven bits of the variable structure qualifier.
const MaxInfoObj = 127

// CommonAddr is a station common address.
type CommonAddr uint16

const (
	// InvalidCommonAddr is the invalid common address value.
	InvalidCommonAddr CommonAddr = 0
	// GlobalCommonAddr is the broadcast address. With a one-octet
	// common address use 0xff.
	GlobalCommonAddr CommonAddr = 0xffff
)

// InfoObjAddr is an information object address.
type InfoObjAddr uint32

// InfoObj is one information object: an address and the encoded
// information element payload sized by the owning ASDU's type
// identification.
type InfoObj struct {
	Addr  InfoObjAddr
	Value []byte
}

// ASDU is an application service data unit.
//
//	| type identification            |
//	| SQ | number of objects (7 bits)|
//	| P/N | cause (7 bits)           |
//	| originator address             |  with originator only
//	| common address (1 or 2 octets) |
//	objects...
type ASDU struct {
	*Params
	Type       TypeID
	Sequence   bool
	Coa        CauseOfTransmission
	OrigAddr   uint8
	CommonAddr CommonAddr
	infoObj    []InfoObj
}

// NewASDU builds an ASDU header for the given layout parameters.
func NewASDU(p *Params, typ TypeID, coa CauseOfTransmission, commonAddr CommonAddr) *ASDU {
	return &ASDU{Params: p, Type: typ, Coa: coa, CommonAddr: commonAddr}
}

// NewEmptyASDU builds an ASDU shell for decoding with the given layout
// parameters.
func NewEmptyASDU(p *Params) *ASDU {
	return &ASDU{Params: p}
}

// AppendInfoObj appends one information object with an individual address.
func (sf *ASDU) AppendInfoObj(addr InfoObjAddr, v InfoValue) error {
	if sf.Sequence {
		return fmt.Errorf("%w: individual address appended to a sequence ASDU", ErrInfoObjAddr)
	}
	return sf.appendObj(addr, v)
}

// AppendInfoObjSeq appends information objects at consecutive addresses
// starting at start and sets the sequence flag. Only the first address is
// serialized.
func (sf *ASDU) AppendInfoObjSeq(start InfoObjAddr, values ...InfoValue) error {
	if len(sf.infoObj) > 0 && !sf.Sequence {
		return fmt.Errorf("%w: sequence append on an individually addressed ASDU", ErrInfoObjAddr)
	}
	next := start
	if sf.Sequence && len(sf.infoObj) > 0 {
		next = sf.infoObj[len(sf.infoObj)-1].Addr + 1
	}
	for _, v := range values {
		if err := sf.appendObj(next, v); err != nil {
			return err
		}
		next++
	}
	sf.Sequence = true
	return nil
}

func (sf *ASDU) appendObj(addr InfoObjAddr, v InfoValue) error {
	if v.TypeID() != sf.Type {
		return fmt.Errorf("%w: appending %v to an ASDU of %v", ErrTypeMismatch, v.TypeID(), sf.Type)
	}
	size, err := InfoLen(sf.Type)
	if err != nil {
		return err
	}
	if len(sf.infoObj) >= MaxInfoObj {
		return fmt.Errorf("%w: more than %d information objects", ErrCountOverflow, MaxInfoObj)
	}
	if err := sf.checkInfoObjAddr(addr); err != nil {
		return err
	}
	raw, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	if len(raw) != size {
		return fmt.Errorf("%w: %v payload is %d octets, catalogue says %d", ErrDecodeLength, sf.Type, len(raw), size)
	}
	sf.infoObj = append(sf.infoObj, InfoObj{Addr: addr, Value: raw})
	return nil
}

// InfoObjCount returns the number of information objects.
func (sf *ASDU) InfoObjCount() int {
	return len(sf.infoObj)
}

// InfoObjs returns the information objects. The slice is shared; treat it
// as read only.
func (sf *ASDU) InfoObjs() []InfoObj {
	return sf.infoObj
}

// InfoValue decodes information object i per the declared type
// identification. With StrictTime set, time tag reserved bits reject the
// decode.
func (sf *ASDU) InfoValue(i int) (InfoValue, error) {
	if i < 0 || i >= len(sf.infoObj) {
		return nil, fmt.Errorf("information object index %d out of range", i)
	}
	if sf.Params != nil && sf.StrictTime {
		if err := checkTimeTagStrict(sf.Type, sf.infoObj[i].Value); err != nil {
			return nil, err
		}
	}
	return DecodeInfoValue(sf.Type, sf.infoObj[i].Value)
}

// ValueInto decodes information object i into v, whose type identification
// must match the ASDU's.
func (sf *ASDU) ValueInto(i int, v InfoValue) error {
	if i < 0 || i >= len(sf.infoObj) {
		return fmt.Errorf("information object index %d out of range", i)
	}
	if v.TypeID() != sf.Type {
		return fmt.Errorf("%w: decoding %v from an ASDU of %v", ErrTypeMismatch, v.TypeID(), sf.Type)
	}
	if sf.Params != nil && sf.StrictTime {
		if err := checkTimeTagStrict(sf.Type, sf.infoObj[i].Value); err != nil {
			return err
		}
	}
	return v.UnmarshalBinary(sf.infoObj[i].Value)
}

// Reply builds a header-only mirror of the ASDU with the given cause, for
// confirmations and the unknown-identifier answers. Information objects
// are not copied.
func (sf *ASDU) Reply(coa CauseOfTransmission) *ASDU {
	return &ASDU{
		Params:     sf.Params,
		Type:       sf.Type,
		Coa:        coa,
		OrigAddr:   sf.OrigAddr,
		CommonAddr: sf.CommonAddr,
	}
}

// MarshalBinary encodes the ASDU. An ASDU without information objects
// encodes as a bare identifier, the shape of a mirror reply; its type
// identification then need not be in the catalogue.
func (sf *ASDU) MarshalBinary() ([]byte, error) {
	if err := sf.Params.Valid(); err != nil {
		return nil, err
	}
	n := len(sf.infoObj)
	if n > MaxInfoObj {
		return nil, fmt.Errorf("%w: %d information objects", ErrCountOverflow, n)
	}
	if sf.Coa.Cause > maxCause {
		return nil, fmt.Errorf("%w: %d", ErrCause, uint8(sf.Coa.Cause))
	}
	if sf.CommonAddrSize == 1 && sf.CommonAddr > 0xff {
		return nil, fmt.Errorf("%w: %d", ErrCommonAddr, sf.CommonAddr)
	}

	raw := make([]byte, 0, sf.IdentifierSize()+n*(sf.InfoObjAddrSize+16))
	raw = append(raw, byte(sf.Type))
	vsq := byte(n)
	if sf.Sequence {
		vsq |= 0x80
	}
	raw = append(raw, vsq, sf.Coa.Value())
	if sf.WithOriginator {
		raw = append(raw, sf.OrigAddr)
	}
	raw = append(raw, byte(sf.CommonAddr))
	if sf.CommonAddrSize == 2 {
		raw = append(raw, byte(sf.CommonAddr>>8))
	}
	if n == 0 {
		return raw, nil
	}

	var err error
	if sf.Sequence {
		if raw, err = sf.appendInfoObjAddr(raw, sf.infoObj[0].Addr); err != nil {
			return nil, err
		}
		for _, obj := range sf.infoObj {
			raw = append(raw, obj.Value...)
		}
		return raw, nil
	}
	for _, obj := range sf.infoObj {
		if raw, err = sf.appendInfoObjAddr(raw, obj.Addr); err != nil {
			return nil, err
		}
		raw = append(raw, obj.Value...)
	}
	return raw, nil
}

// UnmarshalBinary decodes the ASDU. On an unknown type identification the
// header fields stay populated and the error wraps ErrUnknownType, so a
// mirror reply remains possible.
func (sf *ASDU) UnmarshalBinary(data []byte) error {
	if err := sf.Params.Valid(); err != nil {
		return err
	}
	if len(data) < sf.IdentifierSize() {
		return fmt.Errorf("%w: %d octets is shorter than the identifier", ErrDecodeLength, len(data))
	}

	sf.Type = TypeID(data[0])
	vsq := data[1]
	sf.Sequence = vsq&0x80 != 0
	count := int(vsq & 0x7f)
	coa, err := ParseCauseOf(data[2])
	if err != nil {
		return err
	}
	sf.Coa = coa
	off := 3
	if sf.WithOriginator {
		sf.OrigAddr = data[off]
		off++
	} else {
		sf.OrigAddr = 0
	}
	sf.CommonAddr = CommonAddr(data[off])
	off++
	if sf.CommonAddrSize == 2 {
		sf.CommonAddr |= CommonAddr(data[off]) << 8
		off++
	}
	sf.infoObj = nil

	size, err := InfoLen(sf.Type)
	if err != nil {
		return err
	}
	rest := data[off:]
	if count == 0 {
		if len(rest) != 0 {
			return fmt.Errorf("%w: %d trailing octets on an empty ASDU", ErrDecodeLength, len(rest))
		}
		return nil
	}

	if sf.Sequence {
		if want := sf.InfoObjAddrSize + count*size; len(rest) != want {
			return fmt.Errorf("%w: sequence of %d %v objects wants %d octets, have %d",
				ErrDecodeLength, count, sf.Type, want, len(rest))
		}
		addr := sf.parseInfoObjAddr(rest)
		rest = rest[sf.InfoObjAddrSize:]
		for i := 0; i < count; i++ {
			sf.infoObj = append(sf.infoObj, InfoObj{
				Addr:  addr + InfoObjAddr(i),
				Value: append([]byte(nil), rest[i*size:(i+1)*size]...),
			})
		}
		return nil
	}

	if want := count * (sf.InfoObjAddrSize + size); len(rest) != want {
		return fmt.Errorf("%w: %d %v objects want %d octets, have %d",
			ErrDecodeLength, count, sf.Type, want, len(rest))
	}
	for i := 0; i < count; i++ {
		addr := sf.parseInfoObjAddr(rest)
		rest = rest[sf.InfoObjAddrSize:]
		sf.infoObj = append(sf.infoObj, InfoObj{
			Addr:  addr,
			Value: append([]byte(nil), rest[:size]...),
		})
		rest = rest[size:]
	}
	return nil
}

func (sf *ASDU) checkInfoObjAddr(addr InfoObjAddr) error {
	var limit InfoObjAddr
	switch sf.InfoObjAddrSize {
	case 1:
		limit = 0xff
	case 2:
		limit = 0xffff
	default:
		limit = 0xffffff
	}
	if addr > limit {
		return fmt.Errorf("%w: %d does not fit %d octets", ErrInfoObjAddr, addr, sf.InfoObjAddrSize)
	}
	return nil
}

func (sf *ASDU) appendInfoObjAddr(raw []byte, addr InfoObjAddr) ([]byte, error) {
	if err := sf.checkInfoObjAddr(addr); err != nil {
		return nil, err
	}
	raw = append(raw, byte(addr))
	if sf.InfoObjAddrSize >= 2 {
		raw = append(raw, byte(addr>>8))
	}
	if sf.InfoObjAddrSize == 3 {
		raw = append(raw, byte(addr>>16))
	}
	return raw, nil
}

// parseInfoObjAddr reads one little endian object address; the caller
// guarantees InfoObjAddrSize octets.
func (sf *ASDU) parseInfoObjAddr(raw []byte) InfoObjAddr {
	addr := InfoObjAddr(raw[0])
	if sf.InfoObjAddrSize >= 2 {
		addr |= InfoObjAddr(raw[1]) << 8
	}
	if sf.InfoObjAddrSize == 3 {
		addr |= InfoObjAddr(raw[2]) << 16
	}
	return addr
}

// String renders the identifier for diagnostics.
func (sf *ASDU) String() string {
	return fmt.Sprintf("ASDU<%v cause=%d n=%d ca=%d>",
		sf.Type, sf.Coa.Cause, len(sf.infoObj), sf.CommonAddr)
}
