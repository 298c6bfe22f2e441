// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"encoding/binary"
	"fmt"
	"time"
)

// maxMillisecond is the exclusive upper bound of the millisecond-in-minute
// field.
const maxMillisecond = 60000

// CP56Time2a is the seven-octet binary time tag.
//
//	| millisecond (16 bits, LE)            |
//	| IV  | RES | minute (6 bits)          |
//	| SU  | RES | RES | hour (5 bits)      |
//	| day of week (3 bits) | day (5 bits)  |
//	| RES (4 bits) | month (4 bits)        |
//	| RES | year (7 bits)                  |
//
// The year is the two low digits; this codec fixes the century to 2000.
type CP56Time2a struct {
	Millisecond uint16 // 0..59999, seconds and milliseconds combined
	Minute      uint8  // 0..59
	Hour        uint8  // 0..23
	Day         uint8  // 1..31
	DayOfWeek   uint8  // 1..7, monday is 1, 0 when not used
	Month       uint8  // 1..12
	Year        uint8  // 0..99, meaning 2000..2099
	SummerTime  bool
	Invalid     bool
}

// NewCP56Time2a builds a time tag from t. Years outside 2000..2099 are not
// encodable. Sub-millisecond precision truncates.
func NewCP56Time2a(t time.Time) (CP56Time2a, error) {
	year := t.Year()
	if year < 2000 || year > 2099 {
		return CP56Time2a{}, fmt.Errorf("%w: year %d", ErrTimeRange, year)
	}
	dayOfWeek := uint8(t.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7
	}
	return CP56Time2a{
		Millisecond: uint16(t.Second()*1000 + t.Nanosecond()/int(time.Millisecond)),
		Minute:      uint8(t.Minute()),
		Hour:        uint8(t.Hour()),
		Day:         uint8(t.Day()),
		DayOfWeek:   dayOfWeek,
		Month:       uint8(t.Month()),
		Year:        uint8(year - 2000),
		SummerTime:  t.IsDST(),
	}, nil
}

// MarshalBinary encodes the time tag into seven octets.
func (sf CP56Time2a) MarshalBinary() ([]byte, error) {
	if sf.Millisecond >= maxMillisecond || sf.Minute > 59 || sf.Hour > 23 ||
		sf.Day < 1 || sf.Day > 31 || sf.DayOfWeek > 7 ||
		sf.Month < 1 || sf.Month > 12 || sf.Year > 99 {
		return nil, fmt.Errorf("%w: %+v", ErrTimeRange, sf)
	}
	b := make([]byte, 7)
	binary.LittleEndian.PutUint16(b, sf.Millisecond)
	b[2] = sf.Minute
	if sf.Invalid {
		b[2] |= 0x80
	}
	b[3] = sf.Hour
	if sf.SummerTime {
		b[3] |= 0x80
	}
	b[4] = sf.Day | sf.DayOfWeek<<5
	b[5] = sf.Month
	b[6] = sf.Year
	return b, nil
}

// ParseCP56Time2a decodes a seven-octet time tag. In strict mode nonzero
// reserved bits are rejected; otherwise they are masked. The invalid flag
// decodes into the Invalid field, never into an error.
func ParseCP56Time2a(data []byte, strict bool) (CP56Time2a, error) {
	if len(data) != 7 {
		return CP56Time2a{}, fmt.Errorf("%w: CP56Time2a wants 7 octets, have %d", ErrDecodeLength, len(data))
	}
	if strict &&
		(data[2]&0x40 != 0 || data[3]&0x60 != 0 || data[5]&0xf0 != 0 || data[6]&0x80 != 0) {
		return CP56Time2a{}, fmt.Errorf("%w: CP56Time2a % X", ErrTimeFormat, data)
	}
	return CP56Time2a{
		Millisecond: binary.LittleEndian.Uint16(data),
		Minute:      data[2] & 0x3f,
		Invalid:     data[2]&0x80 != 0,
		Hour:        data[3] & 0x1f,
		SummerTime:  data[3]&0x80 != 0,
		Day:         data[4] & 0x1f,
		DayOfWeek:   data[4] >> 5,
		Month:       data[5] & 0x0f,
		Year:        data[6] & 0x7f,
	}, nil
}

// Time reconstructs the tagged instant in loc. A nil loc means UTC. The day
// of week field does not participate.
func (sf CP56Time2a) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(2000+int(sf.Year), time.Month(sf.Month), int(sf.Day),
		int(sf.Hour), int(sf.Minute), int(sf.Millisecond/1000),
		int(sf.Millisecond%1000)*int(time.Millisecond), loc)
}

// CP24Time2a is the three-octet binary time tag: milliseconds and minute
// only.
//
//	| millisecond (16 bits, LE)   |
//	| IV  | RES | minute (6 bits) |
type CP24Time2a struct {
	Millisecond uint16 // 0..59999
	Minute      uint8  // 0..59
	Invalid     bool
}

// NewCP24Time2a builds a short time tag from t.
func NewCP24Time2a(t time.Time) CP24Time2a {
	return CP24Time2a{
		Millisecond: uint16(t.Second()*1000 + t.Nanosecond()/int(time.Millisecond)),
		Minute:      uint8(t.Minute()),
	}
}

// MarshalBinary encodes the time tag into three octets.
func (sf CP24Time2a) MarshalBinary() ([]byte, error) {
	if sf.Millisecond >= maxMillisecond || sf.Minute > 59 {
		return nil, fmt.Errorf("%w: %+v", ErrTimeRange, sf)
	}
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b, sf.Millisecond)
	b[2] = sf.Minute
	if sf.Invalid {
		b[2] |= 0x80
	}
	return b, nil
}

// ParseCP24Time2a decodes a three-octet time tag. Strict mode rejects the
// reserved bit.
func ParseCP24Time2a(data []byte, strict bool) (CP24Time2a, error) {
	if len(data) != 3 {
		return CP24Time2a{}, fmt.Errorf("%w: CP24Time2a wants 3 octets, have %d", ErrDecodeLength, len(data))
	}
	if strict && data[2]&0x40 != 0 {
		return CP24Time2a{}, fmt.Errorf("%w: CP24Time2a % X", ErrTimeFormat, data)
	}
	return CP24Time2a{
		Millisecond: binary.LittleEndian.Uint16(data),
		Minute:      data[2] & 0x3f,
		Invalid:     data[2]&0x80 != 0,
	}, nil
}

// CP16Time2a is a two-octet elapsed time in milliseconds, 0..59999.
type CP16Time2a uint16

// MarshalBinary encodes the elapsed time into two octets.
func (sf CP16Time2a) MarshalBinary() ([]byte, error) {
	if sf >= maxMillisecond {
		return nil, fmt.Errorf("%w: CP16Time2a %d", ErrTimeRange, uint16(sf))
	}
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(sf))
	return b, nil
}

// ParseCP16Time2a decodes a two-octet elapsed time.
func ParseCP16Time2a(data []byte) (CP16Time2a, error) {
	if len(data) != 2 {
		return 0, fmt.Errorf("%w: CP16Time2a wants 2 octets, have %d", ErrDecodeLength, len(data))
	}
	return CP16Time2a(binary.LittleEndian.Uint16(data)), nil
}

// shortTag projects the minute fields of a full tag onto a short one.
func (sf CP56Time2a) shortTag() CP24Time2a {
	return CP24Time2a{Millisecond: sf.Millisecond, Minute: sf.Minute, Invalid: sf.Invalid}
}

// cp56FromShort lifts a short tag into a full one; calendar fields stay zero.
func cp56FromShort(t CP24Time2a) CP56Time2a {
	return CP56Time2a{Millisecond: t.Millisecond, Minute: t.Minute, Invalid: t.Invalid}
}
