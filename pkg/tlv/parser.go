// Package tlv implements the flat tag-length-value encoding found inside
// the eID card's elementary files.
//
// The payload is a repeated sequence of:
//  1. tag, unsigned 16-bit little-endian
//  2. length, unsigned 16-bit little-endian
//  3. length bytes of value
//
// There is no nesting and no multi-byte tag arithmetic: this is a
// proprietary fixed-width layout, not BER-TLV.
package tlv

import (
	"encoding/binary"
	"fmt"
)

// Map associates each tag found in a buffer with its raw value bytes.
type Map map[uint16][]byte

// OverrunError reports a length field claiming more value bytes than the
// buffer holds.
type OverrunError struct {
	Tag       uint16
	Length    int
	Remaining int
}

func (e *OverrunError) Error() string {
	return fmt.Sprintf("tlv: tag %d declares %d value bytes, only %d remain", e.Tag, e.Length, e.Remaining)
}

// Parse splits buf into a tag map, scanning strictly left to right.
//
// Scanning stops as soon as fewer than five bytes remain; shorter trailing
// padding is ignored, not an error. If a tag occurs more than once the last
// value wins. Returned values alias buf.
func Parse(buf []byte) (Map, error) {
	out := make(Map)
	for len(buf) >= 5 {
		tag := binary.LittleEndian.Uint16(buf[0:2])
		length := int(binary.LittleEndian.Uint16(buf[2:4]))
		if length > len(buf)-4 {
			return nil, &OverrunError{Tag: tag, Length: length, Remaining: len(buf) - 4}
		}
		out[tag] = buf[4 : 4+length]
		buf = buf[4+length:]
	}
	return out, nil
}
