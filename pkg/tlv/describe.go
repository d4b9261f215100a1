package tlv

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders a tag map as an indented, human-readable report, one
// line per tag in ascending tag order. Values are shown as hex with a
// printable-ASCII rendering alongside, so unknown tags can be reported
// and inspected without guessing their encoding.
func Describe(m Map) string {
	tags := make([]int, 0, len(m))
	for tag := range m {
		tags = append(tags, int(tag))
	}
	sort.Ints(tags)

	var sb strings.Builder
	for _, tag := range tags {
		value := m[uint16(tag)]
		sb.WriteString(fmt.Sprintf("    - Tag %d (%d bytes): %X (%q)\n",
			tag, len(value), value, makeSafeASCII(value)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// makeSafeASCII replaces non-printable bytes with dots.
func makeSafeASCII(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b < 0x20 || b > 0x7E {
			out[i] = '.'
		} else {
			out[i] = b
		}
	}
	return string(out)
}
