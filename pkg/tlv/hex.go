package tlv

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Hex builds a byte slice from a series of hex strings, ignoring spaces
// so fixtures can be written as "00 A4 08 00". It panics on invalid input
// and is meant for tests and hard-coded wire fixtures.
func Hex(parts ...string) []byte {
	joined := strings.ReplaceAll(strings.Join(parts, ""), " ", "")

	data, err := hex.DecodeString(joined)
	if err != nil {
		panic(fmt.Sprintf("invalid input '%s': %v", joined, err))
	}
	return data
}
