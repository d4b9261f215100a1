package eid

import (
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// FCI is the file control information a card may return in response to a
// SELECT, as a BER-TLV FCP/FCI template (tag '62' or '6F'). It is decoded
// for diagnostics only: the proprietary 6-byte file header remains the
// authority on payload length.
type FCI struct {
	// FileID is the file identifier from tag '83', when present.
	FileID []byte

	// Size is the declared file size from tag '80' (data bytes) or
	// '81' (total bytes), big-endian. Zero when neither tag is present.
	Size int
}

// parseFCI decodes select-response data as a BER-TLV control template.
func parseFCI(data []byte) (*FCI, error) {
	packets, err := bertlv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("eid: FCI decode failed: %w", err)
	}

	// Unwrap the FCP ('62') or FCI ('6F') template when present; some
	// cards return the inner objects directly.
	if len(packets) == 1 && (strings.EqualFold(packets[0].Tag, "62") || strings.EqualFold(packets[0].Tag, "6F")) {
		packets = packets[0].TLVs
	}

	fci := &FCI{}
	for _, p := range packets {
		switch strings.ToUpper(p.Tag) {
		case "80", "81":
			fci.Size = bigEndianInt(p.Value)
		case "83":
			fci.FileID = p.Value
		}
	}
	return fci, nil
}

func bigEndianInt(b []byte) int {
	n := 0
	for _, c := range b {
		n = n<<8 | int(c)
	}
	return n
}
