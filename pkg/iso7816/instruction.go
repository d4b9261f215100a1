package iso7816

import "fmt"

// Instruction byte (INS) logic according to ISO/IEC 7816-4.
//
// The INS byte identifies the command the card should execute. Values whose
// upper nibble is '6' or '9' are reserved for status words and ISO 7816-3
// transport control and are invalid as instructions.

// InsCode is a typed representation of the instruction byte.
type InsCode byte

// Instructions used by this chip family.
const (
	InsSelect      InsCode = 0xA4
	InsReadBinary  InsCode = 0xB0
	InsReadRecord  InsCode = 0xB2
	InsGetResponse InsCode = 0xC0
	InsGetData     InsCode = 0xCA
)

// Validate rejects INS values in the reserved 6X and 9X ranges.
func (i InsCode) Validate() error {
	if hi := byte(i) & 0xF0; hi == 0x60 || hi == 0x90 {
		return fmt.Errorf("invalid INS 0x%02X: 6X and 9X are reserved", byte(i))
	}
	return nil
}

func (i InsCode) String() string {
	switch i {
	case InsSelect:
		return "SELECT"
	case InsReadBinary:
		return "READ BINARY"
	case InsReadRecord:
		return "READ RECORD"
	case InsGetResponse:
		return "GET RESPONSE"
	case InsGetData:
		return "GET DATA"
	default:
		return fmt.Sprintf("INS 0x%02X", byte(i))
	}
}
