package iso7816

import "fmt"

// Status Word logic according to ISO/IEC 7816-4.
//
// Every response ends with two bytes, SW1 and SW2. Most values are static
// codes, but a few ranges carry contextual information:
//
//  1. '61XX': process completed, XX response bytes still buffered by the card.
//  2. '6CXX': wrong length, XX is the Le the command should be retried with.
//  3. '63CX': warning, the low nibble of SW2 is a counter (e.g. remaining
//     PIN tries).

// StatusWord is the two-byte SW1-SW2 trailer of a response APDU.
type StatusWord uint16

// NewStatusWord combines the two trailer bytes into a StatusWord.
func NewStatusWord(sw1, sw2 byte) StatusWord {
	return StatusWord(uint16(sw1)<<8 | uint16(sw2))
}

// SW1 returns the high byte of the status word.
func (sw StatusWord) SW1() byte {
	return byte(sw >> 8)
}

// SW2 returns the low byte of the status word.
func (sw StatusWord) SW2() byte {
	return byte(sw)
}

// IsSuccess reports normal completion. Nothing but 0x9000 counts; callers
// that support '61XX' continuation must handle it themselves.
func (sw StatusWord) IsSuccess() bool {
	return sw == SWNoError
}

// IsWarning reports a warning status (62XX or 63XX).
func (sw StatusWord) IsWarning() bool {
	sw1 := sw.SW1()
	return sw1 == 0x62 || sw1 == 0x63
}

// IsError reports an execution or checking error (64XX to 6FXX).
func (sw StatusWord) IsError() bool {
	sw1 := sw.SW1()
	return sw1 >= 0x64 && sw1 <= 0x6F
}

// HasCounter reports a '63CX' status carrying a counter in the low nibble.
func (sw StatusWord) HasCounter() bool {
	return sw.SW1() == 0x63 && sw.SW2()&0xF0 == 0xC0
}

// Counter returns the counter value of a '63CX' status.
func (sw StatusWord) Counter() int {
	return int(sw.SW2() & 0x0F)
}

// Verbose returns a human-readable description of the status word.
// Dynamic ISO ranges take precedence over the static code table.
func (sw StatusWord) Verbose() string {
	switch {
	case sw.SW1() == 0x61:
		return fmt.Sprintf("[%04X] process completed, %d bytes available", uint16(sw), sw.SW2())
	case sw.SW1() == 0x6C:
		return fmt.Sprintf("[%04X] wrong length, correct Le is %d", uint16(sw), sw.SW2())
	case sw.HasCounter():
		return fmt.Sprintf("[%04X] warning, counter is %d", uint16(sw), sw.Counter())
	}

	if desc, ok := swDescriptions[sw]; ok {
		return fmt.Sprintf("[%04X] %s", uint16(sw), desc)
	}
	return fmt.Sprintf("[%04X] %s", uint16(sw), sw.categoryDescription())
}

// categoryDescription is the fallback description derived from SW1 alone.
func (sw StatusWord) categoryDescription() string {
	switch sw.SW1() {
	case 0x62:
		return "warning: NV memory unchanged"
	case 0x63:
		return "warning: NV memory changed"
	case 0x64:
		return "execution error: NV memory unchanged"
	case 0x65:
		return "execution error: NV memory changed"
	case 0x66:
		return "execution error: security issue"
	case 0x68:
		return "checking error: function not supported"
	case 0x69:
		return "checking error: command not allowed"
	case 0x6A:
		return "checking error: wrong parameters"
	default:
		return "unknown status"
	}
}

// Status Word codes defined in ISO/IEC 7816-4 that this card family returns.
const (
	SWNoError StatusWord = 0x9000

	SWEOFReached      StatusWord = 0x6282
	SWFileDeactivated StatusWord = 0x6283

	SWWrongLength       StatusWord = 0x6700
	SWSecurityStatus    StatusWord = 0x6982
	SWCommandNotAllowed StatusWord = 0x6986

	SWWrongParams     StatusWord = 0x6A00
	SWFileNotFound    StatusWord = 0x6A82
	SWIncorrectP1P2   StatusWord = 0x6A86
	SWWrongP1P2       StatusWord = 0x6B00
	SWInsInvalid      StatusWord = 0x6D00
	SWClaNotSupported StatusWord = 0x6E00
	SWUnknown         StatusWord = 0x6F00
)

var swDescriptions = map[StatusWord]string{
	SWNoError:           "no error",
	SWEOFReached:        "warning: end of file reached before reading Le bytes",
	SWFileDeactivated:   "warning: selected file deactivated",
	SWWrongLength:       "wrong length",
	SWSecurityStatus:    "security status not satisfied",
	SWCommandNotAllowed: "command not allowed: no current EF",
	SWWrongParams:       "wrong parameters P1-P2",
	SWFileNotFound:      "file or application not found",
	SWIncorrectP1P2:     "incorrect parameters P1-P2",
	SWWrongP1P2:         "wrong parameters P1-P2: offset outside the EF",
	SWInsInvalid:        "instruction code not supported or invalid",
	SWClaNotSupported:   "class not supported",
	SWUnknown:           "no precise diagnosis",
}
