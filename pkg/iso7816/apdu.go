package iso7816

import (
	"bytes"
	"fmt"
)

// APDU structures and encodings according to ISO/IEC 7816-3 and 7816-4.
//
// COMMAND APDU (C-APDU):
// A mandatory 4-byte header (CLA, INS, P1, P2) followed by an optional body:
//   - Lc + Data: the payload sent to the card.
//   - Le: the maximum number of response bytes expected.
//
// Depending on which body parts are present, the command falls into one of
// the four ISO 7816-3 cases (header only, Le only, Lc+Data only, or both).
//
// LENGTH MODES:
// Lc and Le are encoded on one byte (Short mode, Lc<=255, Le<=256 where
// 0x00 stands for 256) unless either exceeds the short range, in which case
// the whole body switches to Extended mode (16-bit lengths).
//
// RESPONSE APDU (R-APDU):
// Response data followed by a mandatory 2-byte trailer, the Status Word
// (SW1 SW2). 0x9000 indicates success.

// APDU length limits according to ISO 7816-3.
const (
	// MaxShortLc is the largest payload encodable with a 1-byte Lc.
	MaxShortLc = 255

	// MaxShortLe is the largest expected length encodable with a 1-byte Le.
	// In Short mode, 0x00 encodes 256.
	MaxShortLe = 256

	// MaxExtendedLc is the largest payload encodable in Extended mode.
	MaxExtendedLc = 65535

	// MaxExtendedLe is the largest expected length in Extended mode.
	// 0x0000 encodes 65536.
	MaxExtendedLe = 65536
)

// CommandAPDU represents a command sent to the card.
type CommandAPDU struct {
	Cla    byte
	Ins    InsCode
	P1, P2 byte
	Data   []byte
	Ne     int // expected response length, 0 for none
}

// Bytes encodes the command into its wire representation. Short or Extended
// length encoding is selected from the sizes of Data and Ne.
func (c *CommandAPDU) Bytes() ([]byte, error) {
	if err := c.Ins.Validate(); err != nil {
		return nil, err
	}

	nc := len(c.Data)
	if nc > MaxExtendedLc {
		return nil, fmt.Errorf("command data too long: %d bytes", nc)
	}
	if c.Ne < 0 || c.Ne > MaxExtendedLe {
		return nil, fmt.Errorf("expected length out of range: %d", c.Ne)
	}

	extended := nc > MaxShortLc || c.Ne > MaxShortLe

	var buf bytes.Buffer
	buf.WriteByte(c.Cla)
	buf.WriteByte(byte(c.Ins))
	buf.WriteByte(c.P1)
	buf.WriteByte(c.P2)

	if nc > 0 {
		if extended {
			buf.WriteByte(0x00)
			buf.WriteByte(byte(nc >> 8))
			buf.WriteByte(byte(nc))
		} else {
			buf.WriteByte(byte(nc))
		}
		buf.Write(c.Data)
	}

	if c.Ne > 0 {
		switch {
		case !extended && c.Ne == MaxShortLe:
			buf.WriteByte(0x00)
		case !extended:
			buf.WriteByte(byte(c.Ne))
		default:
			if nc == 0 {
				// Case 2 Extended: leading zero so Le is not read as Lc.
				buf.WriteByte(0x00)
			}
			if c.Ne == MaxExtendedLe {
				buf.WriteByte(0x00)
				buf.WriteByte(0x00)
			} else {
				buf.WriteByte(byte(c.Ne >> 8))
				buf.WriteByte(byte(c.Ne))
			}
		}
	}

	return buf.Bytes(), nil
}

// String returns a readable summary of the command meta-data.
func (c *CommandAPDU) String() string {
	return fmt.Sprintf("%s | P1: %02X, P2: %02X | Lc: %d | Le: %d",
		c.Ins, c.P1, c.P2, len(c.Data), c.Ne)
}

// ResponseAPDU represents the reply from the card.
type ResponseAPDU struct {
	Data   []byte
	Status StatusWord
}

// ParseResponseAPDU splits raw bytes received from the card into response
// data and status word. The input must hold at least the 2-byte trailer.
func ParseResponseAPDU(raw []byte) (*ResponseAPDU, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("response too short: %d bytes", len(raw))
	}

	n := len(raw) - 2
	return &ResponseAPDU{
		Data:   raw[:n],
		Status: NewStatusWord(raw[n], raw[n+1]),
	}, nil
}

// String returns a readable summary of the response.
func (r *ResponseAPDU) String() string {
	return fmt.Sprintf("Data (%d bytes) | Status: %s", len(r.Data), r.Status.Verbose())
}
