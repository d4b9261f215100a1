package eid

import (
	"errors"
	"fmt"

	"github.com/krstom/jfreesteel/pkg/iso7816"
)

// ErrClosed is returned by every operation on a disconnected card.
var ErrClosed = errors.New("eid: card connection closed")

// ErrMissingFile marks an elementary file whose header reads back as fill
// bytes: the file is not present on this card.
var ErrMissingFile = errors.New("eid: elementary file not present")

// UnknownCardError is returned by NewCard when the chip signature does not
// match any known eID card. The session is left untouched.
type UnknownCardError struct {
	ATR []byte
}

func (e *UnknownCardError) Error() string {
	return fmt.Sprintf("eid: card not recognized as Serbian eID, ATR: %X", e.ATR)
}

// CommandError reports a card command that completed with a status word
// other than 0x9000. Offset and Length are meaningful for read operations
// and describe the request that failed.
type CommandError struct {
	Op     string
	File   File
	Offset int
	Length int
	Status iso7816.StatusWord
}

func (e *CommandError) Error() string {
	if e.Op == "select" {
		return fmt.Sprintf("eid: select %s failed: %s", e.File, e.Status.Verbose())
	}
	return fmt.Sprintf("eid: %s from %s failed: offset=%d, length=%d, status=%s",
		e.Op, e.File, e.Offset, e.Length, e.Status.Verbose())
}

// TextError reports a tag whose value is not valid UTF-8 where text was
// expected.
type TextError struct {
	Tag uint16
}

func (e *TextError) Error() string {
	return fmt.Sprintf("eid: tag %d value is not valid UTF-8 text", e.Tag)
}

// PhotoFormatError reports photo bytes the image boundary could not decode.
type PhotoFormatError struct {
	Err error
}

func (e *PhotoFormatError) Error() string {
	return fmt.Sprintf("eid: photo bytes could not be decoded as an image: %v", e.Err)
}

func (e *PhotoFormatError) Unwrap() error {
	return e.Err
}
