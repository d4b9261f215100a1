// Package eid reads identity data from the Serbian eID smart card.
//
// A Card wraps an open device session whose chip signature identifies it
// as an eID card, and exposes the card holder record (ReadIdentity) and
// photograph (ReadPhoto). Construct one with NewCard when the reader layer
// reports a card insertion, and release it with Disconnect.
package eid

import (
	"bytes"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/krstom/jfreesteel/pkg/tlv"
)

// Session is the live connection to one physical card, provided by the
// device/reader layer. All calls are synchronous and block until the
// device replies; the session is owned by a single Card for its whole
// lifetime.
type Session interface {
	// ATR returns the answer-to-reset bytes captured when the card was
	// powered up.
	ATR() []byte

	// Transmit performs one command/response exchange.
	Transmit(cmd []byte) ([]byte, error)

	// BeginExclusive and EndExclusive bracket a period during which no
	// other process may contend for the card.
	BeginExclusive() error
	EndExclusive() error

	// Disconnect releases the card, optionally resetting it.
	Disconnect(reset bool) error
}

// knownATRs lists the answer-to-reset signatures of supported eID chips,
// compared by exact byte equality. Add more as they become available.
var knownATRs = [][]byte{
	{0x3B, 0xB9, 0x18, 0x00, 0x81, 0x31, 0xFE, 0x9E, 0x80, 0x73, 0xFF,
		0x61, 0x40, 0x83, 0x00, 0x00, 0x00, 0xDF},
}

// KnownATR reports whether atr matches a supported eID chip signature.
func KnownATR(atr []byte) bool {
	for _, known := range knownATRs {
		if bytes.Equal(atr, known) {
			return true
		}
	}
	return false
}

// Card reads identity data from a Serbian eID card.
//
// A Card is not safe for concurrent use: callers serialize their own calls
// to one Card, or use separate sessions for separate physical devices. The
// exclusive-access bracketing around each read keeps the multi-file
// operation atomic with respect to other processes contending for the
// reader, not against concurrent use of the same Card.
type Card struct {
	// Log receives the unknown-tag diagnostic report and cleanup
	// warnings. Defaults to the standard logger.
	Log *log.Logger

	session Session
	reader  *fileReader
	closed  bool
}

// NewCard wraps an open session after verifying the chip signature.
// A session whose ATR matches no known eID signature is rejected with a
// *UnknownCardError and left untouched.
func NewCard(session Session) (*Card, error) {
	atr := session.ATR()
	if !KnownATR(atr) {
		return nil, &UnknownCardError{ATR: atr}
	}

	c := &Card{session: session}
	c.reader = newFileReader(session, c.logf)

	// Safety net for sessions dropped without Disconnect. Never the
	// primary closure path: finalizers run late or not at all.
	runtime.SetFinalizer(c, (*Card).finalize)

	return c, nil
}

func (c *Card) logf(format string, args ...any) {
	logger := c.Log
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

// ReadIdentity reads the document, personal and residence files, decodes
// them with their translation tables and returns one immutable identity
// record. Unknown tags never fail the read: they are aggregated across
// the three files, logged and exposed through Info.UnknownTags. The whole
// multi-file read runs under exclusive card access.
func (c *Card) ReadIdentity() (*Info, error) {
	builder := NewBuilder()

	err := c.withExclusive(func() error {
		parts := []struct {
			file  File
			table map[uint16]Field
		}{
			{DocumentFile, documentTagMap},
			{PersonalFile, personalTagMap},
			{ResidenceFile, residenceTagMap},
		}

		for _, part := range parts {
			raw, err := c.reader.readFile(part.file, false)
			if err != nil {
				return err
			}

			tags, err := tlv.Parse(raw)
			if err != nil {
				return fmt.Errorf("eid: %s: %w", part.file, err)
			}

			unknown, err := extract(builder, tags, part.table)
			if err != nil {
				return err
			}
			builder.addUnknown(part.file, unknown)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	info := builder.Build()
	c.reportUnknownTags(info)
	return info, nil
}

// ReadPhoto reads the photo file with its internal header stripped and
// runs the bytes through the image decoding boundary.
func (c *Card) ReadPhoto() (*Photo, error) {
	var data []byte

	err := c.withExclusive(func() error {
		var err error
		data, err = c.reader.readFile(PhotoFile, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	return decodePhoto(data)
}

// Disconnect releases the card connection, optionally resetting the card.
// Every operation afterwards fails with ErrClosed.
func (c *Card) Disconnect(reset bool) error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	runtime.SetFinalizer(c, nil)

	if err := c.session.Disconnect(reset); err != nil {
		return fmt.Errorf("eid: disconnect: %w", err)
	}
	return nil
}

// withExclusive brackets fn with exclusive card access. The release runs
// on every exit path; a release failure leaves the reader unusable for
// others, so it is logged loudly, but never masks fn's own error.
func (c *Card) withExclusive(fn func() error) error {
	if c.closed {
		return ErrClosed
	}

	if err := c.session.BeginExclusive(); err != nil {
		return fmt.Errorf("eid: begin exclusive access: %w", err)
	}
	defer func() {
		if err := c.session.EndExclusive(); err != nil {
			c.logf("eid: warning: failed to release exclusive access: %v", err)
		}
	}()

	return fn()
}

// reportUnknownTags logs every tag the translation tables did not
// recognize, so new tags can be discovered in the field without breaking
// existing decoding.
func (c *Card) reportUnknownTags(info *Info) {
	unknown := info.UnknownTags()
	if len(unknown) == 0 {
		return
	}

	var sb strings.Builder
	for _, file := range []File{DocumentFile, PersonalFile, ResidenceFile} {
		if tags, ok := unknown[file]; ok {
			fmt.Fprintf(&sb, "%s:\n%s\n", strings.ToUpper(file.String()), tlv.Describe(tags))
		}
	}
	c.logf("eid: unknown tags found on the card, please report them:\n%s", strings.TrimRight(sb.String(), "\n"))
}

func (c *Card) finalize() {
	if c.closed {
		return
	}
	if err := c.session.Disconnect(false); err != nil {
		log.Printf("eid: warning: best-effort disconnect failed: %v", err)
	}
}
