package eid

import (
	"encoding/binary"
	"fmt"

	"github.com/krstom/jfreesteel/pkg/iso7816"
)

// Elementary file layout on the eID card.
//
// Every file starts with a proprietary 6-byte header. The only documented
// part of it is the payload length, an unsigned little-endian 16-bit
// number at byte offsets 4-5. Files not present on the card read back as
// 0xFF fill. The payload follows at offset 6; the photo file carries 4
// extra internal-format bytes there which readFile can skip (offset 10).
//
// The header is a convention of this chip family layered on top of the
// generic READ BINARY primitive, so it lives here and not in pkg/iso7816.

const (
	headerSize   = 6
	fillByte     = 0xFF
	maxBlockSize = 255 // READ BINARY cap per exchange

	bodyOffset         = headerSize
	strippedBodyOffset = headerSize + 4
)

// fileReader reads elementary files over a transport client.
type fileReader struct {
	client *iso7816.Client
	logf   func(format string, args ...any)
}

func newFileReader(card iso7816.Transmitter, logf func(format string, args ...any)) *fileReader {
	return &fileReader{
		client: iso7816.NewClient(card),
		logf:   logf,
	}
}

// selectFile selects f by its path from the master file. Success is
// decided solely by the status word.
func (r *fileReader) selectFile(f File) error {
	resp, err := r.client.Send(iso7816.SelectByPath(f.Path()))
	if err != nil {
		return fmt.Errorf("select %s: %w", f, err)
	}
	if !resp.Status.IsSuccess() {
		return &CommandError{Op: "select", File: f, Status: resp.Status}
	}

	if len(resp.Data) > 0 {
		// Some transports hand back file control information on select.
		// Decode it for diagnostics only; the proprietary file header
		// stays the authority on payload length.
		if fci, err := parseFCI(resp.Data); err == nil && fci.Size > 0 {
			r.logf("eid: %s declares %d bytes of file control information size", f, fci.Size)
		}
	}
	return nil
}

// readBinary reads exactly length bytes starting at offset from the
// currently selected file, in chunks of at most maxBlockSize bytes per
// exchange, appended in request order. Any non-success status aborts the
// whole read; the result is strictly length bytes or an error.
func (r *fileReader) readBinary(f File, offset, length int) ([]byte, error) {
	out := make([]byte, 0, length)
	for length > 0 {
		chunk := length
		if chunk > maxBlockSize {
			chunk = maxBlockSize
		}

		resp, err := r.client.Send(iso7816.ReadBinary(offset, chunk))
		if err != nil {
			return nil, fmt.Errorf("read binary %s at offset %d: %w", f, offset, err)
		}
		if !resp.Status.IsSuccess() {
			return nil, &CommandError{Op: "read binary", File: f, Offset: offset, Length: length, Status: resp.Status}
		}
		if len(resp.Data) == 0 || len(resp.Data) > length {
			// An empty success reply would stall the loop, an oversized
			// one would break the exact-length guarantee.
			return nil, fmt.Errorf("eid: read binary %s at offset %d: got %d bytes for a %d byte request",
				f, offset, len(resp.Data), chunk)
		}

		out = append(out, resp.Data...)
		offset += len(resp.Data)
		length -= len(resp.Data)
	}
	return out, nil
}

// readFile selects f and reads its payload. With stripHeader set, the 4
// internal-format bytes following the header are skipped as well; the
// photo file needs this.
func (r *fileReader) readFile(f File, stripHeader bool) ([]byte, error) {
	if err := r.selectFile(f); err != nil {
		return nil, err
	}

	header, err := r.readBinary(f, 0, headerSize)
	if err != nil {
		return nil, err
	}

	if isFill(header) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, f)
	}

	length := int(binary.LittleEndian.Uint16(header[4:6]))
	offset := bodyOffset
	if stripHeader {
		offset = strippedBodyOffset
	}

	return r.readBinary(f, offset, length)
}

// isFill reports whether every byte of b is the fill byte.
func isFill(b []byte) bool {
	for _, c := range b {
		if c != fillByte {
			return false
		}
	}
	return true
}
