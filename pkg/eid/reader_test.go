package eid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/krstom/jfreesteel/pkg/iso7816"
)

// fakeCard emulates the eID file system behind the Transmitter interface:
// SELECT by path picks a file image, READ BINARY serves slices of it.
type fakeCard struct {
	files    map[File][]byte
	selected File
	hasSel   bool

	calls []iso7816.InsCode

	// Fault injection: from call number failAfter on, answer failWith.
	failAfter int
	failWith  iso7816.StatusWord
}

func withStatus(data []byte, sw iso7816.StatusWord) []byte {
	return append(append([]byte{}, data...), byte(sw>>8), byte(sw))
}

func (f *fakeCard) Transmit(cmd []byte) ([]byte, error) {
	if len(cmd) < 4 {
		return nil, errors.New("fake card: short command")
	}
	ins := iso7816.InsCode(cmd[1])
	f.calls = append(f.calls, ins)

	if f.failAfter > 0 && len(f.calls) >= f.failAfter {
		return withStatus(nil, f.failWith), nil
	}

	switch ins {
	case iso7816.InsSelect:
		lc := int(cmd[4])
		path := cmd[5 : 5+lc]
		if len(path) != 2 {
			return withStatus(nil, iso7816.SWIncorrectP1P2), nil
		}
		file := File{path[0], path[1]}
		if _, ok := f.files[file]; !ok {
			return withStatus(nil, iso7816.SWFileNotFound), nil
		}
		f.selected, f.hasSel = file, true
		return withStatus(nil, iso7816.SWNoError), nil

	case iso7816.InsReadBinary:
		if !f.hasSel {
			return withStatus(nil, iso7816.SWCommandNotAllowed), nil
		}
		data := f.files[f.selected]
		offset := int(cmd[2])<<8 | int(cmd[3])
		le := int(cmd[4])
		if le == 0 {
			le = 256
		}
		if offset >= len(data) {
			return withStatus(nil, iso7816.SWWrongP1P2), nil
		}
		end := offset + le
		if end > offset+255 {
			end = offset + 255
		}
		if end > len(data) {
			end = len(data)
		}
		return withStatus(data[offset:end], iso7816.SWNoError), nil
	}

	return withStatus(nil, iso7816.SWInsInvalid), nil
}

func (f *fakeCard) reads() int {
	n := 0
	for _, ins := range f.calls {
		if ins == iso7816.InsReadBinary {
			n++
		}
	}
	return n
}

// efImage lays out an elementary file: 4 undocumented header bytes, the
// payload length as LE16, inner extra bytes (photo file), then the payload.
func efImage(inner int, payload []byte) []byte {
	img := []byte{0x00, 0x00, 0x00, 0x00}
	img = append(img, byte(len(payload)), byte(len(payload)>>8))
	img = append(img, make([]byte, inner)...)
	return append(img, payload...)
}

// tagValue encodes one tag/length/value triple of the card's TLV layout.
func tagValue(tag uint16, value string) []byte {
	b := make([]byte, 4+len(value))
	binary.LittleEndian.PutUint16(b[0:2], tag)
	binary.LittleEndian.PutUint16(b[2:4], uint16(len(value)))
	copy(b[4:], value)
	return b
}

func testReader(t *testing.T, card iso7816.Transmitter) *fileReader {
	t.Helper()
	return newFileReader(card, t.Logf)
}

func TestReadBinary_Chunking(t *testing.T) {
	payload := make([]byte, 700)
	for i := range payload {
		payload[i] = byte(i)
	}
	card := &fakeCard{files: map[File][]byte{DocumentFile: payload}}
	r := testReader(t, card)

	if err := r.selectFile(DocumentFile); err != nil {
		t.Fatalf("selectFile failed: %v", err)
	}

	got, err := r.readBinary(DocumentFile, 0, 700)
	if err != nil {
		t.Fatalf("readBinary failed: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Error("Payload mismatch")
	}
	// ceil(700/255) bounded exchanges.
	if card.reads() != 3 {
		t.Errorf("Exchanges: got %d, want 3", card.reads())
	}
}

func TestReadBinary_StatusFailure(t *testing.T) {
	card := &fakeCard{
		files:     map[File][]byte{DocumentFile: make([]byte, 600)},
		failAfter: 3, // select + first read succeed, second read fails
		failWith:  iso7816.SWSecurityStatus,
	}
	r := testReader(t, card)

	if err := r.selectFile(DocumentFile); err != nil {
		t.Fatalf("selectFile failed: %v", err)
	}

	_, err := r.readBinary(DocumentFile, 0, 600)
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Expected *CommandError, got %v", err)
	}
	if cmdErr.Status != iso7816.SWSecurityStatus {
		t.Errorf("Status: got %04X, want 6982", uint16(cmdErr.Status))
	}
	if cmdErr.Offset != 255 {
		t.Errorf("Offset: got %d, want 255", cmdErr.Offset)
	}
}

func TestSelectFile_NotFound(t *testing.T) {
	card := &fakeCard{files: map[File][]byte{}}
	r := testReader(t, card)

	err := r.selectFile(PersonalFile)
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Expected *CommandError, got %v", err)
	}
	if cmdErr.Op != "select" || cmdErr.File != PersonalFile {
		t.Errorf("Error context: %+v", cmdErr)
	}
	if cmdErr.Status != iso7816.SWFileNotFound {
		t.Errorf("Status: got %04X, want 6A82", uint16(cmdErr.Status))
	}
}

func TestReadFile(t *testing.T) {
	payload := tagValue(1546, "0012345")
	card := &fakeCard{files: map[File][]byte{
		DocumentFile: efImage(0, payload),
	}}
	r := testReader(t, card)

	got, err := r.readFile(DocumentFile, false)
	if err != nil {
		t.Fatalf("readFile failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Payload: got %X, want %X", got, payload)
	}
}

func TestReadFile_StripsInternalHeader(t *testing.T) {
	payload := []byte{0xCA, 0xFE, 0xBA, 0xBE}
	card := &fakeCard{files: map[File][]byte{
		PhotoFile: efImage(4, payload),
	}}
	r := testReader(t, card)

	got, err := r.readFile(PhotoFile, true)
	if err != nil {
		t.Fatalf("readFile failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Payload: got %X, want %X", got, payload)
	}
}

func TestReadFile_Missing(t *testing.T) {
	for _, file := range []File{DocumentFile, PersonalFile, ResidenceFile, PhotoFile} {
		card := &fakeCard{files: map[File][]byte{
			file: bytes.Repeat([]byte{0xFF}, 16),
		}}
		r := testReader(t, card)

		_, err := r.readFile(file, false)
		if !errors.Is(err, ErrMissingFile) {
			t.Errorf("%s: expected ErrMissingFile, got %v", file, err)
		}
	}
}

// stalledCard answers success with no data, which must not loop forever.
type stalledCard struct{}

func (stalledCard) Transmit([]byte) ([]byte, error) {
	return []byte{0x90, 0x00}, nil
}

func TestReadBinary_EmptySuccessReply(t *testing.T) {
	r := testReader(t, stalledCard{})

	_, err := r.readBinary(DocumentFile, 0, 10)
	if err == nil {
		t.Fatal("Expected error for empty success reply")
	}
}

func TestReadFile_EmptyPayload(t *testing.T) {
	card := &fakeCard{files: map[File][]byte{
		ResidenceFile: efImage(0, nil),
	}}
	r := testReader(t, card)

	got, err := r.readFile(ResidenceFile, false)
	if err != nil {
		t.Fatalf("readFile failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty payload, got %d bytes", len(got))
	}
}
