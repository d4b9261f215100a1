package tlv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_ShortInput(t *testing.T) {
	// Anything shorter than one tag+length header plus a value byte is
	// trailing padding by definition and yields an empty map.
	inputs := [][]byte{
		nil,
		{},
		{0x0A},
		{0x0A, 0x06},
		{0x0A, 0x06, 0x01},
		{0x0A, 0x06, 0x01, 0x00},
	}

	for _, input := range inputs {
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%X) failed: %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("Parse(%X): expected empty map, got %v", input, got)
		}
	}
}

func TestParse_Triples(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Map
	}{
		{
			name: "single triple",
			// tag 1546 LE, length 7 LE, "0012345"
			input: Hex("0A 06 07 00 30303132333435"),
			want:  Map{1546: []byte("0012345")},
		},
		{
			name: "two triples",
			input: Hex(
				"0A 06 07 00 30303132333435", // 1546 = "0012345"
				"0B 06 02 00 4944",           // 1547 = "ID"
			),
			want: Map{
				1546: []byte("0012345"),
				1547: []byte("ID"),
			},
		},
		{
			name: "zero length value",
			input: Hex(
				"0A 06 00 00",
				"0B 06 02 00 4944",
			),
			want: Map{
				1546: []byte{},
				1547: []byte("ID"),
			},
		},
		{
			name: "trailing padding up to four bytes is ignored",
			input: Hex(
				"0B 06 02 00 4944",
				"FF FF FF FF",
			),
			want: Map{1547: []byte("ID")},
		},
		{
			name: "duplicate tag: last occurrence wins",
			input: Hex(
				"0A 06 03 00 414141", // 1546 = "AAA"
				"0A 06 03 00 424242", // 1546 = "BBB"
			),
			want: Map{1546: []byte("BBB")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Map mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Overrun(t *testing.T) {
	// Tag 1546 declares 16 value bytes but only 3 follow.
	input := Hex("0A 06 10 00 414141")

	_, err := Parse(input)
	if err == nil {
		t.Fatal("Expected overrun error, got nil")
	}

	var overrun *OverrunError
	if !errors.As(err, &overrun) {
		t.Fatalf("Expected *OverrunError, got %T: %v", err, err)
	}
	if overrun.Tag != 1546 || overrun.Length != 16 || overrun.Remaining != 3 {
		t.Errorf("OverrunError fields: %+v", overrun)
	}
}
