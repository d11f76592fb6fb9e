package ihex

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeDataRecord(t *testing.T) {
	buf := make([]byte, 3)
	span, err := Decode(strings.NewReader(":0300000011223397\n:00000001FF\n"), buf, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if span != 3 {
		t.Errorf("span = %d, want 3", span)
	}
	if diff := cmp.Diff([]byte{0x11, 0x22, 0x33}, buf); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLowercaseAndCRLF(t *testing.T) {
	buf := make([]byte, 3)
	span, err := Decode(strings.NewReader(":03000000aabbcccc\r\n\r\n:00000001ff\r\n"), buf, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if span != 3 {
		t.Errorf("span = %d, want 3", span)
	}
	if diff := cmp.Diff([]byte{0xAA, 0xBB, 0xCC}, buf); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeExtendedLinearAddress(t *testing.T) {
	buf := make([]byte, 4)
	input := ":020000040001F9\n:04000000DEADBEEFC4\n:00000001FF\n"
	span, err := Decode(strings.NewReader(input), buf, 0x10000, 0x10004)
	if err != nil {
		t.Fatal(err)
	}
	if span != 4 {
		t.Errorf("span = %d, want 4", span)
	}
	if diff := cmp.Diff([]byte{0xDE, 0xAD, 0xBE, 0xEF}, buf); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeExtendedSegmentAddress(t *testing.T) {
	buf := make([]byte, 4)
	input := ":020000021000EC\n:04000000DEADBEEFC4\n:00000001FF\n"
	span, err := Decode(strings.NewReader(input), buf, 0x10000, 0x10004)
	if err != nil {
		t.Fatal(err)
	}
	if span != 4 {
		t.Errorf("span = %d, want 4", span)
	}
	if diff := cmp.Diff([]byte{0xDE, 0xAD, 0xBE, 0xEF}, buf); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSpanCountsGaps(t *testing.T) {
	buf := make([]byte, 0x20)
	input := ":0100000011EE\n:04001000AABBCCDD00\n:00000001FF\n"
	span, err := Decode(strings.NewReader(input), buf, 0, 0x20)
	if err != nil {
		t.Fatal(err)
	}
	if span != 0x14 {
		t.Errorf("span = %#x, want 0x14", span)
	}
	if buf[0] != 0x11 || buf[0x10] != 0xAA || buf[0x13] != 0xDD {
		t.Errorf("captured bytes misplaced: %x", buf)
	}
}

func TestDecodeNoDataRecords(t *testing.T) {
	buf := make([]byte, 0x100)
	span, err := Decode(strings.NewReader(":00000001FF\n"), buf, 0x100, 0x200)
	if err != nil {
		t.Fatal(err)
	}
	if span != 0 {
		t.Errorf("span = %d, want 0", span)
	}
}

func TestDecodeMissingEOFRecordAccepted(t *testing.T) {
	buf := make([]byte, 3)
	if _, err := Decode(strings.NewReader(":0300000011223397\n"), buf, 0, 3); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeChecksumNotVerified(t *testing.T) {
	// Trailing checksum byte is wrong on purpose; decode accepts it.
	buf := make([]byte, 3)
	span, err := Decode(strings.NewReader(":0300000011223300\n"), buf, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if span != 3 {
		t.Errorf("span = %d, want 3", span)
	}
}

func TestDecodeMalformedHeader(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		line  int
	}{
		{"no record mark", ":0300000011223397\nxx00000001FF\n", 2},
		{"short header", ":0300000011223397\n:xyz\n", 2},
		{"bad length field", ":zz00000011223397\n", 1},
		{"bad address field", ":03zzzz0011223397\n", 1},
		{"bad type field", ":030000zz11223397\n", 1},
		{"bad data pair", ":03000000GG223399\n", 1},
		{"bad extension value", ":02000004zzzzF9\n", 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 3)
			_, err := Decode(strings.NewReader(tc.input), buf, 0, 3)
			var mr *MalformedRecordError
			if !errors.As(err, &mr) {
				t.Fatalf("err = %v, want MalformedRecordError", err)
			}
			if mr.Line != tc.line {
				t.Errorf("line = %d, want %d", mr.Line, tc.line)
			}
		})
	}
}

func TestDecodeLineTooLong(t *testing.T) {
	buf := make([]byte, 3)
	_, err := Decode(strings.NewReader(":"+strings.Repeat("0", 600)+"\n"), buf, 0, 3)
	var mr *MalformedRecordError
	if !errors.As(err, &mr) {
		t.Fatalf("err = %v, want MalformedRecordError", err)
	}
}

func TestDecodeBelowWindow(t *testing.T) {
	buf := make([]byte, 0x100)
	_, err := Decode(strings.NewReader(":0100000011EE\n"), buf, 0x100, 0x200)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("err = %v, want OutOfRangeError", err)
	}
	if oor.Line != 1 || oor.Address != 0 {
		t.Errorf("got line %d address %#x, want line 1 address 0", oor.Line, oor.Address)
	}
}

func TestDecodeBeyondWindow(t *testing.T) {
	// Three declared bytes starting at 2 spill out of [0, 4).
	buf := make([]byte, 4)
	_, err := Decode(strings.NewReader(":0300020011223397\n"), buf, 0, 4)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("err = %v, want OutOfRangeError", err)
	}
	if oor.Address != 2 {
		t.Errorf("address = %#x, want 2", oor.Address)
	}
}

func TestDecoderRetainsRecords(t *testing.T) {
	buf := make([]byte, 4)
	input := ":020000040001F9\n:04000000DEADBEEFC4\n:00000001FF\n"
	dec := NewDecoder(strings.NewReader(input), buf, 0x10000, 0x10004)
	if _, err := dec.Decode(); err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{Length: 2, Addr: 0, Type: RecExtLinearAddr, Line: 1},
		{Length: 4, Addr: 0, Type: RecData, Line: 2},
		{Length: 0, Addr: 0, Type: RecEOF, Line: 3},
	}
	if diff := cmp.Diff(want, dec.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}
