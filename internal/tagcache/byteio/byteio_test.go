package byteio

import (
	"bytes"
	"testing"
	"time"
)

func TestWriteReadUint32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteUint32(&buf, 0x12345678); err != nil {
		t.Fatalf("WriteUint32: %v", err)
	}
	got, err := ReadUint32(&buf, "test")
	if err != nil {
		t.Fatalf("ReadUint32: %v", err)
	}
	if got != 0x12345678 {
		t.Errorf("got %#x, want %#x", got, 0x12345678)
	}
}

func TestReadUint32ShortRead(t *testing.T) {
	_, err := ReadUint32(bytes.NewReader([]byte{0x01, 0x02}), "short.tcd")
	if err == nil {
		t.Fatal("expected a ShortRead error, got nil")
	}
	sr, ok := err.(*ShortRead)
	if !ok {
		t.Fatalf("expected *ShortRead, got %T", err)
	}
	if sr.Expected != 4 || sr.Got != 2 {
		t.Errorf("expected {4,2}, got {%d,%d}", sr.Expected, sr.Got)
	}
}

func TestCRC32LowercasesInput(t *testing.T) {
	if CRC32("ABC") != CRC32("abc") {
		t.Error("CRC32 should be case-insensitive")
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	// FAT32 packed time only has 2-second resolution.
	in := time.Date(2024, time.March, 15, 13, 37, 42, 0, time.Local)
	packed := Pack(in)
	out := Unpack(packed)

	if out.Year() != in.Year() || out.Month() != in.Month() || out.Day() != in.Day() {
		t.Errorf("date mismatch: got %v, want %v", out, in)
	}
	if out.Hour() != in.Hour() || out.Minute() != in.Minute() {
		t.Errorf("time mismatch: got %v, want %v", out, in)
	}
	if out.Second() != 42 {
		t.Errorf("expected seconds rounded down to even, got %d", out.Second())
	}
}
