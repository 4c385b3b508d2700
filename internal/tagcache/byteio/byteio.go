// Package byteio provides the little-endian fixed-width integer primitives
// the tagcache codec is built on, plus the legacy CRC32 and FAT32 packed
// time helpers used by the on-disk format.
package byteio

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
	"time"
)

// ShortRead is returned when fewer than the expected number of bytes could
// be read from a stream.
type ShortRead struct {
	Path     string
	Expected int
	Got      int
}

func (e *ShortRead) Error() string {
	return fmt.Sprintf("short read on %s: expected %d bytes, got %d", e.Path, e.Expected, e.Got)
}

// ReadUint32 reads one little-endian uint32 from r. The path is carried only
// for error messages; pass "" when none is meaningful.
func ReadUint32(r io.Reader, path string) (uint32, error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, &ShortRead{Path: path, Expected: 4, Got: n}
		}
		return 0, fmt.Errorf("byteio: read uint32 from %s: %w", path, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteUint32 writes one little-endian uint32 to w.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// CRC32 computes the standard IEEE CRC32 of the lowercase UTF-8 bytes of s.
// It is a legacy helper for the deleted-entry checksum scheme mentioned in
// Rockbox's tagcache; the default build/finalize pipeline never calls it.
func CRC32(s string) uint32 {
	return crc32.ChecksumIEEE([]byte(strings.ToLower(s)))
}

// Pack encodes t's local-time components into Rockbox's FAT32 packed
// date+time: date word = ((year-1980)<<9) | (month<<5) | day;
// time word = (hour<<11) | (minute<<5) | (second/2); result = date<<16 | time.
func Pack(t time.Time) uint32 {
	local := t.Local()
	year := uint32(local.Year() - 1980)
	month := uint32(local.Month())
	day := uint32(local.Day())
	dateWord := (year << 9) | (month << 5) | day

	hour := uint32(local.Hour())
	minute := uint32(local.Minute())
	second := uint32(local.Second())
	timeWord := (hour << 11) | (minute << 5) | (second / 2)

	return (dateWord << 16) | timeWord
}

// Unpack decodes a FAT32 packed date+time back to a local time.Time. It is a
// diagnostic/inspection helper; the codec itself never needs to invert a
// packed mtime.
func Unpack(packed uint32) time.Time {
	dateWord := packed >> 16
	timeWord := packed & 0xFFFF

	year := int(((dateWord >> 9) & 0x7F)) + 1980
	month := int((dateWord >> 5) & 0x0F)
	day := int(dateWord & 0x1F)

	hour := int((timeWord >> 11) & 0x1F)
	minute := int((timeWord >> 5) & 0x3F)
	second := int(timeWord&0x1F) * 2

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
}
