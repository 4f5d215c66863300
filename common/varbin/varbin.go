// Package varbin implements the base-128 variable-length integers used by
// SRS rule-set files for every count and length field.
package varbin

import (
	"encoding/binary"
	"errors"
	"io"
)

// MaxLen is the maximum encoded length of a uint64.
const MaxLen = binary.MaxVarintLen64

var ErrOverflow = errors.New("varint overflows a 64-bit integer")

// Append appends the encoding of v to b: seven bits per byte, low group
// first, high bit set on every byte but the last.
func Append(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// Write writes the encoding of v to w.
func Write(w io.Writer, v uint64) error {
	var buf [MaxLen]byte
	_, err := w.Write(Append(buf[:0], v))
	return err
}

// Len returns the number of bytes Append would produce for v.
func Len(v uint64) int {
	n := 1
	for ; v >= 0x80; v >>= 7 {
		n++
	}
	return n
}

// Read decodes one integer from r.
func Read(r io.ByteReader) (uint64, error) {
	var (
		x uint64
		s uint
	)
	for i := 0; i < MaxLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return x, err
		}
		if b < 0x80 {
			if i == MaxLen-1 && b > 1 {
				return x, ErrOverflow
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return x, ErrOverflow
}
