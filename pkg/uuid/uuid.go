// Package uuid produces the 128-bit identifiers stamped onto every outgoing
// bus message. Identifiers are time-ordered: the high word carries a 48-bit
// millisecond timestamp and a 12-bit issuance counter, so identifiers minted
// by one generator sort by (timestamp, counter) in issuance order.
package uuid

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Bit layout of the two 64-bit words.
const (
	TimestampShift = 16
	VersionShift   = 12
	VariantShift   = 62

	Version8       = uint64(8)
	VariantRFC4122 = uint64(0b10)

	VersionMask   = uint64(0xF)
	VariantMask   = uint64(0x3)
	CounterMask   = uint64(0xFFF)
	TimestampMask = uint64(0xFFFF_FFFF_FFFF)
	RandomMask    = uint64(1)<<VariantShift - 1

	// MaxCounter is the saturation point of the per-millisecond counter.
	MaxCounter = uint16(0xFFF)
)

// UUID is a 128-bit message identifier split into two 64-bit words.
type UUID struct {
	MSB uint64
	LSB uint64
}

// IsZero reports whether the identifier is entirely unset.
func (u UUID) IsZero() bool { return u.MSB == 0 && u.LSB == 0 }

// Time returns the embedded millisecond timestamp.
func (u UUID) Time() time.Time {
	return time.UnixMilli(int64(u.MSB >> TimestampShift & TimestampMask))
}

// Counter returns the issuance counter within the identifier's millisecond.
func (u UUID) Counter() uint16 { return uint16(u.MSB & CounterMask) }

// Version returns the 4-bit version field.
func (u UUID) Version() uint8 { return uint8(u.MSB >> VersionShift & VersionMask) }

// Variant returns the 2-bit variant field.
func (u UUID) Variant() uint8 { return uint8(u.LSB >> VariantShift & VariantMask) }

// Bytes returns the identifier as 16 big-endian bytes.
func (u UUID) Bytes() [16]byte {
	var out [16]byte
	binary.BigEndian.PutUint64(out[:8], u.MSB)
	binary.BigEndian.PutUint64(out[8:], u.LSB)
	return out
}

// String renders the canonical 8-4-4-4-12 hex form.
func (u UUID) String() string {
	b := u.Bytes()
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// Parse reads the canonical 8-4-4-4-12 hex form back into a UUID.
func Parse(s string) (UUID, error) {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return UUID{}, errors.New("uuid: malformed identifier")
	}
	raw := make([]byte, 0, 32)
	for _, part := range []string{s[0:8], s[9:13], s[14:18], s[19:23], s[24:36]} {
		raw = append(raw, part...)
	}
	var b [16]byte
	if _, err := hex.Decode(b[:], raw); err != nil {
		return UUID{}, fmt.Errorf("uuid: malformed identifier: %w", err)
	}
	return UUID{
		MSB: binary.BigEndian.Uint64(b[:8]),
		LSB: binary.BigEndian.Uint64(b[8:]),
	}, nil
}
