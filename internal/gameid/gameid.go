// Package gameid generates leaderboard entry identifiers. IDs are UUIDv7
// values encoded as 26-character Crockford base32 strings, so lexicographic
// order matches generation order.
package gameid

import (
	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns a fresh sortable identifier.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the platform random source does; fall back
		// to a purely random UUID rather than propagating an error for an ID.
		id = uuid.New()
	}
	return encodeBase32(id)
}

// encodeBase32 packs the 128-bit UUID into 26 base32 characters, most
// significant bits first, matching the TypeID suffix encoding.
func encodeBase32(id uuid.UUID) string {
	var out [26]byte

	// 128 bits = 26 groups of 5 bits with 2 bits of zero padding up front.
	var acc uint64
	bits := 0
	pos := 0

	// Prime the accumulator with 2 zero pad bits.
	acc = 0
	bits = 2

	for _, b := range id {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = alphabet[(acc>>uint(bits))&0x1f]
			pos++
			acc &= (1 << uint(bits)) - 1
		}
	}
	return string(out[:])
}
