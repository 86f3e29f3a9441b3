// Package uuid provides UUID v7 generation.
// v7 identifiers sort by creation time, which keeps sqlite b-tree inserts
// append-mostly and lets message ordering fall back on the id as a tiebreaker.
package uuid

import (
	"crypto/rand"
	"fmt"
	"time"
)

// UUID is a 128-bit UUID v7 identifier.
type UUID [16]byte

// NewV7 generates a new UUID v7 (draft-ietf-uuidrev-rfc4122bis):
// 48 bits of unix-millisecond timestamp, version and variant bits,
// the remaining 74 bits random.
func NewV7() UUID {
	var u UUID

	ms := time.Now().UnixMilli()
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)

	// crypto/rand only fails when the OS entropy source is broken;
	// there is no sane way to continue issuing identifiers then.
	if _, err := rand.Read(u[6:]); err != nil {
		panic("uuid: entropy source unavailable: " + err.Error())
	}

	u[6] = 0x70 | (u[6] & 0x0f) // version 7
	u[7] = 0x80 | (u[7] & 0x3f) // RFC 4122 variant

	return u
}

// String renders the UUID in canonical form: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
