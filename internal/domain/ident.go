package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces opaque unique identifiers for ledger entries,
// negotiations and log entries. Abstracted so tests can supply
// deterministic sequences.
type IDGenerator interface {
	NewID() string
}

// Clock supplies timestamps for entity and log ordering. Abstracted so
// tests get reproducible ordering.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator is the production IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// PlaceholderAddress returns a pseudo-random "0x"-prefixed 16-hex-digit
// address, used when a company registers without an on-chain address.
func PlaceholderAddress() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "0x" + hex.EncodeToString(b[:])
}
