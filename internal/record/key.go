package record

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/roach88/eqsolve/internal/parser"
)

// DomainInput separates input keys from any other hash in the system.
// The version suffix allows changing the key derivation later.
const DomainInput = "eqsolve/input/v1"

// InputKey returns a content-addressed key for equation text.
//
// Inputs that normalize to the same string (whitespace and NFKC
// compatibility forms removed) share a key, so "x - 5 = 3" and "x-5=3"
// are the same history entry.
//
// Format: hex(SHA256(domain + 0x00 + normalized input))
func InputKey(input string) string {
	h := sha256.New()
	h.Write([]byte(DomainInput))
	h.Write([]byte{0x00})
	h.Write([]byte(parser.Normalize(input)))
	return hex.EncodeToString(h.Sum(nil))
}
