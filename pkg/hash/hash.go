package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input.
func SHA256Hex(input []byte) string {
	h := sha256.Sum256(input)
	return hex.EncodeToString(h[:])
}

// ShortHex returns the first n characters of SHA256Hex(input).
// Used for log correlation without storing the raw value.
func ShortHex(input string, n int) string {
	full := SHA256Hex([]byte(input))
	if n > len(full) || n <= 0 {
		return full
	}
	return full[:n]
}
