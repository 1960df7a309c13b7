package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first n characters of SHA256(input).
// Used for log correlation and rate-limit keys without keeping raw PII.
func ShortHash(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) {
		return full
	}
	return full[:n]
}

// HashIP hashes an IP address with a salt so raw addresses never reach
// logs or the rate limiter's key space.
func HashIP(ip, salt string) string {
	return SHA256Hex(salt + ip)
}
