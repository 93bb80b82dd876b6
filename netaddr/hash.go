package netaddr

import (
	"crypto/sha256"
	"encoding/hex"
)

// HexToBytes decodes a hex string (two hex digits per byte, no whitespace
// or separators) into a newly allocated byte buffer. The caller owns the
// returned slice. Returns an error and a nil slice on malformed input
// (odd length or a non-hex digit).
func HexToBytes(s string) ([]byte, error) {
	out := make([]byte, len(s)/2)
	n, err := hex.Decode(out, []byte(s))
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// SHA256 returns the SHA-256 digest of buf. The algorithm is fixed by
// the wire format that consumes it, not a choice between competing
// libraries, so the standard-library implementation is used directly.
func SHA256(buf []byte) [sha256.Size]byte {
	return sha256.Sum256(buf)
}
