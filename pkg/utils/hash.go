package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// MaskPII returns a short stable identifier for a personal value (buyer
// email, company name) so log lines can correlate a buyer across requests
// without recording the value itself.
func MaskPII(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:12]
}
