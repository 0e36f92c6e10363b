package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// ShortHashLen is the length of the identifier returned by ShortHash.
const ShortHashLen = 8

// ShortHash returns the first 8 hex characters of the SHA-256 digest of
// the node's canonical JSON form. It is the fallback fragment identifier
// when no configured field matches.
func (y *Node) ShortHash() string {
	d, err := y.MarshalJSON()
	if err != nil {
		d = nil
	}
	sum := sha256.Sum256(d)
	return hex.EncodeToString(sum[:])[:ShortHashLen]
}

// LooksLikeShortHash reports whether s has the shape of a ShortHash
// result: exactly 8 lowercase hex characters. A genuine field value of
// that shape is indistinguishable from a hash fallback; see the resolver
// in package uniqueid.
func LooksLikeShortHash(s string) bool {
	if len(s) != ShortHashLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		return false
	}
	return true
}
