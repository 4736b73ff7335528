package hhsav

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex-encoded BLAKE3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ContentFingerprint returns the fingerprint of doc's compact JSON form.
// Envelopes whose compact payloads are byte-identical share a content
// fingerprint even when their compressed bytes differ. Number literals are
// hashed as written, so 3 and 3.0 fingerprint differently although Equal
// reports them equal.
func ContentFingerprint(doc Document) (string, error) {
	text, err := encodeJSON(doc, "")
	if err != nil {
		return "", newError(ErrSerialize, "fingerprint", err)
	}
	return Fingerprint(text), nil
}
