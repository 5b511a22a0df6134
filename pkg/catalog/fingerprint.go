package catalog

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3-256 digest of the document's compact
// JSON encoding. Two documents with the same content share a fingerprint
// regardless of the file format they were read from.
func Fingerprint(doc *Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", newError(FormatError, fmt.Errorf("failed to encode catalog for hashing: %w", err), err, "")
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
