package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ComponentID derives a stable component identifier from the component
// kind and its repository-relative path. Hash-based so repeated scans of
// an unchanged tree produce identical models.
func ComponentID(kind, relPath string) string {
	h := sha256.Sum256([]byte(kind + ":" + strings.TrimPrefix(relPath, "/")))
	return hex.EncodeToString(h[:])[:12]
}
