package service

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

func newID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// newStorageKey is unrelated to file name or content, so identical uploads
// never share bytes.
func newStorageKey(ext string) string {
	return uuid.NewString() + ext
}
