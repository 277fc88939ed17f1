// Package cache stores OCR results so re-running a batch with the same
// images and settings skips the engine entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the storage contract shared by the memory and disk layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the recognition inputs: the raw image
// bytes plus every setting that changes the OCR output (preprocess
// chain, languages, page segmentation mode).
func Key(imageData []byte, parts ...string) string {
	h := sha256.New()
	h.Write(imageData)
	h.Write([]byte("\x00"))
	h.Write([]byte(strings.Join(parts, "|")))
	return "verbscope:v1:" + hex.EncodeToString(h.Sum(nil))
}
