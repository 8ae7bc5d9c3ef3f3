package utils

import (
	"fmt"
	"math/rand"
)

const referenceCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderReference returns a human-readable order reference like
// "MB-7K2FQ9". The charset omits easily confused characters. The top-level
// rand source is locked, so concurrent order creations are safe.
func GenerateOrderReference() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = referenceCharset[rand.Intn(len(referenceCharset))]
	}
	return fmt.Sprintf("MB-%s", string(b))
}
