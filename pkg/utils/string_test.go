package utils

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderReferenceFormat(t *testing.T) {
	ref := GenerateOrderReference()

	require.Len(t, ref, 9)
	assert.True(t, strings.HasPrefix(ref, "MB-"))
	for _, c := range ref[3:] {
		assert.Contains(t, referenceCharset, string(c))
	}
}

func TestGenerateOrderReferenceConcurrent(t *testing.T) {
	const goroutines = 16
	const perGoroutine = 50

	refs := make(chan string, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				refs <- GenerateOrderReference()
			}
		}()
	}
	wg.Wait()
	close(refs)

	for ref := range refs {
		assert.Len(t, ref, 9)
		assert.True(t, strings.HasPrefix(ref, "MB-"))
	}
}
