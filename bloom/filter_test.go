package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/wikiwalk/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Key not yet added should return false
	assert.False(t, f.Test("https://en.wikipedia.org|Dog"))

	// Add key
	f.Add("https://en.wikipedia.org|Dog")

	// Now it should return true
	assert.True(t, f.Test("https://en.wikipedia.org|Dog"))

	// Different key should still return false
	assert.False(t, f.Test("https://en.wikipedia.org|Cat"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Empty filter should have count near 0
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://en.wikipedia.org|Dog")
	f.Add("https://en.wikipedia.org|Cat")
	f.Add("https://en.wikipedia.org|Wolf")

	// Estimated count should be approximately 3
	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	key := "https://en.wikipedia.org|Philosophy"

	f.Add(key)
	countAfterFirst := f.EstimatedCount()

	// Adding the same key multiple times should not change the filter
	f.Add(key)
	f.Add(key)
	f.Add(key)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(key))
}

func TestFilter_Reset(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("https://en.wikipedia.org|Dog")
	f.Reset()

	assert.False(t, f.Test("https://en.wikipedia.org|Dog"))
	assert.Equal(t, uint(0), f.EstimatedCount())
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	// Add 10k keys
	for i := range numItems {
		f.Add(fmt.Sprintf("https://en.wikipedia.org|Added_%d", i))
	}

	// Test with 10k keys that were NOT added
	falsePositives := 0
	for i := range testProbes {
		key := fmt.Sprintf("https://en.wikipedia.org|Missing_%d", i)
		if f.Test(key) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
