package inventory

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var skuPattern = regexp.MustCompile(`^[A-Z]{3}-[A-Z0-9]{6}$`)

func TestGenerateSKUShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		sku := GenerateSKU("iPhone 15")
		assert.Regexp(t, skuPattern, sku)
		assert.True(t, strings.HasPrefix(sku, "IPH-"))
	}
}

func TestGenerateSKUSkipsNonLetters(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateSKU("4K TV Stand"), "KTV-"))
}

func TestGenerateSKUPadsShortNames(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateSKU("ab"), "ABX-"))
	assert.True(t, strings.HasPrefix(GenerateSKU("42"), "XXX-"))
	assert.True(t, strings.HasPrefix(GenerateSKU(""), "XXX-"))
}

func TestGenerateSKURandomSuffix(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateSKU("Widget")] = true
	}
	// 36^6 possibilities; 100 draws colliding down to a handful would mean
	// the suffix is not actually random.
	assert.Greater(t, len(seen), 90)
}
