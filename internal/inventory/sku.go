package inventory

import (
	"math/rand/v2"
	"strings"
)

const skuCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSKU builds a server-side SKU: the first three letters of the name
// uppercased (padded with X) plus six random alphanumerics, e.g.
// "iPhone 15" -> "IPH-9X2B4A". Collisions against the unique index are
// handled by the caller's bounded retry.
func GenerateSKU(name string) string {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			prefix.WriteRune(r)
			if prefix.Len() == 3 {
				break
			}
		}
	}
	for prefix.Len() < 3 {
		prefix.WriteByte('X')
	}

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = skuCharset[rand.IntN(len(skuCharset))]
	}

	return prefix.String() + "-" + string(suffix)
}
