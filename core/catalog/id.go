package catalog

import "math/rand/v2"

// alphabet matches the ids used throughout the community catalog,
// similar to nanoid: https://github.com/ai/nanoid/blob/main/nanoid.js
const idAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// NewID returns a short random identifier in the catalog's id alphabet.
func NewID() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
