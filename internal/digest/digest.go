// Package digest computes content fingerprints of pager pages.
package digest

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/pagination/types"
)

// Keys returns a 64-bit fingerprint of an ordered key sequence.
//
// Each key is length-prefixed, so ["ab", "c"] and ["a", "bc"] differ. The
// empty sequence hashes to a fixed value.
func Keys(keys []string) uint64 {
	h := xxh3.New()
	writeKeys(h, keys)

	return h.Sum64()
}

// Page returns a fingerprint of a page: its position in the full collection
// (current page and page size) and the ordered keys of its items.
//
// Two pages with the same digest show the same records in the same order at
// the same position, which lets a renderer skip redundant redraws.
//
// Parameters:
//   - s: Pager state the page was taken from
//   - keys: Item keys in window order
//
// Returns:
//   - uint64: xxh3 fingerprint
func Page(s types.State, keys []string) uint64 {
	h := xxh3.New()

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(int64(s.CurrentPage))) //nolint:gosec // two's complement is fine for hashing
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(s.PageSize)))    //nolint:gosec // two's complement is fine for hashing
	_, _ = h.Write(buf[:])

	writeKeys(h, keys)

	return h.Sum64()
}

func writeKeys(h *xxh3.Hasher, keys []string) {
	var prefix [8]byte
	for _, k := range keys {
		binary.LittleEndian.PutUint64(prefix[:], uint64(len(k)))
		_, _ = h.Write(prefix[:])
		_, _ = h.WriteString(k)
	}
}
