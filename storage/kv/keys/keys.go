package keys

import (
	"bytes"
)

// Key is a single key
type Key []byte

// Compare compares two keys
// -1 means a < b
// 1 means a > b
// 0 means a = b
func Compare(a, b Key) int {
	return bytes.Compare(a, b)
}

// Unbounded returns true if the bound k places no
// restriction on the range. Empty keys are never
// stored, so an empty bound means "no bound".
func Unbounded(k Key) bool {
	return len(k) == 0
}

// AboveMax returns true if key lies past the upper bound max.
//   inclusive: key > max
//   exclusive: key >= max
// An empty max never excludes anything.
func AboveMax(key, max Key, inclusive bool) bool {
	if Unbounded(max) {
		return false
	}

	c := Compare(key, max)

	if inclusive {
		return c > 0
	}

	return c >= 0
}

// BelowMin returns true if key lies before the lower bound min.
//   inclusive: key < min
//   exclusive: key <= min
// An empty min never excludes anything.
func BelowMin(key, min Key, inclusive bool) bool {
	if Unbounded(min) {
		return false
	}

	c := Compare(key, min)

	if inclusive {
		return c < 0
	}

	return c <= 0
}

// Copy returns a copy of k that does not share memory with it.
// A nil key stays nil.
func Copy(k []byte) []byte {
	if k == nil {
		return nil
	}

	c := make([]byte, len(k))
	copy(c, k)

	return c
}

// Next returns the smallest key greater than key. No
// other key sorts between key and Next(key).
func Next(key Key) Key {
	next := make(Key, len(key)+1)

	copy(next, key)

	return next
}
