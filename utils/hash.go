package utils

import "hash/fnv"

// FNV-1a fingerprint helpers shared by the registry lookup caches and the
// definition hash codes.

func U64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func U64ToBytes(u uint64) []byte {
	return []byte{
		byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}
}

func Mix64(a, b uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(U64ToBytes(a))
	_, _ = h.Write(U64ToBytes(b))
	return h.Sum64()
}

// MixStrings folds an ordered list of strings into seed. Order matters:
// MixStrings(s, "a", "b") and MixStrings(s, "b", "a") differ.
func MixStrings(seed uint64, parts ...string) uint64 {
	acc := seed
	for _, p := range parts {
		acc = Mix64(acc, U64(p))
	}
	return acc
}
