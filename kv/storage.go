package kv

import (
	"cmp"
	"slices"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case.
//
// Keys are compared case-sensitively, exactly as they were received. Setting an existing key
// replaces its value, so a key is never stored twice.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Set stores the value under the key, overriding the previous one if any.
func (s *Storage) Set(key, value string) *Storage {
	for i := range s.pairs {
		if s.pairs[i].Key == key {
			s.pairs[i].Value = value
			return s
		}
	}

	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})

	return s
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Sorted returns a copy of the pairs ordered by key.
func (s *Storage) Sorted() []Pair {
	sorted := slices.Clone(s.pairs)
	slices.SortFunc(sorted, func(a, b Pair) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return sorted
}

func (s *Storage) Empty() bool {
	return len(s.pairs) == 0
}

// Clone creates a deep copy. Keys and values are copied too, so the clone doesn't keep
// referencing memory the original strings might have been borrowed from.
func (s *Storage) Clone() *Storage {
	clone := NewPrealloc(len(s.pairs))
	for _, pair := range s.pairs {
		clone.pairs = append(clone.pairs, Pair{
			Key:   string([]byte(pair.Key)),
			Value: string([]byte(pair.Value)),
		})
	}

	return clone
}

