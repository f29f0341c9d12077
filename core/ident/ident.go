package ident

import (
	"hash/fnv"
	"path/filepath"
	"strings"
	"sync"
)

// Stem extracts the identifier stem from a file path by stripping the
// configured suffix from the filename.
//
// It returns ok == false when the path is not a candidate:
//   - the filename does not end with suffix
//   - the stem is empty after stripping
//   - the stem starts with "." (hidden file convention)
//   - the stem starts with "_" (disabled file convention)
//
// Stem is pure and never fails for any input; non-candidates are simply
// reported as not applicable.
func Stem(path, suffix string) (string, bool) {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return "", false
	}

	if !strings.HasSuffix(name, suffix) {
		return "", false
	}

	stem := strings.TrimSuffix(name, suffix)
	if stem == "" {
		return "", false
	}
	if strings.HasPrefix(stem, ".") || strings.HasPrefix(stem, "_") {
		return "", false
	}

	return stem, true
}

// IsHiddenOrDisabled reports whether the path's filename starts with "."
// or "_". Collaborators use this for their own filtering, independent of
// any suffix rule.
func IsHiddenOrDisabled(path string) bool {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return false
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// Interner canonicalizes stem strings so that equal stems always map to the
// same string value. It bounds memory to the set of distinct stems seen,
// replacing ad hoc per-file allocations.
type Interner struct {
	mu    sync.Mutex
	table map[string]string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]string)}
}

// Intern returns the canonical copy of s.
func (i *Interner) Intern(s string) string {
	i.mu.Lock()
	defer i.mu.Unlock()

	if canonical, ok := i.table[s]; ok {
		return canonical
	}
	i.table[s] = s
	return s
}

// Len returns the number of distinct strings interned so far.
func (i *Interner) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.table)
}

// HashID derives a deterministic 64-bit identifier from a stem using
// FNV-1a. Callers that want compact integer IDs instead of interned
// strings can use this as their ID constructor.
func HashID(stem string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stem))
	return h.Sum64()
}
