package parser

// Interner keeps one canonical copy of each account label and currency
// symbol. A ledger repeats a small set of both on nearly every entry line.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of the string.
// If the string is already in the pool, returns the existing instance.
// Otherwise, adds it to the pool and returns it.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternBytes converts a byte slice to a string and interns it.
func (i *Interner) InternBytes(b []byte) string {
	// The compiler avoids allocating for string(b) in a map index.
	if interned, ok := i.pool[string(b)]; ok {
		return interned
	}
	s := string(b)
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the intern pool.
// Useful for diagnostics and testing.
func (i *Interner) Size() int {
	return len(i.pool)
}

// Reset clears the intern pool.
func (i *Interner) Reset() {
	i.pool = make(map[string]string)
}
