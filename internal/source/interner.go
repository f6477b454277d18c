package source

import (
	"slices"
)

type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier and literal text so AST payloads can
// carry compact StringIDs instead of strings.
type Interner struct {
	byID  []string            // byID[0] = "" for NoStringID
	index map[string]StringID // string -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, allocating a new one on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy so we do not keep the caller's backing buffer alive.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns a byte slice.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for an ID, or ("", false) for an invalid ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for an ID, panicking on an invalid ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether the ID is valid in this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, NoStringID included.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
