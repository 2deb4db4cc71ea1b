package decl

// StringID identifies an interned name.
type StringID uint32

// NoStringID is the ID of the empty string.
const NoStringID StringID = 0

// Interner deduplicates declaration names behind compact IDs.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner allocates an interner with the empty string pre-registered.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern stores s and returns its ID, reusing an existing entry if present.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// Own copy, independent of the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id, reporting whether id is valid.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id and panics on an invalid ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("decl: invalid string ID")
	}
	return s
}

// Len returns the number of interned strings, the empty string included.
func (i *Interner) Len() int { return len(i.byID) }
