package value

// StructType names a struct shape: a name plus its ordered field names,
// installed by evaluating a StructDefinition node.
type StructType struct {
	Name   string
	Fields []string
}

func (*StructType) value()       {}
func (*StructType) Truthy() bool { return true }

// entry is one slot of a Struct's insertion-ordered storage. For a
// nominal struct, Key is the field name and Val its bound value. For a
// hash table, Key is the printed form of the original key (see
// internal/builtin's hashKey helper) and KeyValue holds the un-printed
// key Value so hash-keys can return it verbatim. For a set, Val is
// unused (left nil).
type entry struct {
	Key      string
	KeyValue Value
	Val      Value
}

// Struct is the single storage representation shared by nominal structs,
// hash tables, and sets per spec.md §3/§4.7, distinguished by Type
// (nil for hash tables/sets) and HasValues (false for sets).
type Struct struct {
	Type      *StructType // nil: hash-table or set
	HasValues bool        // false: set (Val slots unused)
	order     []string    // insertion order of keys
	index     map[string]int
	entries   map[string]entry
}

func NewStruct(t *StructType) *Struct {
	return &Struct{Type: t, HasValues: true, index: map[string]int{}, entries: map[string]entry{}}
}

func NewHashTable() *Struct {
	return &Struct{HasValues: true, index: map[string]int{}, entries: map[string]entry{}}
}

func NewSet() *Struct {
	return &Struct{HasValues: false, index: map[string]int{}, entries: map[string]entry{}}
}

func (*Struct) value()       {}
func (*Struct) Truthy() bool { return true }

// Get looks up a field/key by its printed form; ok is false if absent.
func (s *Struct) Get(printedKey string) (Value, bool) {
	e, ok := s.entries[printedKey]
	if !ok {
		return nil, false
	}
	return e.Val, true
}

// Set installs or overwrites a field/key, preserving original insertion
// order on update and appending on first insertion.
func (s *Struct) Set(printedKey string, keyValue, v Value) {
	if _, exists := s.entries[printedKey]; !exists {
		s.index[printedKey] = len(s.order)
		s.order = append(s.order, printedKey)
	}
	s.entries[printedKey] = entry{Key: printedKey, KeyValue: keyValue, Val: v}
}

// Remove deletes a key if present; ok reports whether it was present.
func (s *Struct) Remove(printedKey string) (ok bool) {
	if _, exists := s.entries[printedKey]; !exists {
		return false
	}
	delete(s.entries, printedKey)
	i := s.index[printedKey]
	delete(s.index, printedKey)
	s.order = append(s.order[:i], s.order[i+1:]...)
	for k, idx := range s.index {
		if idx > i {
			s.index[k] = idx - 1
		}
	}
	return true
}

func (s *Struct) Contains(printedKey string) bool {
	_, ok := s.entries[printedKey]
	return ok
}

// Keys returns the original (un-printed) key values in insertion order.
func (s *Struct) Keys() []Value {
	out := make([]Value, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k].KeyValue)
	}
	return out
}

func (s *Struct) Count() int { return len(s.order) }
