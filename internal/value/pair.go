package value

// Pair is a cons cell. A Pair chain whose Right eventually reaches Nil is
// a "list" per spec.md §3's Pair/list duality invariant; IsList reports
// that structurally rather than by a separate tag.
type Pair struct {
	Left, Right Value
}

func (*Pair) value() {}

// Truthy: an empty Pair-list (Nil) is falsy, any cons cell is truthy —
// but Truthy is defined on Nil, not Pair, so a non-nil *Pair is always
// truthy here; emptiness is represented by Nil{}, never a nil *Pair.
func (*Pair) Truthy() bool { return true }

// IsList reports whether v is Nil or a Pair chain terminating in Nil.
func IsList(v Value) bool {
	for {
		switch t := v.(type) {
		case Nil:
			return true
		case *Pair:
			v = t.Right
		default:
			return false
		}
	}
}

// ListElements flattens a Pair-list into a slice; ok is false if v is not
// list-shaped.
func ListElements(v Value) (elems []Value, ok bool) {
	for {
		switch t := v.(type) {
		case Nil:
			return elems, true
		case *Pair:
			elems = append(elems, t.Left)
			v = t.Right
		default:
			return nil, false
		}
	}
}

// ListFromSlice builds a Pair-list from elems, terminating in Nil.
func ListFromSlice(elems []Value) Value {
	var result Value = Nil{}
	for i := len(elems) - 1; i >= 0; i-- {
		result = &Pair{Left: elems[i], Right: result}
	}
	return result
}

// ListCount returns the number of elements in a Pair-list; ok is false
// for a non-list-shaped Pair chain.
func ListCount(v Value) (int, bool) {
	n := 0
	for {
		switch t := v.(type) {
		case Nil:
			return n, true
		case *Pair:
			n++
			v = t.Right
		default:
			return 0, false
		}
	}
}
