package value

// Stream is BOLI's lazy-sequence value, grounded directly on
// original_source's interpreter/values/stream.rs StreamValue enum: a
// closed set of variants that each know how to produce their next element
// and how to clone their own advancing state independently of whatever
// they were built from.
//
// The critical invariant (exercised by the Rust test suite this package's
// tests mirror) is that constructing a derived stream — Filtered, Mapped,
// Dropped, DroppedWhile — clones the *state* of its upstream immediately,
// so pulling from the derived stream never advances the stream it was
// built from.
type Stream struct {
	impl streamImpl
}

func (*Stream) value()       {}
func (*Stream) Truthy() bool { return true }

// Next pulls the next element. ok is false once the stream is exhausted;
// err surfaces a failure from a user-supplied predicate/map function.
func (s *Stream) Next() (Value, bool, error) { return s.impl.next() }

// Clone returns a stream whose advancing state is independent of s.
func (s *Stream) Clone() *Stream { return &Stream{impl: s.impl.clone()} }

type streamImpl interface {
	next() (Value, bool, error)
	clone() streamImpl
}

// --- FromVector ---

type fromVectorStream struct {
	vec *Vector
	idx int
}

// NewFromVector yields the elements of vec in order, starting at index 0.
func NewFromVector(vec *Vector) *Stream {
	return &Stream{impl: &fromVectorStream{vec: vec}}
}

func (f *fromVectorStream) next() (Value, bool, error) {
	if f.idx >= len(f.vec.Elements) {
		return nil, false, nil
	}
	v := f.vec.Elements[f.idx]
	f.idx++
	return v, true, nil
}

func (f *fromVectorStream) clone() streamImpl {
	return &fromVectorStream{vec: f.vec, idx: f.idx}
}

// --- Iterator ---

type iteratorStream struct {
	current     Value
	next_       func(Value) (Value, error)
	terminated  bool
	haveStarted bool
}

// NewIterator yields start, then advances by calling next(current) each
// subsequent pull; terminates the first time next returns Nil.
func NewIterator(start Value, next func(Value) (Value, error)) *Stream {
	return &Stream{impl: &iteratorStream{current: start, next_: next}}
}

func (it *iteratorStream) next() (Value, bool, error) {
	if it.terminated {
		return nil, false, nil
	}
	if _, isNil := it.current.(Nil); isNil {
		it.terminated = true
		return nil, false, nil
	}
	cur := it.current
	nxt, err := it.next_(cur)
	if err != nil {
		it.terminated = true
		return nil, false, err
	}
	it.current = nxt
	return cur, true, nil
}

func (it *iteratorStream) clone() streamImpl {
	return &iteratorStream{current: it.current, next_: it.next_, terminated: it.terminated}
}

// --- Filtered ---

type filteredStream struct {
	pred     func(Value) (bool, error)
	upstream streamImpl
}

// NewFiltered advances upstream (a fresh independent clone of its state)
// until pred holds, then yields.
func NewFiltered(pred func(Value) (bool, error), upstream *Stream) *Stream {
	return &Stream{impl: &filteredStream{pred: pred, upstream: upstream.impl.clone()}}
}

func (f *filteredStream) next() (Value, bool, error) {
	for {
		v, ok, err := f.upstream.next()
		if err != nil || !ok {
			return nil, false, err
		}
		keep, err := f.pred(v)
		if err != nil {
			return nil, false, err
		}
		if keep {
			return v, true, nil
		}
	}
}

func (f *filteredStream) clone() streamImpl {
	return &filteredStream{pred: f.pred, upstream: f.upstream.clone()}
}

// --- Mapped ---

type mappedStream struct {
	fn        func([]Value) (Value, error)
	upstreams []streamImpl
}

// NewMapped advances every upstream by one and applies fn to the N-tuple;
// terminates as soon as any upstream is exhausted.
func NewMapped(fn func([]Value) (Value, error), upstreams []*Stream) *Stream {
	cloned := make([]streamImpl, len(upstreams))
	for i, u := range upstreams {
		cloned[i] = u.impl.clone()
	}
	return &Stream{impl: &mappedStream{fn: fn, upstreams: cloned}}
}

func (m *mappedStream) next() (Value, bool, error) {
	vals := make([]Value, len(m.upstreams))
	for i, u := range m.upstreams {
		v, ok, err := u.next()
		if err != nil || !ok {
			return nil, false, err
		}
		vals[i] = v
	}
	res, err := m.fn(vals)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

func (m *mappedStream) clone() streamImpl {
	cloned := make([]streamImpl, len(m.upstreams))
	for i, u := range m.upstreams {
		cloned[i] = u.clone()
	}
	return &mappedStream{fn: m.fn, upstreams: cloned}
}

// --- Dropped ---

type droppedStream struct {
	n        int
	upstream streamImpl
	initial  bool
}

// NewDropped discards the first n values pulled through upstream, then
// delegates.
func NewDropped(n int, upstream *Stream) *Stream {
	return &Stream{impl: &droppedStream{n: n, upstream: upstream.impl.clone(), initial: true}}
}

func (d *droppedStream) next() (Value, bool, error) {
	if d.initial {
		d.initial = false
		for i := 0; i < d.n; i++ {
			_, ok, err := d.upstream.next()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				break
			}
		}
	}
	return d.upstream.next()
}

func (d *droppedStream) clone() streamImpl {
	return &droppedStream{n: d.n, upstream: d.upstream.clone(), initial: d.initial}
}

// --- DroppedWhile ---

type droppedWhileStream struct {
	pred     func(Value) (bool, error)
	upstream streamImpl
	initial  bool
}

// NewDroppedWhile discards values while pred holds, then yields the first
// non-matching value and delegates thereafter.
func NewDroppedWhile(pred func(Value) (bool, error), upstream *Stream) *Stream {
	return &Stream{impl: &droppedWhileStream{pred: pred, upstream: upstream.impl.clone(), initial: true}}
}

func (d *droppedWhileStream) next() (Value, bool, error) {
	if d.initial {
		d.initial = false
		for {
			v, ok, err := d.upstream.next()
			if err != nil || !ok {
				return nil, false, err
			}
			skip, err := d.pred(v)
			if err != nil {
				return nil, false, err
			}
			if !skip {
				return v, true, nil
			}
		}
	}
	return d.upstream.next()
}

func (d *droppedWhileStream) clone() streamImpl {
	return &droppedWhileStream{pred: d.pred, upstream: d.upstream.clone(), initial: d.initial}
}
