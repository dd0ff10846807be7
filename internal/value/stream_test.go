package value

import "testing"

func collect(t *testing.T, s *Stream) []Value {
	t.Helper()
	var out []Value
	for {
		v, ok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestFromVectorStream(t *testing.T) {
	vec := NewVector([]Value{Int(1), Int(2), Int(3)})
	got := collect(t, NewFromVector(vec))
	want := []Value{Int(1), Int(2), Int(3)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFilteredStreamDoesNotAdvanceUpstream(t *testing.T) {
	vec := NewVector([]Value{Int(1), Int(2), Int(3), Int(4)})
	upstream := NewFromVector(vec)
	even := NewFiltered(func(v Value) (bool, error) {
		return int64(v.(Int))%2 == 0, nil
	}, upstream)

	got := collect(t, even)
	if len(got) != 2 || got[0] != Int(2) || got[1] != Int(4) {
		t.Fatalf("filtered = %v, want [2 4]", got)
	}

	// upstream's own state must be untouched by the filter's construction.
	v, ok, err := upstream.Next()
	if err != nil || !ok || v != Int(1) {
		t.Fatalf("upstream.Next() = %v, %v, %v; want Int(1), true, nil", v, ok, err)
	}
}

func TestClonedStreamIsIndependent(t *testing.T) {
	vec := NewVector([]Value{Int(1), Int(2), Int(3)})
	s := NewFromVector(vec)
	s.Next() // consume Int(1)

	clone := s.Clone()
	clone.Next() // consumes Int(2) from the clone only

	v, ok, _ := s.Next()
	if !ok || v != Int(2) {
		t.Fatalf("original stream's Next() = %v, %v, want Int(2), true", v, ok)
	}
}

func TestDroppedWhileYieldsFirstNonMatching(t *testing.T) {
	vec := NewVector([]Value{Int(1), Int(2), Int(3), Int(0)})
	s := NewDroppedWhile(func(v Value) (bool, error) {
		return int64(v.(Int)) < 3, nil
	}, NewFromVector(vec))
	got := collect(t, s)
	if len(got) != 2 || got[0] != Int(3) || got[1] != Int(0) {
		t.Fatalf("dropped-while = %v, want [3 0]", got)
	}
}

func TestIteratorTerminatesOnNil(t *testing.T) {
	s := NewIterator(Int(0), func(v Value) (Value, error) {
		n := int64(v.(Int))
		if n >= 3 {
			return Nil{}, nil
		}
		return Int(n + 1), nil
	})
	got := collect(t, s)
	want := []Value{Int(0), Int(1), Int(2), Int(3)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
