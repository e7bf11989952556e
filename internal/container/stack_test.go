package container

import "testing"

func TestStackPushPop(t *testing.T) {
	var s Stack[int]

	if s.Depth() != 0 {
		t.Fatalf("initial Depth() = %d, want 0", s.Depth())
	}

	f := s.Push(KindArray)
	if f.Kind != KindArray {
		t.Errorf("Push(KindArray).Kind = %v, want KindArray", f.Kind)
	}
	if s.Depth() != 1 {
		t.Errorf("Depth() after Push = %d, want 1", s.Depth())
	}
	if s.Top() != f {
		t.Errorf("Top() != the frame just pushed")
	}

	popped := s.Pop()
	if popped != f {
		t.Errorf("Pop() returned a different frame than was pushed")
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() after Pop = %d, want 0", s.Depth())
	}
	if s.Top() != nil {
		t.Errorf("Top() on empty stack = %v, want nil", s.Top())
	}
}

func TestStackNesting(t *testing.T) {
	var s Stack[string]
	outer := s.Push(KindObject)
	inner := s.Push(KindArray)

	if s.Top() != inner {
		t.Fatalf("Top() = %v, want the innermost frame", s.Top())
	}
	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", s.Depth())
	}

	got := s.Pop()
	if got != inner {
		t.Errorf("Pop() = %v, want inner frame", got)
	}
	if s.Top() != outer {
		t.Errorf("Top() after popping inner = %v, want outer", s.Top())
	}
}

func TestFrameAppendArray(t *testing.T) {
	f := &Frame[int]{Kind: KindArray}
	f.Append(1)
	f.Append(2)
	f.Append(3)

	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}
	for i, want := range []int{1, 2, 3} {
		if f.Items[i] != want {
			t.Errorf("Items[%d] = %d, want %d", i, f.Items[i], want)
		}
	}
}

func TestFrameAppendObject(t *testing.T) {
	f := &Frame[string]{Kind: KindObject}
	f.SetPendingKey("a")
	f.Append("1")
	f.SetPendingKey("b")
	f.Append("2")

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
	if f.HasKey {
		t.Errorf("HasKey still true after Append consumed the pending key")
	}
	wantKeys := []string{"a", "b"}
	for i, want := range wantKeys {
		if f.Keys[i] != want {
			t.Errorf("Keys[%d] = %q, want %q", i, f.Keys[i], want)
		}
	}
	wantVals := []string{"1", "2"}
	for i, want := range wantVals {
		if f.Items[i] != want {
			t.Errorf("Items[%d] = %q, want %q", i, f.Items[i], want)
		}
	}
}

func TestFrameAppendObjectWithoutPendingKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Append on object frame without a pending key did not panic")
		}
	}()
	f := &Frame[int]{Kind: KindObject}
	f.Append(1)
}

func TestStackFreeListReuse(t *testing.T) {
	var s Stack[int]
	first := s.Push(KindArray)
	first.Append(42)
	s.Pop()

	// The freed frame must come back cleared, not carrying over the
	// previous frame's Items.
	second := s.Push(KindObject)
	if second.Len() != 0 {
		t.Errorf("reused frame has stale Items: Len() = %d, want 0", second.Len())
	}
	if second.Kind != KindObject {
		t.Errorf("reused frame Kind = %v, want KindObject", second.Kind)
	}
	if second.HasKey {
		t.Errorf("reused frame has stale HasKey = true")
	}
}

func TestStackReset(t *testing.T) {
	var s Stack[int]
	s.Push(KindArray)
	s.Push(KindObject)
	s.Reset()

	if s.Depth() != 0 {
		t.Errorf("Depth() after Reset = %d, want 0", s.Depth())
	}
	if s.Top() != nil {
		t.Errorf("Top() after Reset = %v, want nil", s.Top())
	}

	// The stack must still accept pushes after Reset.
	f := s.Push(KindArray)
	if f == nil {
		t.Fatalf("Push after Reset returned nil")
	}
}
