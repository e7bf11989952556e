package json

import "testing"

func TestReleaseArrayAndObject(t *testing.T) {
	var p Parser
	v := p.Parse(`{"a":[1,2,3],"b":{"c":true}}`)
	if v.IsError() {
		t.Fatalf("unexpected parse error: %s", v.ErrorText())
	}
	// Release must not panic on a mixed tree of arrays, objects and scalars.
	p.Release(v)
}

func TestReleaseNilIsNoop(t *testing.T) {
	var p Parser
	p.Release(nil)
}

func TestReleaseScalarIsNoop(t *testing.T) {
	var p Parser
	p.Release(String("x"))
	p.Release(NumberFromInt64(1))
	p.Release(Null())
}

func TestObjectDrawsFromPool(t *testing.T) {
	obj := Object()
	if obj.Kind() != KindObject {
		t.Fatalf("Object().Kind() = %v, want KindObject", obj.Kind())
	}
	if obj.ObjectLen() != 0 {
		t.Errorf("fresh Object() has Len() = %d, want 0", obj.ObjectLen())
	}
	obj.ObjectSet("k", NumberFromInt64(1))
	if obj.ObjectLen() != 1 {
		t.Errorf("ObjectSet didn't register: Len() = %d", obj.ObjectLen())
	}
}

func TestArrayAppendDrawsFromPool(t *testing.T) {
	arr := Array()
	arr.ArrayAppend(NumberFromInt64(1))
	if arr.ArrayLen() != 1 {
		t.Errorf("ArrayLen() = %d, want 1", arr.ArrayLen())
	}
}
