package json

import (
	"github.com/uniyakcom/jsonvalue/internal/omap"
	"github.com/uniyakcom/jsonvalue/internal/vpool"
)

// arrayPool and objectPool recycle the two allocation-heavy Value variants'
// backing storage. Null, Boolean, Number, String and Error need no pool:
// their payload is either shared (Null/Boolean) or a plain string, which the
// Go runtime already handles without a free list.
var (
	arrayPool  = vpool.New(func() []*Value { return make([]*Value, 0, 8) })
	objectPool = vpool.New(func() *omap.Map[string, *Value] { return omap.New[string, *Value]() })
)

// pooledObject constructs an empty Object, drawing its backing map from the pool
// when one is available.
func pooledObject() *Value {
	return &Value{k: KindObject, o: objectPool.Get()}
}

// Release returns v's Array/Object backing storage to the pool, recursing
// into its children first. The caller must not use v, or any value reachable
// from it, after calling Release: a pooled slice or map may be handed back
// out to an unrelated Get call at any point afterward.
//
// Release is opt-in: nothing in this package calls it automatically, since
// doing so safely requires the caller to own the tree's full lifetime end to
// end (no aliasing from, say, a Get(...) result the caller is still holding).
func (p *Parser) Release(v *Value) {
	if v == nil {
		return
	}
	switch v.k {
	case KindArray:
		for _, item := range v.a {
			p.Release(item)
		}
		arrayPool.Put(v.a[:0])
		v.a = nil
	case KindObject:
		v.o.Each(func(_ string, val *Value) bool {
			p.Release(val)
			return true
		})
		v.o.Clear()
		objectPool.Put(v.o)
		v.o = nil
	}
}
