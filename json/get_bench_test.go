package json

import "testing"

func BenchmarkGetShallow(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := Get(benchDoc, "name")
		if !r.Exists() {
			b.Fatal("name not found")
		}
	}
}

func BenchmarkGetNested(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := Get(benchDoc, "meta.nested.depth")
		if !r.Exists() {
			b.Fatal("meta.nested.depth not found")
		}
	}
}

func BenchmarkGetArrayIndex(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := Get(benchDoc, "tags.1")
		if !r.Exists() {
			b.Fatal("tags.1 not found")
		}
	}
}

func BenchmarkGetBytesShallow(b *testing.B) {
	doc := []byte(benchDoc)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := GetBytes(doc, "name")
		if !r.Exists() {
			b.Fatal("name not found")
		}
	}
}

func BenchmarkGetMissingKey(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := Get(benchDoc, "does.not.exist")
		if r.Exists() {
			b.Fatal("expected missing key")
		}
	}
}
