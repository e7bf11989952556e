package json

import "testing"

func BenchmarkWriterObjectBuild(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := AcquireWriter()
		w.Object(func(w *Writer) {
			w.Field("name", "yak")
			w.FieldInt("version", 3)
			w.FieldBool("active", true)
			w.FieldArray("tags", func(w *Writer) {
				w.Item("a")
				w.Item("b")
				w.Item("c")
			})
		})
		_ = w.Bytes()
		ReleaseWriter(w)
	}
}

func BenchmarkWriterWriteValue(b *testing.B) {
	v := Parse(benchDoc)
	if v.IsError() {
		b.Fatalf("unexpected parse error: %s", v.ErrorText())
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := AcquireWriter()
		w.WriteValue(v)
		_ = w.Bytes()
		ReleaseWriter(w)
	}
}

func BenchmarkWriterEncodeString(b *testing.B) {
	s := "the quick brown fox jumps over the lazy dog"
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EncodeString(s)
	}
}

func BenchmarkWriterFieldInt(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := AcquireWriter()
		w.Object(func(w *Writer) {
			for j := 0; j < 16; j++ {
				w.FieldInt("k", j)
			}
		})
		ReleaseWriter(w)
	}
}
