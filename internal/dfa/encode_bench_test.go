package dfa

import (
	"strconv"
	"testing"
)

func BenchmarkAppendQuotedStringPlain(b *testing.B) {
	src := "the quick brown fox jumps over the lazy dog"
	dst := make([]byte, 0, 64)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dst = AppendQuotedString(dst[:0], src)
	}
}

func BenchmarkAppendQuotedStringEscapes(b *testing.B) {
	src := "line one\nline two\ttabbed\\slash\"quote"
	dst := make([]byte, 0, 64)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dst = AppendQuotedString(dst[:0], src)
	}
}

func BenchmarkAppendQuotedStringMultiByteUTF8(b *testing.B) {
	src := "日本語のテキストをエンコードする"
	dst := make([]byte, 0, 128)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dst = AppendQuotedString(dst[:0], src)
	}
}

func BenchmarkAppendQuotedStringSizes(b *testing.B) {
	sizes := []int{16, 256, 4096}
	for _, n := range sizes {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte('a' + i%26)
		}
		s := string(src)
		b.Run(strconv.Itoa(n)+"B", func(b *testing.B) {
			dst := make([]byte, 0, n+8)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				dst = AppendQuotedString(dst[:0], s)
			}
		})
	}
}
