package batch

import (
	"context"
	"strconv"
	"testing"

	"github.com/uniyakcom/jsonvalue/json"
)

func BenchmarkParseAll(b *testing.B) {
	sizes := []int{10, 100, 1000}
	for _, n := range sizes {
		inputs := make([][]byte, n)
		for i := range inputs {
			inputs[i] = []byte(`{"i":1,"name":"yak","active":true}`)
		}
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			ctx := context.Background()
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ParseAll(ctx, inputs); err != nil {
					b.Fatalf("ParseAll error: %v", err)
				}
			}
		})
	}
}

func BenchmarkEncodeAll(b *testing.B) {
	n := 100
	values := make([]*json.Value, n)
	for i := range values {
		values[i] = json.NumberFromInt64(int64(i))
	}
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeAll(ctx, values, json.Compact); err != nil {
			b.Fatalf("EncodeAll error: %v", err)
		}
	}
}
