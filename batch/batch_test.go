package batch

import (
	"context"
	"testing"
	"time"

	"github.com/uniyakcom/jsonvalue/json"
)

func TestParseAllOrderPreserved(t *testing.T) {
	inputs := [][]byte{
		[]byte(`{"i":0}`),
		[]byte(`{"i":1}`),
		[]byte(`{"i":2}`),
		[]byte(`{"i":3}`),
		[]byte(`{"i":4}`),
	}
	results, err := ParseAll(context.Background(), inputs, WithWorkers(2))
	if err != nil {
		t.Fatalf("ParseAll error: %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(inputs))
	}
	for i, v := range results {
		if v == nil {
			t.Fatalf("results[%d] is nil", i)
		}
		if v.IsError() {
			t.Fatalf("results[%d] is an Error value: %s", i, v.ErrorText())
		}
		got := v.Get("i").MustNumber()
		want := string(rune('0' + i))
		if got != want {
			t.Errorf("results[%d].i = %q, want %q (order not preserved)", i, got, want)
		}
	}
}

func TestParseAllPerItemErrorBecomesErrorValue(t *testing.T) {
	inputs := [][]byte{
		[]byte(`{"ok":true}`),
		[]byte(`{not valid json`),
		[]byte(`[1,2,3]`),
	}
	results, err := ParseAll(context.Background(), inputs)
	if err != nil {
		t.Fatalf("ParseAll should not fail the whole batch on a per-item parse error: %v", err)
	}
	if !results[1].IsError() {
		t.Errorf("results[1] should be an Error value for malformed input, got kind %v", results[1].Kind())
	}
	if results[0].IsError() || results[2].IsError() {
		t.Errorf("valid items should not be Error values")
	}
}

func TestEncodeAllOrderPreserved(t *testing.T) {
	values := []*json.Value{
		json.NumberFromInt64(1),
		json.NumberFromInt64(2),
		json.String("three"),
	}
	out, err := EncodeAll(context.Background(), values, json.Compact)
	if err != nil {
		t.Fatalf("EncodeAll error: %v", err)
	}
	want := []string{"1", "2", `"three"`}
	for i := range want {
		if string(out[i]) != want[i] {
			t.Errorf("out[%d] = %s, want %s", i, out[i], want[i])
		}
	}
}

func TestEncodeAllNilValue(t *testing.T) {
	values := []*json.Value{nil, json.NumberFromInt64(1)}
	out, err := EncodeAll(context.Background(), values, json.Compact)
	if err != nil {
		t.Fatalf("EncodeAll error: %v", err)
	}
	if out[0] != nil {
		t.Errorf("out[0] for a nil input value = %q, want nil", out[0])
	}
	if string(out[1]) != "1" {
		t.Errorf("out[1] = %s, want 1", out[1])
	}
}

func TestParseAllContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := make([][]byte, 100)
	for i := range inputs {
		inputs[i] = []byte(`{}`)
	}
	_, err := ParseAll(ctx, inputs)
	if err == nil {
		t.Errorf("ParseAll with an already-cancelled context did not return an error")
	}
}

func TestParseAllEmptyInput(t *testing.T) {
	results, err := ParseAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("ParseAll(nil) error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("ParseAll(nil) returned %d results, want 0", len(results))
	}
}

func TestParseAllCompletesFully(t *testing.T) {
	// Regression guard: every dispatched item must actually finish (not just
	// be scheduled) before ParseAll returns.
	n := 200
	inputs := make([][]byte, n)
	for i := range inputs {
		inputs[i] = []byte(`{"v":1}`)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	results, err := ParseAll(ctx, inputs, WithWorkers(4))
	if err != nil {
		t.Fatalf("ParseAll error: %v", err)
	}
	for i, v := range results {
		if v == nil {
			t.Fatalf("results[%d] is nil: item never completed before Wait returned", i)
		}
	}
}
