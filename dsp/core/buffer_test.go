package core

import "testing"

func TestReversed(t *testing.T) {
	in := []float64{1, 2, 3}
	out := Reversed(in)

	if out[0] != 3 || out[1] != 2 || out[2] != 1 {
		t.Fatalf("unexpected reversal: %#v", out)
	}

	if in[0] != 1 {
		t.Fatal("input was modified")
	}
}
