package tween

import (
	"fmt"
	"testing"
)

func TestLerpEndpoints(t *testing.T) {
	tests := []struct{ a, b float64 }{
		{0, 0},
		{10, 20},
		{-5.46, 0.26},
		{0.1, 0.7},
		{1e9, -1e-9},
		{157, 144.5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%g->%g", tt.a, tt.b), func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, 0); got != tt.a {
				t.Errorf("Lerp(t=0) = %v, want %v", got, tt.a)
			}
			if got := Lerp(tt.a, tt.b, 1); got != tt.b {
				t.Errorf("Lerp(t=1) = %v, want %v", got, tt.b)
			}
		})
	}
}

func TestLerpSlice(t *testing.T) {
	a := []float64{0, 10, -4}
	b := []float64{10, 20, 4}

	got := LerpSlice(a, b, 0.5)
	want := []float64{5, 15, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LerpSlice[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	for i, v := range LerpSlice(a, b, 0) {
		if v != a[i] {
			t.Errorf("LerpSlice(t=0)[%d] = %v, want %v", i, v, a[i])
		}
	}
	for i, v := range LerpSlice(a, b, 1) {
		if v != b[i] {
			t.Errorf("LerpSlice(t=1)[%d] = %v, want %v", i, v, b[i])
		}
	}

	if got := LerpSlice(a, b[:2], 0.5); got != nil {
		t.Errorf("LerpSlice() with different lengths = %v, want nil", got)
	}
}
