package tween

import (
	"math"
	"testing"
)

func TestParseEasing(t *testing.T) {
	for _, name := range EasingNames() {
		t.Run(name, func(t *testing.T) {
			e, err := ParseEasing(name)
			if err != nil {
				t.Fatalf("ParseEasing(%q) error: %v", name, err)
			}
			if got := e.apply(0); got != 0 {
				t.Errorf("apply(0) = %v, want 0", got)
			}
			if got := e.apply(1); got != 1 {
				t.Errorf("apply(1) = %v, want 1", got)
			}
			if got := e.apply(0.5); got < 0 || got > 1 {
				t.Errorf("apply(0.5) = %v, out of range", got)
			}
		})
	}

	if _, err := ParseEasing(""); err != nil {
		t.Errorf("ParseEasing(\"\") error: %v", err)
	}
	if _, err := ParseEasing("In-Out-Quad"); err != nil {
		t.Errorf("ParseEasing is not case-insensitive: %v", err)
	}
	if _, err := ParseEasing("bounce-twice"); err == nil {
		t.Error("ParseEasing(bounce-twice) expected error")
	}
}

func TestEasingApply(t *testing.T) {
	var linear Easing
	if got := linear.apply(0.3); got != 0.3 {
		t.Errorf("nil easing apply(0.3) = %v", got)
	}

	in, _ := ParseEasing("in-cubic")
	if got := in.apply(0.5); math.Abs(got-0.125) > 1e-12 {
		t.Errorf("in-cubic apply(0.5) = %v, want 0.125", got)
	}
}
