package timeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/svgtween/pkg/svg"
)

func TestCount(t *testing.T) {
	tests := []struct{ k, f, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{2, 1, 3},
		{2, 10, 12},
		{3, 10, 23},
		{5, 4, 21},
	}
	for _, tt := range tests {
		if got := Count(tt.k, tt.f); got != tt.want {
			t.Errorf("Count(%d, %d) = %d, want %d", tt.k, tt.f, got, tt.want)
		}
	}
}

func TestPlan(t *testing.T) {
	for _, tt := range []struct{ k, f int }{{1, 3}, {2, 1}, {3, 10}, {4, 5}} {
		t.Run(fmt.Sprintf("k=%d,f=%d", tt.k, tt.f), func(t *testing.T) {
			slots := Plan(tt.k, tt.f)
			if len(slots) != Count(tt.k, tt.f) {
				t.Fatalf("len(Plan) = %d, want %d", len(slots), Count(tt.k, tt.f))
			}

			keyframes := 0
			for i, s := range slots {
				if s.Index != i {
					t.Errorf("slot %d has index %d", i, s.Index)
				}
				if s.Keyframe {
					keyframes++
					continue
				}
				want := float64(s.Step) / float64(tt.f+1)
				if s.T != want {
					t.Errorf("slot %d t = %v, want %v", i, s.T, want)
				}
			}
			if keyframes != tt.k {
				t.Errorf("keyframe slots = %d, want %d", keyframes, tt.k)
			}
		})
	}
}

func TestPlanTransition(t *testing.T) {
	slots := Plan(3, 2)
	want := []Slot{
		{Index: 0, Transition: 0, Keyframe: true},
		{Index: 1, Transition: 0, Step: 1, T: 1.0 / 3},
		{Index: 2, Transition: 0, Step: 2, T: 2.0 / 3},
		{Index: 3, Transition: 1, Keyframe: true},
		{Index: 4, Transition: 1, Step: 1, T: 1.0 / 3},
		{Index: 5, Transition: 1, Step: 2, T: 2.0 / 3},
		{Index: 6, Transition: 1, T: 1, Keyframe: true},
	}
	if len(slots) != len(want) {
		t.Fatalf("len = %d, want %d", len(slots), len(want))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %+v, want %+v", i, slots[i], want[i])
		}
	}

	// Per transition the t values are {0, 1/(F+1), ..., F/(F+1), 1}.
	ts := map[int][]float64{}
	for _, s := range slots {
		ts[s.Transition] = append(ts[s.Transition], s.T)
	}
	if got := ts[1]; len(got) != 4 || got[0] != 0 || got[3] != 1 {
		t.Errorf("transition 1 t set = %v", got)
	}
}

func keyframe(t *testing.T, x float64) *svg.Document {
	t.Helper()
	src := fmt.Sprintf(`<svg viewBox="0 0 100 100"><line id="l" x1="%g" y1="0" x2="0" y2="0"/></svg>`, x)
	doc, err := svg.Parse(fmt.Sprintf("kf%g.svg", x), []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestBuild(t *testing.T) {
	kfs := []*svg.Document{keyframe(t, 0), keyframe(t, 30), keyframe(t, 60)}

	frames, err := Build(context.Background(), kfs, Options{FramesPerTransition: 2})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(frames) != 7 {
		t.Fatalf("len(frames) = %d, want 7", len(frames))
	}

	want := []string{"0", "10.00", "20.00", "30", "40.00", "50.00", "60"}
	for i, f := range frames {
		if got := f.Doc.ElementByID("l").SelectAttrValue("x1", ""); got != want[i] {
			t.Errorf("frame %d x1 = %q, want %q", i, got, want[i])
		}
	}

	// Keyframes are clones, not the inputs themselves.
	if frames[0].Doc == kfs[0] {
		t.Error("keyframe frame shares the input document")
	}

	if got := Summarize(frames).Interpolated; got != 4 {
		t.Errorf("Summarize().Interpolated = %d, want 4", got)
	}
}

func TestBuildSingleKeyframe(t *testing.T) {
	frames, err := Build(context.Background(), []*svg.Document{keyframe(t, 5)}, Options{FramesPerTransition: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 || !frames[0].Keyframe || frames[0].T != 0 {
		t.Errorf("frames = %+v", frames)
	}
}

func TestBuildErrors(t *testing.T) {
	kfs := []*svg.Document{keyframe(t, 0), keyframe(t, 1)}

	if _, err := Build(context.Background(), nil, Options{FramesPerTransition: 1}); err == nil {
		t.Error("Build() with no keyframes expected error")
	}
	if _, err := Build(context.Background(), kfs, Options{}); err == nil {
		t.Error("Build() with F=0 expected error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, kfs, Options{FramesPerTransition: 1}); err != context.Canceled {
		t.Errorf("Build() with cancelled context error = %v, want context.Canceled", err)
	}
}
