package tween

import (
	"testing"

	"github.com/matzehuels/svgtween/pkg/svg"
)

func mustParse(t *testing.T, name, src string) *svg.Document {
	t.Helper()
	doc, err := svg.Parse(name, []byte(src))
	if err != nil {
		t.Fatalf("Parse(%s) error: %v", name, err)
	}
	return doc
}

func attr(t *testing.T, doc *svg.Document, id, key string) string {
	t.Helper()
	el := doc.ElementByID(id)
	if el == nil {
		t.Fatalf("element %q not found", id)
	}
	return el.SelectAttrValue(key, "")
}

const keyA = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <g id="Pencil">
    <path id="body" class="cls-1" d="M0 0 L10 10"/>
    <polygon id="tip" points="0,0 10,0 10,10"/>
  </g>
  <line id="ray" x1="0" y1="0" x2="10" y2="10"/>
  <rect id="box" x="0" y="0" width="10" height="10"/>
  <circle id="dot" cx="0" cy="0" r="1"/>
  <path d="M0 0 L1 1"/>
</svg>`

const keyB = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <line id="ray" x1="10" y1="20" x2="30" y2="40"/>
  <g id="Pencil">
    <path id="body" class="cls-2" d="M10 20 L30 50"/>
    <polygon id="tip" points="10,10 20,10 20,20"/>
  </g>
  <rect id="box" x="10" y="10" width="30" height="20"/>
  <circle id="dot" cx="10" cy="20" r="3"/>
  <path d="M2 2 L3 3"/>
</svg>`

func TestInterpolateMatchesByID(t *testing.T) {
	a := mustParse(t, "a.svg", keyA)
	b := mustParse(t, "b.svg", keyB)

	out, report := Interpolate(a, b, 0.5, Options{})

	tests := []struct {
		id, key, want string
	}{
		{"body", "d", "M5.00,10.00L20.00,30.00"},
		{"body", "class", "cls-1"},
		{"tip", "points", "5.00,5.00 15.00,5.00 15.00,15.00"},
		{"ray", "x1", "5.00"},
		{"ray", "y2", "25.00"},
		{"box", "width", "20.00"},
		{"box", "height", "15.00"},
		{"dot", "r", "2.00"},
		{"dot", "cy", "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.key, func(t *testing.T) {
			if got := attr(t, out, tt.id, tt.key); got != tt.want {
				t.Errorf("%s.%s = %q, want %q", tt.id, tt.key, got, tt.want)
			}
		})
	}

	// The id-less path is the fifth child in both keyframes.
	anon := out.Root().ChildElements()[4]
	if got := anon.SelectAttrValue("d", ""); got != "M1.00,1.00L2.00,2.00" {
		t.Errorf("anonymous path d = %q, want %q", got, "M1.00,1.00L2.00,2.00")
	}

	if report.Interpolated != 6 {
		t.Errorf("Interpolated = %d, want 6", report.Interpolated)
	}
	if report.Degraded() || report.Skipped != 0 {
		t.Errorf("unexpected fallbacks: %+v", report)
	}
}

func TestInterpolateLeavesInputsUntouched(t *testing.T) {
	a := mustParse(t, "a.svg", keyA)
	b := mustParse(t, "b.svg", keyB)
	beforeA, _ := a.Bytes()
	beforeB, _ := b.Bytes()

	Interpolate(a, b, 0.3, Options{Rules: []Rule{{Kind: KindGroupTranslate, ID: "Pencil", To: Point{X: 10}}}})

	afterA, _ := a.Bytes()
	afterB, _ := b.Bytes()
	if string(beforeA) != string(afterA) {
		t.Error("keyframe A was modified")
	}
	if string(beforeB) != string(afterB) {
		t.Error("keyframe B was modified")
	}
}

func TestInterpolateKeepsStructureOfA(t *testing.T) {
	a := mustParse(t, "a.svg", keyA)
	b := mustParse(t, "b.svg", keyB)

	for _, tt := range []float64{0, 0.25, 0.5, 1} {
		out, _ := Interpolate(a, b, tt, Options{})
		if got, want := out.Signature(), a.Signature(); got != want {
			t.Errorf("t=%v signature = %q, want %q", tt, got, want)
		}
	}
}

func TestInterpolateFallbacks(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg>
  <path id="p" d="M0 0 L10 10"/>
  <polygon id="poly" points="0,0 1,1 2,2"/>
  <path id="gone" d="M0 0"/>
  <circle r="1"/>
  <path id="empty" d=""/>
</svg>`)
	b := mustParse(t, "b.svg", `<svg>
  <path id="p" d="M0 0 Q5 5 10 10"/>
  <polygon id="poly" points="0,0 1,1"/>
  <rect/>
  <rect/>
  <path id="empty" d="M1 1"/>
</svg>`)

	out, report := Interpolate(a, b, 0.25, Options{})

	if got := attr(t, out, "p", "d"); got != "M0 0 L10 10" {
		t.Errorf("snapped path before midpoint = %q", got)
	}
	if got := attr(t, out, "poly", "points"); got != "0,0 1,1 2,2" {
		t.Errorf("frozen polygon = %q", got)
	}
	if got := attr(t, out, "gone", "d"); got != "M0 0" {
		t.Errorf("unmatched path = %q", got)
	}

	want := Report{Snapped: 1, Frozen: 1, Excluded: 1, Skipped: 2}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}

	out, _ = Interpolate(a, b, 0.5, Options{})
	if got := attr(t, out, "p", "d"); got != "M0 0 Q5 5 10 10" {
		t.Errorf("snapped path at midpoint = %q", got)
	}
}

func TestInterpolateEasing(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg><line id="l" x1="0" y1="0" x2="100" y2="0"/></svg>`)
	b := mustParse(t, "b.svg", `<svg><line id="l" x1="100" y1="0" x2="100" y2="0"/></svg>`)

	easing, err := ParseEasing("in-quad")
	if err != nil {
		t.Fatal(err)
	}
	out, _ := Interpolate(a, b, 0.5, Options{Easing: easing})
	if got := attr(t, out, "l", "x1"); got != "25.00" {
		t.Errorf("in-quad x1 = %q, want 25.00", got)
	}

	out, _ = Interpolate(a, b, 0.5, Options{})
	if got := attr(t, out, "l", "x1"); got != "50.00" {
		t.Errorf("linear x1 = %q, want 50.00", got)
	}
}

func TestInterpolateEasingKeepsSnapPoint(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg><path id="p" d="M0 0 L10 10"/></svg>`)
	b := mustParse(t, "b.svg", `<svg><path id="p" d="M0 0 Q5 5 10 10"/></svg>`)

	easing, err := ParseEasing("in-quad")
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		t    float64
		want string
	}{
		{0.4, "M0 0 L10 10"},
		{0.5, "M0 0 Q5 5 10 10"},
		{0.6, "M0 0 Q5 5 10 10"},
	} {
		out, _ := Interpolate(a, b, tt.t, Options{Easing: easing})
		if got := attr(t, out, "p", "d"); got != tt.want {
			t.Errorf("t=%v d = %q, want %q", tt.t, got, tt.want)
		}
	}
}
