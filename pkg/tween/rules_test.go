package tween

import (
	"strings"
	"testing"

	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/svg"
)

func intPtr(i int) *int { return &i }

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{"crossfade", Rule{Kind: KindCrossfade, ID: "a", Target: "b"}, false},
		{"crossfade without target", Rule{Kind: KindCrossfade, ID: "a"}, true},
		{"group translate", Rule{Kind: KindGroupTranslate, ID: "g"}, false},
		{"beam grow", Rule{Kind: KindBeamGrow, ID: "beam", Before: "Pencil"}, false},
		{"raise", Rule{Kind: KindRaise, ID: "g", Class: "cls-1"}, false},
		{"raise without class", Rule{Kind: KindRaise, ID: "g"}, true},
		{"blend fill", Rule{Kind: KindBlendFill, ID: "g"}, false},
		{"missing id", Rule{Kind: KindBlendFill}, true},
		{"unknown kind", Rule{Kind: "spin", ID: "g"}, true},
		{"negative transition", Rule{Kind: KindGroupTranslate, ID: "g", Transition: intPtr(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidRule) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRule)
			}
		})
	}
}

func TestValidateRules(t *testing.T) {
	rules := []Rule{
		{Kind: KindGroupTranslate, ID: "g"},
		{Kind: KindRaise, ID: "g"},
	}
	err := ValidateRules(rules)
	if err == nil {
		t.Fatal("ValidateRules() expected error")
	}
	if !strings.Contains(err.Error(), "rule 1") {
		t.Errorf("error %q does not name the rule index", err)
	}
	if err := ValidateRules(rules[:1]); err != nil {
		t.Errorf("ValidateRules() unexpected error: %v", err)
	}
}

func TestRuleAppliesTo(t *testing.T) {
	all := Rule{Kind: KindRaise, ID: "g", Class: "c"}
	one := Rule{Kind: KindRaise, ID: "g", Class: "c", Transition: intPtr(1)}
	for _, tr := range []int{0, 1, 2} {
		if !all.AppliesTo(tr) {
			t.Errorf("unrestricted rule should apply to transition %d", tr)
		}
		if got := one.AppliesTo(tr); got != (tr == 1) {
			t.Errorf("AppliesTo(%d) = %v", tr, got)
		}
	}
}

func TestCrossfade(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg><g id="Pencil"><path id="old" d="M0 0 L1 1" transform="rotate(5)"/></g></svg>`)
	b := mustParse(t, "b.svg", `<svg><g id="Pencil"><polygon id="new" points="0,0 1,1"/></g></svg>`)
	rule := Rule{
		Kind:   KindCrossfade,
		ID:     "old",
		Target: "new",
		From:   Point{157, 142},
		To:     Point{144.5, 115.43},
	}

	out, report := Interpolate(a, b, 0.4, Options{Rules: []Rule{rule}})

	if got := attr(t, out, "old", "opacity"); got != "0.60" {
		t.Errorf("source opacity = %q, want 0.60", got)
	}
	if got := attr(t, out, "old", "transform"); got != "translate(-5.00, -10.63) rotate(5)" {
		t.Errorf("source transform = %q", got)
	}
	if got := attr(t, out, "new", "opacity"); got != "0.40" {
		t.Errorf("target opacity = %q, want 0.40", got)
	}

	children := out.ElementByID("Pencil").ChildElements()
	if len(children) != 2 || svg.ID(children[0]) != "old" || svg.ID(children[1]) != "new" {
		t.Errorf("target not inserted after source: %s", out.Signature())
	}
	if report.RulesApplied != 1 || report.Skipped != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestCrossfadeMissingTarget(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg><path id="old" d="M0 0"/></svg>`)
	b := mustParse(t, "b.svg", `<svg><path id="old" d="M1 1"/></svg>`)

	out, report := Interpolate(a, b, 0.5, Options{Rules: []Rule{{Kind: KindCrossfade, ID: "old", Target: "new"}}})
	if got := attr(t, out, "old", "opacity"); got != "" {
		t.Errorf("opacity set without target: %q", got)
	}
	if report.Skipped != 1 || report.RulesApplied != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestGroupTranslate(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg><g id="G"><path d="M0 0 L1 1"/></g></svg>`)
	b := mustParse(t, "b.svg", `<svg><g id="G"><path d="M5 5 L6 6"/></g></svg>`)
	rule := Rule{Kind: KindGroupTranslate, ID: "G", To: Point{X: 10}, Transition: intPtr(1)}

	out, report := Interpolate(a, b, 0.5, Options{Transition: 0, Rules: []Rule{rule}})
	if got := attr(t, out, "G", "transform"); got != "" {
		t.Errorf("rule for transition 1 applied to transition 0: %q", got)
	}
	if report.Interpolated != 1 {
		t.Errorf("unclaimed group should interpolate its children: %+v", report)
	}

	out, report = Interpolate(a, b, 0.5, Options{Transition: 1, Rules: []Rule{rule}})
	if got := attr(t, out, "G", "transform"); got != "translate(5.00, 0.00)" {
		t.Errorf("transform = %q", got)
	}
	if got := out.ElementByID("G").ChildElements()[0].SelectAttrValue("d", ""); got != "M0 0 L1 1" {
		t.Errorf("claimed group children were interpolated: %q", got)
	}
	if report.Interpolated != 0 || report.RulesApplied != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestBeamGrow(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg><g id="Pencil"/></svg>`)
	b := mustParse(t, "b.svg", `<svg>
  <g id="Beams">
    <line x1="144" y1="118" x2="200" y2="50"/>
    <line x1="100" y1="118" x2="144" y2="0"/>
  </g>
  <g id="Pencil"/>
</svg>`)
	rule := Rule{Kind: KindBeamGrow, ID: "Beams", Center: Point{144, 118}, Before: "Pencil"}

	out, _ := Interpolate(a, b, 0.5, Options{Rules: []Rule{rule}})

	root := out.Root().ChildElements()
	if len(root) != 2 || svg.ID(root[0]) != "Beams" || svg.ID(root[1]) != "Pencil" {
		t.Fatalf("beam not inserted before Pencil: %s", out.Signature())
	}
	lines := root[0].ChildElements()
	want := [][4]string{
		{"144.00", "118.00", "172.00", "84.00"},
		{"122.00", "118.00", "144.00", "59.00"},
	}
	for i, w := range want {
		for j, key := range []string{"x1", "y1", "x2", "y2"} {
			if got := lines[i].SelectAttrValue(key, ""); got != w[j] {
				t.Errorf("line %d %s = %q, want %q", i, key, got, w[j])
			}
		}
	}

	// A second application replaces the existing beam instead of adding one.
	out2, _ := Interpolate(out, b, 1, Options{Rules: []Rule{rule}})
	if got := len(out2.Root().ChildElements()); got != 2 {
		t.Errorf("root children = %d, want 2", got)
	}
	if got := out2.Root().ChildElements()[0].ChildElements()[0].SelectAttrValue("x2", ""); got != "200.00" {
		t.Errorf("grown beam x2 = %q, want 200.00", got)
	}
}

func TestRaise(t *testing.T) {
	src := `<svg><g id="G">
  <path id="p1" class="cls-1" d="M0 0"/>
  <path id="p2" d="M0 0"/>
  <path id="p3" class="cls-1" d="M0 0"/>
  <path id="p4" d="M0 0"/>
</g></svg>`
	a := mustParse(t, "a.svg", src)
	b := mustParse(t, "b.svg", src)

	out, _ := Interpolate(a, b, 0.5, Options{Rules: []Rule{{Kind: KindRaise, ID: "G", Class: "cls-1"}}})

	var order []string
	for _, c := range out.ElementByID("G").ChildElements() {
		order = append(order, svg.ID(c))
	}
	if got := strings.Join(order, " "); got != "p2 p4 p1 p3" {
		t.Errorf("order = %q, want %q", got, "p2 p4 p1 p3")
	}
}

func TestBlendFill(t *testing.T) {
	a := mustParse(t, "a.svg", `<svg><g id="G" fill="#000000"><path fill="#ff0000" d="M0 0"/><path fill="none" d="M0 0"/></g></svg>`)
	b := mustParse(t, "b.svg", `<svg><g id="G" fill="#000000"><path fill="#0000ff" d="M0 0"/><path fill="#00ff00" d="M0 0"/></g></svg>`)
	rules := []Rule{{Kind: KindBlendFill, ID: "G"}}

	out, report := Interpolate(a, b, 0, Options{Rules: rules})
	if got := out.ElementByID("G").ChildElements()[0].SelectAttrValue("fill", ""); got != "#ff0000" {
		t.Errorf("fill at t=0 = %q, want #ff0000", got)
	}
	if report.RulesApplied != 1 {
		t.Errorf("report = %+v", report)
	}

	out, _ = Interpolate(a, b, 0.5, Options{Rules: rules})
	g := out.ElementByID("G")
	mid := g.ChildElements()[0].SelectAttrValue("fill", "")
	if mid == "#ff0000" || mid == "#0000ff" || len(mid) != 7 || mid[0] != '#' {
		t.Errorf("fill at t=0.5 = %q, want a blended hex colour", mid)
	}
	if got := g.ChildElements()[1].SelectAttrValue("fill", ""); got != "none" {
		t.Errorf("non-hex fill = %q, want none", got)
	}
	if got := g.SelectAttrValue("fill", ""); got != "#000000" {
		t.Errorf("group fill = %q, want #000000", got)
	}
}
