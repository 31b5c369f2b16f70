package svg

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Walk visits el and its descendants depth-first in document order.
// Returning false from fn skips the children of the visited element.
func Walk(el *etree.Element, fn func(*etree.Element) bool) {
	if el == nil {
		return
	}
	if !fn(el) {
		return
	}
	for _, c := range el.ChildElements() {
		Walk(c, fn)
	}
}

// Descendants returns all elements below el with the given tag.
func Descendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		Walk(c, func(e *etree.Element) bool {
			if e.Tag == tag {
				out = append(out, e)
			}
			return true
		})
	}
	return out
}

// ID returns the id attribute of el, or "".
func ID(el *etree.Element) string {
	return el.SelectAttrValue("id", "")
}

// Attr returns the value of key and whether it is present and non-blank.
func Attr(el *etree.Element, key string) (string, bool) {
	a := el.SelectAttr(key)
	if a == nil || strings.TrimSpace(a.Value) == "" {
		return "", false
	}
	return a.Value, true
}

// Float reads a numeric attribute.
func Float(el *etree.Element, key string) (float64, bool) {
	s, ok := Attr(el, key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetFloat writes v to key with two decimals.
func SetFloat(el *etree.Element, key string, v float64) {
	el.CreateAttr(key, FormatNumber(v))
}

// FormatNumber fixes v to two decimal places. Negative zero is written as 0.00.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// ReplaceElement puts repl at the position of old within old's parent.
// It reports false when old is detached.
func ReplaceElement(old, repl *etree.Element) bool {
	parent := old.Parent()
	if parent == nil {
		return false
	}
	idx := old.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, repl)
	return true
}

// InsertBefore inserts el immediately before anchor.
func InsertBefore(anchor, el *etree.Element) bool {
	parent := anchor.Parent()
	if parent == nil {
		return false
	}
	parent.InsertChildAt(anchor.Index(), el)
	return true
}

// InsertAfter inserts el immediately after anchor.
func InsertAfter(anchor, el *etree.Element) bool {
	parent := anchor.Parent()
	if parent == nil {
		return false
	}
	parent.InsertChildAt(anchor.Index()+1, el)
	return true
}
