package svg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/svgtween/pkg/errors"
)

// Document is a parsed SVG keyframe or generated frame.
type Document struct {
	// Name identifies the document in logs (usually the source file path).
	Name string

	doc *etree.Document
}

// Load reads and parses the SVG file at path.
// A missing or unreadable file is reported as FILE_NOT_FOUND or IO_ERROR;
// malformed content as INVALID_KEYFRAME.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFS(err, "read keyframe %s", path)
	}
	return Parse(path, data)
}

// Parse parses SVG bytes. The root element must be <svg>.
func Parse(name string, data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidKeyframe, err, "parse %s", name)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidKeyframe, "%s has no root element", name)
	}
	if root.Tag != "svg" {
		return nil, errors.New(errors.ErrCodeInvalidKeyframe, "%s: root element is <%s>, want <svg>", name, root.Tag)
	}
	return &Document{Name: name, doc: doc}, nil
}

// Clone returns a deep structural copy of d.
func (d *Document) Clone() *Document {
	return &Document{Name: d.Name, doc: d.doc.Copy()}
}

// Root returns the <svg> element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize %s", d.Name)
	}
	return data, nil
}

// ElementByID returns the first element in document order whose id is id.
func (d *Document) ElementByID(id string) *etree.Element {
	if id == "" {
		return nil
	}
	var found *etree.Element
	Walk(d.Root(), func(el *etree.Element) bool {
		if found != nil {
			return false
		}
		if ID(el) == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// IDs returns every element id in document order.
func (d *Document) IDs() []string {
	var ids []string
	Walk(d.Root(), func(el *etree.Element) bool {
		if id := ID(el); id != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// Size returns the canvas size from the root viewBox, falling back to the
// width and height attributes. ok is false when neither is usable.
func (d *Document) Size() (w, h float64, ok bool) {
	root := d.Root()
	if vb := strings.Fields(strings.ReplaceAll(root.SelectAttrValue("viewBox", ""), ",", " ")); len(vb) == 4 {
		vw, errW := strconv.ParseFloat(vb[2], 64)
		vh, errH := strconv.ParseFloat(vb[3], 64)
		if errW == nil && errH == nil && vw > 0 && vh > 0 {
			return vw, vh, true
		}
	}
	w, okW := length(root.SelectAttrValue("width", ""))
	h, okH := length(root.SelectAttrValue("height", ""))
	if okW && okH && w > 0 && h > 0 {
		return w, h, true
	}
	return 0, 0, false
}

// Signature describes the tag structure of the document, including ids, as a
// single string. Two documents with the same signature have the same element
// tree shape.
func (d *Document) Signature() string {
	var b strings.Builder
	signature(&b, d.Root())
	return b.String()
}

func signature(b *strings.Builder, el *etree.Element) {
	b.WriteString(el.Tag)
	if id := ID(el); id != "" {
		fmt.Fprintf(b, "#%s", id)
	}
	children := el.ChildElements()
	if len(children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			b.WriteByte(' ')
		}
		signature(b, c)
	}
	b.WriteByte(')')
}

func length(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
