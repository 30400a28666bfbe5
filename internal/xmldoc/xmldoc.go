// Package xmldoc is a minimal ordered XML element tree. The processor's
// schema is order-sensitive and uses dynamic element names, so documents are
// built and walked as explicit trees instead of struct marshaling.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type Attr struct {
	Name  string
	Value string
}

// Element is one node of the tree. A node is a leaf when it has no children;
// only leaves carry text.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

func New(tag string) *Element {
	return &Element{Tag: tag}
}

// Attr appends an attribute, preserving insertion order.
func (e *Element) Attr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// AttrValue returns the value of the named attribute, if present.
func (e *Element) AttrValue(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Element appends a new child element and returns the child.
func (e *Element) Element(tag string) *Element {
	child := New(tag)
	e.Children = append(e.Children, child)
	return child
}

// Leaf appends a child leaf with text and returns the parent for chaining.
func (e *Element) Leaf(tag, text string) *Element {
	child := e.Element(tag)
	child.Text = text
	return e
}

// Add appends prebuilt children in order.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find returns the first element with the given tag in a depth-first walk of
// the tree rooted at e, or nil. Tags are compared without namespace prefix.
func (e *Element) Find(tag string) *Element {
	if localName(e.Tag) == tag {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// Bytes serializes the tree. Attribute and child order follow insertion
// order; empty leaves collapse to self-closing tags.
func (e *Element) Bytes() []byte {
	var buf bytes.Buffer
	e.write(&buf)
	return buf.Bytes()
}

func (e *Element) String() string {
	return string(e.Bytes())
}

func (e *Element) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		fmt.Fprintf(buf, " %s=\"%s\"", a.Name, escape(a.Value))
	}
	if len(e.Children) == 0 && e.Text == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if e.Text != "" {
		buf.WriteString(escape(e.Text))
	}
	for _, c := range e.Children {
		c.write(buf)
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteByte('>')
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Parse reads an XML document into an Element tree. Element and attribute
// names keep only their local part; namespace prefixes and declarations are
// not significant to reply flattening.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := New(t.Name.Local)
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attr(a.Name.Local, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple document roots")
				}
				root = el
			} else {
				stack[len(stack)-1].Add(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced end element %s", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				if text := strings.TrimSpace(string(t)); text != "" {
					stack[len(stack)-1].Text += text
				}
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty document")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed element %s", stack[len(stack)-1].Tag)
	}
	return root, nil
}

func localName(tag string) string {
	if i := strings.LastIndex(tag, ":"); i >= 0 {
		return tag[i+1:]
	}
	return tag
}
