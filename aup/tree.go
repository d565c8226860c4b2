// SPDX-License-Identifier: EPL-2.0

package aup

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// Namespace is the XML namespace every project element must live in.
const Namespace = "http://audacity.sourceforge.net/xml/"

// node is a read-only view over one element of the parsed project tree,
// restricted to elements in Namespace.
type node struct {
	el *etree.Element
}

func parseTree(r io.Reader) (node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return node{}, malformed("parse xml: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return node{}, malformed("empty document")
	}
	if ns := root.NamespaceURI(); ns != Namespace {
		return node{}, malformed("root element %q in namespace %q", root.Tag, ns)
	}

	return node{el: root}, nil
}

func (n node) tag() string { return n.el.Tag }

// children returns the direct child elements named tag, in document order.
func (n node) children(tag string) []node {
	var out []node
	for _, ch := range n.el.ChildElements() {
		if ch.Tag == tag && ch.NamespaceURI() == Namespace {
			out = append(out, node{el: ch})
		}
	}
	return out
}

// descendants returns every element below n named tag, depth first.
// An empty tag matches every element.
func (n node) descendants(tag string) []node {
	var out []node
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, ch := range el.ChildElements() {
			if (tag == "" || ch.Tag == tag) && ch.NamespaceURI() == Namespace {
				out = append(out, node{el: ch})
			}
			walk(ch)
		}
	}
	walk(n.el)
	return out
}

func (n node) attr(name string) (string, bool) {
	a := n.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// str returns the attribute value or def when absent.
func (n node) str(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n node) float(name string) (float64, error) {
	v, ok := n.attr(name)
	if !ok {
		return 0, malformed("<%s> missing attribute %q", n.el.Tag, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, malformed("<%s> attribute %q=%q is not a number", n.el.Tag, name, v)
	}
	return f, nil
}

// floatOr is float with a default for absent attributes. Present but
// unparsable values are still an error.
func (n node) floatOr(name string, def float64) (float64, error) {
	if _, ok := n.attr(name); !ok {
		return def, nil
	}
	return n.float(name)
}

func (n node) int(name string) (int64, error) {
	v, ok := n.attr(name)
	if !ok {
		return 0, malformed("<%s> missing attribute %q", n.el.Tag, name)
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, malformed("<%s> attribute %q=%q is not an integer", n.el.Tag, name, v)
	}
	return i, nil
}

func (n node) intOr(name string, def int64) (int64, error) {
	if _, ok := n.attr(name); !ok {
		return def, nil
	}
	return n.int(name)
}

func (n node) bool(name string) bool {
	v, ok := n.attr(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
