// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"bytes"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
)

// Node is one element of a WBXML document. A node holds either child
// elements or a leaf payload (Text or Opaque), never both. A node with
// neither is an empty element.
type Node struct {
	Tag      codepage.Tag
	Children []*Node
	Text     string
	Opaque   []byte
}

// NewNode returns an element with the given children.
func NewNode(tag codepage.Tag, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// NewText returns a leaf element carrying text.
func NewText(tag codepage.Tag, text string) *Node {
	return &Node{Tag: tag, Text: text}
}

// NewOpaque returns a leaf element carrying raw bytes.
func NewOpaque(tag codepage.Tag, data []byte) *Node {
	if data == nil {
		data = []byte{}
	}
	return &Node{Tag: tag, Opaque: data}
}

// Add appends children to n and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// IsLeaf reports whether n has no child elements.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the first direct child with tag.
func (n *Node) Child(tag codepage.Tag) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the first direct child with tag.
func (n *Node) ChildText(tag codepage.Tag) (string, bool) {
	c := n.Child(tag)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

// FindAll returns every direct child with tag, in document order.
func (n *Node) FindAll(tag codepage.Tag) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Equal reports whether n and other are structurally identical: same tags,
// same payloads and the same children in the same order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Tag != other.Tag || n.Text != other.Text || len(n.Children) != len(other.Children) {
		return false
	}
	if (n.Opaque == nil) != (other.Opaque == nil) || !bytes.Equal(n.Opaque, other.Opaque) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
