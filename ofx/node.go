/*
Copyright 2022 by Milo Christiansen

This software is provided 'as-is', without any express or implied warranty. In
no event will the authors be held liable for any damages arising from the use of
this software.

Permission is granted to anyone to use this software for any purpose, including
commercial applications, and to alter it and redistribute it freely, subject to
the following restrictions:

1. The origin of this software must not be misrepresented; you must not claim
that you wrote the original software. If you use this software in a product, an
acknowledgment in the product documentation would be appreciated but is not
required.

2. Altered source versions must be plainly marked as such, and must not be
misrepresented as being the original software.

3. This notice may not be removed or altered from any source distribution.
*/

/*
Package ofx sanitizes Open Financial Exchange files.

Input may be the old SGML dialect (leaf tags are never closed) or the newer XML one, both are read into the same tree
of Nodes. The tree is then repaired (values normalized, required fields synthesized) and written back out as SGML,
since that is the only dialect the importer understands.
*/
package ofx

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Aggregates that always hold other elements. Anything else is a leaf unless the input explicitly closes it.
var knownContainers = map[string]bool{
	"OFX":                true,
	"SIGNONMSGSRSV1":     true,
	"SONRS":              true,
	"STATUS":             true,
	"FI":                 true,
	"BANKMSGSRSV1":       true,
	"CREDITCARDMSGSRSV1": true,
	"INVSTMTMSGSRSV1":    true,
	"SECLISTMSGSRSV1":    true,
	"STMTTRNRS":          true,
	"CCSTMTTRNRS":        true,
	"INVSTMTTRNRS":       true,
	"STMTRS":             true,
	"CCSTMTRS":           true,
	"INVSTMTRS":          true,
	"BANKACCTFROM":       true,
	"BANKACCTTO":         true,
	"CCACCTFROM":         true,
	"CCACCTTO":           true,
	"INVACCTFROM":        true,
	"BANKTRANLIST":       true,
	"INVTRANLIST":        true,
	"STMTTRN":            true,
	"INVBANKTRAN":        true,
	"INVTRAN":            true,
	"PAYEE":              true,
	"CURRENCY":           true,
	"ORIGCURRENCY":       true,
	"LEDGERBAL":          true,
	"AVAILBAL":           true,
	"BALLIST":            true,
	"BAL":                true,
	"INVBAL":             true,
	"INVPOSLIST":         true,
	"SECLIST":            true,
}

// Node is a single element of an OFX document. Leaves carry a Value, containers carry Children.
type Node struct {
	Tag      string
	Value    string
	Children []*Node
	Line     int // Source line, 0 for synthesized nodes.

	container bool
}

// Leaf creates a new leaf node.
func Leaf(tag, value string) *Node {
	return &Node{Tag: tag, Value: value}
}

// Aggregate creates a new container node.
func Aggregate(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children, container: true}
}

// IsContainer returns true if the node holds other nodes rather than a value.
func (n *Node) IsContainer() bool {
	return n.container
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	i := n.index(tag)
	if i == -1 {
		return nil
	}
	return n.Children[i]
}

// Text returns the value of the first direct child with the given tag, or "".
func (n *Node) Text(tag string) string {
	c := n.Child(tag)
	if c == nil {
		return ""
	}
	return c.Value
}

// Find returns the first descendant (depth first, document order) with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if f := c.Find(tag); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every descendant with the given tag, in document order.
func (n *Node) FindAll(tag string) []*Node {
	var found []*Node
	n.Walk(func(c *Node) {
		if c.Tag == tag {
			found = append(found, c)
		}
	})
	return found
}

// Walk calls fn for every descendant of n in document order, parents before children.
func (n *Node) Walk(fn func(c *Node)) {
	for _, c := range n.Children {
		fn(c)
		c.Walk(fn)
	}
}

// Insert adds child directly after the last existing child with one of the after tags. If there are none it is added
// at the front.
func (n *Node) Insert(child *Node, after ...string) {
	at := 0
	for i, c := range n.Children {
		if slices.Contains(after, c.Tag) {
			at = i + 1
		}
	}
	n.Children = slices.Insert(n.Children, at, child)
}

// Set gives the first direct child with the given tag a new value, adding the child (as with Insert) if needed.
func (n *Node) Set(tag, value string, after ...string) *Node {
	c := n.Child(tag)
	if c == nil {
		c = Leaf(tag, value)
		n.Insert(c, after...)
	}
	c.Value = value
	return c
}

// Append adds child after all existing children.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

func (n *Node) index(tag string) int {
	return slices.IndexFunc(n.Children, func(c *Node) bool { return c.Tag == tag })
}

func (n *Node) String() string {
	return strings.Join(Format(n), "\n")
}
