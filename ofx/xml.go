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

package ofx

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/xml"
)

// ErrSyntax is returned by ParseXML when the document is not well formed.
type ErrSyntax struct {
	Line int
	Err  error
}

func (err *ErrSyntax) Error() string {
	return fmt.Sprintf("Malformed XML near line %v: %v", err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

var strayAmpersand = regexp.MustCompile(`&([^#a-zA-Z]|[a-zA-Z][a-zA-Z0-9]*([^a-zA-Z0-9;]|$)|$)`)

// escapeAmpersands turns bare ampersands (as in "Smith & Sons") into entity references.
func escapeAmpersands(s string) string {
	return strayAmpersand.ReplaceAllStringFunc(s, func(m string) string {
		return "&amp;" + m[1:]
	})
}

// ParseXML reads an XML style document body (starting at the OFX root) into a tree.
func ParseXML(body string, line int) (*Node, error) {
	body = escapeAmpersands(body)
	d := xml.NewDecoder(strings.NewReader(body))

	lineAt := func() int {
		off := int(d.InputOffset())
		if off > len(body) {
			off = len(body)
		}
		return line + strings.Count(body[:off], "\n")
	}

	var root *Node
	var stack []*Node
	var text strings.Builder
	for {
		at := lineAt()
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ErrSyntax{Line: lineAt(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := Leaf(strings.ToUpper(t.Name.Local), "")
			n.Line = at
			if len(stack) == 0 {
				if root != nil {
					return nil, &ErrSyntax{Line: at, Err: fmt.Errorf("second root element %v", n.Tag)}
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.container = true
				parent.Append(n)
			}
			stack = append(stack, n)
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if knownContainers[n.Tag] {
				n.container = true
			}
			if !n.container {
				n.Value = strings.TrimSpace(text.String())
			}
			text.Reset()
		}
	}

	if root == nil || root.Tag != "OFX" {
		return nil, ErrNoRoot
	}
	return root, nil
}
