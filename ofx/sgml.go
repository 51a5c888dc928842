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
	"html"
	"strings"

	"github.com/milochristiansen/moneysan/parse/lex"
	"github.com/milochristiansen/moneysan/report"
)

type tokenKind int

const (
	tokOpen tokenKind = iota
	tokClose
	tokText
)

type token struct {
	kind  tokenKind
	value string // Upper case tag name, or unescaped text.
	line  int
}

// tokenize splits a document body into tags and text. Declarations, processing instructions, comments, and
// attributes are skipped. Whitespace only text is dropped.
func tokenize(body string, line int) []token {
	cr := lex.NewCharReader(body, line)

	toks := []token{}
	for !cr.EOF {
		at := cr.L.Line
		if !cr.Match("<") {
			text := strings.TrimSpace(string(cr.ReadUntil("<", nil)))
			if text != "" {
				toks = append(toks, token{kind: tokText, value: html.UnescapeString(text), line: at})
			}
			continue
		}
		cr.Next()

		if cr.Match("?!") {
			cr.EatUntil(">")
			cr.Next()
			continue
		}

		kind := tokOpen
		if cr.Match("/") {
			kind = tokClose
			cr.Next()
		}
		name := strings.ToUpper(string(cr.ReadUntil(">< \t\n/", nil)))
		cr.EatUntil("><")
		if cr.Match(">") {
			cr.Next()
		}
		if name == "" {
			continue
		}
		toks = append(toks, token{kind: kind, value: name, line: at})
	}
	return toks
}

// ParseSGML reads an SGML style document body (starting at the OFX root) into a tree.
//
// The dialect never closes leaves, so the shape has to be guessed: a tag followed by text is a leaf, and a tag
// followed by another tag is a container if it is a known aggregate or the document closes it somewhere, otherwise it
// is an empty leaf.
func ParseSGML(body string, line int, sink report.Sink) (*Node, error) {
	if sink == nil {
		sink = report.Discard
	}

	toks := tokenize(body, line)
	if len(toks) == 0 || toks[0].kind != tokOpen || toks[0].value != "OFX" {
		return nil, ErrNoRoot
	}

	closed := map[string]bool{}
	for _, t := range toks {
		if t.kind == tokClose {
			closed[t.value] = true
		}
	}

	root := Aggregate("OFX")
	root.Line = toks[0].line
	stack := []*Node{root}

	for i := 1; i < len(toks) && len(stack) > 0; i++ {
		t := toks[i]
		top := stack[len(stack)-1]

		switch t.kind {
		case tokOpen:
			var next *token
			if i+1 < len(toks) {
				next = &toks[i+1]
			}

			if knownContainers[t.value] {
				n := Aggregate(t.value)
				n.Line = t.line
				top.Append(n)
				stack = append(stack, n)
				continue
			}

			n := Leaf(t.value, "")
			n.Line = t.line
			top.Append(n)

			switch {
			case next != nil && next.kind == tokText:
				n.Value = next.value
				i++
				if i+1 < len(toks) && toks[i+1].kind == tokClose && toks[i+1].value == t.value {
					i++
				}
			case next != nil && next.kind == tokClose && next.value == t.value:
				i++
			case closed[t.value]:
				n.container = true
				stack = append(stack, n)
			}
		case tokClose:
			j := len(stack) - 1
			for j >= 0 && stack[j].Tag != t.value {
				j--
			}
			if j < 0 {
				sink.Report(report.Event{
					Kind:   report.FieldWarning,
					Format: "ofx",
					Field:  t.value,
					Line:   t.line,
					Reason: "closing tag with no matching open tag ignored",
				})
				continue
			}
			stack = stack[:j]
		case tokText:
			sink.Report(report.Event{
				Kind:   report.FieldWarning,
				Format: "ofx",
				Field:  top.Tag,
				Line:   t.line,
				Reason: "stray text inside aggregate dropped",
			})
		}
	}
	return root, nil
}
