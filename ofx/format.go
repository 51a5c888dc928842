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
	"strings"
)

// The header block the importer expects, followed by the blank line separating it from the body.
var header = []string{
	"OFXHEADER:100",
	"DATA:OFXSGML",
	"VERSION:102",
	"SECURITY:NONE",
	"ENCODING:USASCII",
	"CHARSET:1252",
	"COMPRESSION:NONE",
	"OLDFILEUID:NONE",
	"NEWFILEUID:NONE",
	"",
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Header returns a fresh copy of the SGML header block.
func Header() []string {
	return append([]string(nil), header...)
}

// Format flattens a tree into SGML lines. Leaves are never closed and empty leaves are left out entirely.
func Format(n *Node) []string {
	return format(n, nil)
}

func format(n *Node, lines []string) []string {
	if !n.container {
		if n.Value == "" {
			return lines
		}
		return append(lines, "<"+n.Tag+">"+escaper.Replace(n.Value))
	}

	lines = append(lines, "<"+n.Tag+">")
	for _, c := range n.Children {
		lines = format(c, lines)
	}
	return append(lines, "</"+n.Tag+">")
}
