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

package lex

/*
This is a greatly simplified and stripped down version of the core Lexer code that many of my parsers used for years.

Both sanitizers read through this. Export files come from every platform under the sun, so CR, LF, and CRLF are all
treated as a single line break and C only ever holds '\n' for any of them.
*/

import (
	"fmt"
	"io"
	"strings"
)

// CharReader is a simple way to read from a string character by character, with line info and lookahead.
type CharReader struct {
	source io.RuneScanner

	// The current character
	L   Location // Line
	C   rune     // Character
	EOF bool     // true if current C and L are invalid, at end of input

	// The lookahead (next) character
	NL   Location
	NC   rune
	NEOF bool // true if current NC and NL are invalid, will be at end of input with next advance

	pos Location // Where the next rune read from source lives.
}

// NewCharReader returns a new CharReader with the input preadvanced so that all fields are valid.
func NewCharReader(source string, line int) *CharReader {
	cr := new(CharReader)

	cr.source = strings.NewReader(source)

	cr.pos = Location{Line: line}

	// prime the pump
	cr.Next()
	cr.Next()

	return cr
}

// Match returns true if C matches one of the chars in the string.
func (cr *CharReader) Match(chars string) bool {
	if cr.EOF {
		return false
	}
	return strings.ContainsRune(chars, cr.C)
}

// Next advances the reader one character position.
// C, L, and EOF gain the previous values of NC, NL, and NEOF, additionally a newly read character becomes NC.
// Carriage returns are folded into newlines, and newlines will advance the current value of NL.
// If the end of input is reached NEOF is set to true.
func (cr *CharReader) Next() {
	if cr.EOF {
		return
	}
	if cr.NEOF {
		cr.EOF = true
		return
	}

	cr.C = cr.NC
	cr.L = cr.NL

	r, _, err := cr.source.ReadRune() // err should only ever be io.EOF
	if err != nil {
		cr.NEOF = true
		return
	}

	// A CR is a line break on its own (old Mac files), and the first half of one when followed by a LF.
	if r == '\r' {
		r = '\n'
		next, _, err := cr.source.ReadRune()
		if err == nil && next != '\n' {
			cr.source.UnreadRune()
		}
	}

	cr.NC = r
	cr.NL = cr.pos
	if r == '\n' {
		cr.pos = Location{Line: cr.pos.Line + 1}
		return
	}
	cr.pos.Column++
}

// Eat all characters until one of the given chars are found or EOF.
func (cr *CharReader) EatUntil(chars string) {
	for !cr.EOF && !cr.Match(chars) {
		cr.Next()
	}
}

// ReadUntil reads all characters into a buffer until a matching character is found or EOF.
func (cr *CharReader) ReadUntil(chars string, buf []rune) []rune {
	for !cr.EOF && !cr.Match(chars) {
		buf = append(buf, cr.C)
		cr.Next()
	}
	return buf
}

// ReadLine reads the rest of the current line, consuming the line break. The returned location is where the line
// started. ok is false only if the reader was already at the end of input.
func (cr *CharReader) ReadLine() (line string, at Location, ok bool) {
	if cr.EOF {
		return "", cr.L, false
	}
	at = cr.L
	buf := cr.ReadUntil("\n", nil)
	cr.Next()
	return string(buf), at, true
}

// Location represents a line and column number for a given character in the lexer input.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%v:%v", l.Line, l.Column)
}
