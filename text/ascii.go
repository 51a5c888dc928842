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
Package text holds the normalizers shared by the QIF and OFX sanitizers.

Everything in here is a pure function of its input. The importer on the other end is a very old Windows program, so
the rules boil down to "plain ASCII, one date format, two decimal places".
*/
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterations for characters that Unicode decomposition does not reduce to ASCII.
var transliterations = map[rune]string{
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "Th",
	'ı': "i",
	'‘': "'", '’': "'", '‚': "'", '′': "'",
	'“': `"`, '”': `"`, '„': `"`, '″': `"`,
	'‐': "-", '‑': "-", '–': "-", '—': "-", '−': "-",
	'•': "*",
	'×': "x",
}

// ASCII maps s onto printable ASCII. Accents are stripped, a handful of letters and punctuation are transliterated,
// control characters, line breaks, and the QIF record separator (^) become spaces, and anything else outside of
// ASCII is dropped. Runs of whitespace are collapsed and the ends trimmed.
//
// lossy is true if any character had to be dropped outright.
func ASCII(s string) (clean string, lossy bool) {
	buf := new(strings.Builder)
	for _, r := range s {
		if rep, ok := transliterations[r]; ok {
			buf.WriteString(rep)
			continue
		}
		buf.WriteRune(r)
	}

	// Chains carry buffers, so each call gets its own.
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, buf.String())
	if err != nil {
		decomposed = buf.String()
	}

	out := new(strings.Builder)
	space := true // Starts true so leading whitespace is dropped.
	for _, r := range decomposed {
		switch {
		case r == '^' || r < 0x20 || r == 0x7f || unicode.IsSpace(r):
			r = ' '
		case r > 0x7e:
			lossy = true
			continue
		}

		if r == ' ' {
			if space {
				continue
			}
			space = true
		} else {
			space = false
		}
		out.WriteRune(r)
	}
	return strings.TrimRight(out.String(), " "), lossy
}

// Truncate cuts s down to at most limit characters. Trailing spaces left by the cut are removed so that running the
// result through ASCII again does not change it. A limit of zero or less means no limit.
func Truncate(s string, limit int) (string, bool) {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s, false
	}
	return strings.TrimRight(string(r[:limit]), " "), true
}
