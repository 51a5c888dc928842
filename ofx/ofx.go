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
	"errors"
	"regexp"
	"strings"

	"github.com/milochristiansen/moneysan/report"
)

// ErrNoRoot is returned when the input has no <OFX> element at all.
var ErrNoRoot = errors.New("No <OFX> root element found.")

// Limits are the importer's maximum lengths for OFX values. Zero means no limit.
type Limits struct {
	NameLength     int `yaml:"name_length"`
	MemoLength     int `yaml:"memo_length"`
	FITIDLength    int `yaml:"fitid_length"`
	TRNUIDLength   int `yaml:"trnuid_length"`
	OrgLength      int `yaml:"org_length"`
	FIDLength      int `yaml:"fid_length"`
	CheckNumLength int `yaml:"checknum_length"`
}

// DefaultLimits are the limits the importer enforces.
var DefaultLimits = Limits{
	NameLength:     32,
	MemoLength:     255,
	FITIDLength:    32,
	TRNUIDLength:   36,
	OrgLength:      32,
	FIDLength:      32,
	CheckNumLength: 12,
}

var rootPattern = regexp.MustCompile(`(?i)<OFX[\s>]`)

// Sanitize cleans up an OFX file (either dialect) and returns its lines in the SGML dialect, header included, without
// line terminators. Problems that cost data are sent to sink.
func Sanitize(input string, lim Limits, sink report.Sink) ([]string, error) {
	if sink == nil {
		sink = report.Discard
	}

	loc := rootPattern.FindStringIndex(input)
	if loc == nil {
		return nil, ErrNoRoot
	}
	line := 1 + countLines(input[:loc[0]])
	body := input[loc[0]:]

	var root *Node
	if IsXML(input[:loc[0]], body) {
		var err error
		root, err = ParseXML(body, line)
		if err != nil {
			sink.Report(report.Event{
				Kind:   report.FieldWarning,
				Format: "ofx",
				Reason: err.Error() + ", reading as SGML instead",
			})
			root = nil
		}
	}
	if root == nil {
		var err error
		root, err = ParseSGML(body, line, sink)
		if err != nil {
			return nil, err
		}
	}

	err := Repair(root, lim, sink)
	if err != nil {
		return nil, err
	}
	return append(Header(), Format(root)...), nil
}

// IsXML guesses the dialect of a document. It is XML if the prelude has an XML declaration or every value in the
// body is explicitly closed.
func IsXML(prelude, body string) bool {
	if strings.Contains(strings.ToLower(prelude), "<?xml") {
		return true
	}

	toks := tokenize(body, 1)
	for i := 1; i < len(toks)-1; i++ {
		if toks[i].kind != tokText || toks[i-1].kind != tokOpen {
			continue
		}
		next := toks[i+1]
		if next.kind != tokClose || next.value != toks[i-1].value {
			return false
		}
	}
	if n := len(toks); n >= 2 && toks[n-1].kind == tokText && toks[n-2].kind == tokOpen {
		return false
	}
	return true
}

// countLines counts line breaks in any of the usual styles.
func countLines(s string) int {
	return strings.Count(s, "\n") + strings.Count(s, "\r") - strings.Count(s, "\r\n")
}
