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
Package moneysan cleans up QIF and OFX exports so that Microsoft Money Sunset Edition will import them.

Money is very picky. It wants plain ASCII, a single date format, two decimal places on every amount, Windows line
endings, and (for OFX) the old SGML dialect with a bunch of fields most banks no longer bother to send. Sanitize takes
care of all of that, and reports anything it had to throw away to a report.Sink.
*/
package moneysan

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when the input is neither QIF nor OFX.
var ErrUnknownFormat = errors.New("Unrecognized input format, expected QIF or OFX.")

// Format identifies which sanitizer a file needs.
type Format int

// Format constants
const (
	FormatUnknown Format = iota
	FormatQIF
	FormatOFX
)

func (f Format) String() string {
	switch f {
	case FormatQIF:
		return "qif"
	case FormatOFX:
		return "ofx"
	}
	return "unknown"
}

var extensions = map[string]Format{
	".qif": FormatQIF,
	".ofx": FormatOFX,
	".qfx": FormatOFX,
}

// Detect works out the format of a file from its name, or failing that, its content.
func Detect(name string, data []byte) (Format, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f, nil
	}

	upper := bytes.ToUpper(data)
	switch {
	case bytes.Contains(upper, []byte("<OFX")), bytes.Contains(upper, []byte("OFXHEADER")):
		return FormatOFX, nil
	case bytes.Contains(upper, []byte("!TYPE:")):
		return FormatQIF, nil
	}
	return FormatUnknown, ErrUnknownFormat
}
