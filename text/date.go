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

package text

import (
	"strings"
	"time"
)

// DateLayout is the only date format the importer accepts in QIF files.
const DateLayout = "01/02/2006"

// Recognized input layouts, in order of preference. Month first wins for ambiguous dates like 01/02/2024, day first
// is only tried when month first can't work (25/12/2024).
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-1-2",
	"2006/1/2",
	"20060102",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
}

// ParseDate parses a date in any of the recognized formats. Quicken style dates (1/ 5'24) are handled by treating
// the apostrophe as a slash and ignoring padding spaces.
func ParseDate(s string) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, &ErrBadDate{Token: s, Reason: "empty date"}
	}

	clean := strings.ReplaceAll(raw, "'", "/")
	clean = strings.ReplaceAll(clean, " ", "")
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, clean)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ErrBadDate{Token: s, Reason: "not a recognized date"}
}

// Date normalizes a date token to MM/DD/YYYY.
func Date(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}
