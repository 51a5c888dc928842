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
	"regexp"
	"strings"
	"time"

	"github.com/milochristiansen/moneysan/text"
)

// A fixer normalizes the value of one kind of leaf. The notes are non-fatal problems.
type fixer func(value string, lim Limits) (clean string, notes []string, err error)

// OFX dates are YYYYMMDD with optional time, fraction, and time zone: 20231215, 20231215103000.000[-5:EST]
var datePattern = regexp.MustCompile(`^\d{8}(\d{4}(\d{2}(\.\d{3})?)?)?(\[[+-]?\d+(\.\d+)?(:[A-Za-z]+)?\])?$`)

const dateLayout = "20060102"

func fixAmount(value string, lim Limits) (string, []string, error) {
	clean, err := text.Amount(value)
	return clean, nil, err
}

// fixDate keeps valid OFX dates as they are, and converts anything else it can read to YYYYMMDD.
func fixDate(value string, lim Limits) (string, []string, error) {
	value = strings.TrimSpace(value)
	if datePattern.MatchString(value) {
		if _, err := time.Parse(dateLayout, value[:8]); err == nil {
			return value, nil, nil
		}
	}

	t, err := text.ParseDate(value)
	if err != nil {
		return "", nil, err
	}
	return t.Format(dateLayout), nil, nil
}

func fixEnum(value string, lim Limits) (string, []string, error) {
	clean, notes, err := fixText(value, lim)
	return strings.ToUpper(clean), notes, err
}

func fixText(value string, lim Limits) (string, []string, error) {
	clean, lossy := text.ASCII(value)
	if lossy {
		return clean, []string{"non-ASCII characters dropped"}, nil
	}
	return clean, nil, nil
}

func limited(limit func(Limits) int) fixer {
	return func(value string, lim Limits) (string, []string, error) {
		clean, notes, _ := fixText(value, lim)
		n := limit(lim)
		clean, cut := text.Truncate(clean, n)
		if cut {
			notes = append(notes, fmt.Sprintf("truncated to %d characters", n))
		}
		return clean, notes, nil
	}
}

// Leaf tags with special handling, anything else is plain text.
var leafFixers = map[string]fixer{
	"TRNAMT": fixAmount,
	"BALAMT": fixAmount,

	"DTPOSTED": fixDate,
	"DTUSER":   fixDate,
	"DTAVAIL":  fixDate,
	"DTSTART":  fixDate,
	"DTEND":    fixDate,
	"DTASOF":   fixDate,
	"DTSERVER": fixDate,
	"DTPROFUP": fixDate,
	"DTACCTUP": fixDate,
	"DTTRADE":  fixDate,
	"DTSETTLE": fixDate,

	"NAME":     limited(func(l Limits) int { return l.NameLength }),
	"MEMO":     limited(func(l Limits) int { return l.MemoLength }),
	"FITID":    limited(func(l Limits) int { return l.FITIDLength }),
	"TRNUID":   limited(func(l Limits) int { return l.TRNUIDLength }),
	"ORG":      limited(func(l Limits) int { return l.OrgLength }),
	"FID":      limited(func(l Limits) int { return l.FIDLength }),
	"CHECKNUM": limited(func(l Limits) int { return l.CheckNumLength }),

	"TRNTYPE":  fixEnum,
	"ACCTTYPE": fixEnum,
	"CURDEF":   fixEnum,
	"SEVERITY": fixEnum,
	"LANGUAGE": fixEnum,
}

func fixerFor(tag string) fixer {
	if f, ok := leafFixers[tag]; ok {
		return f
	}
	return fixText
}
