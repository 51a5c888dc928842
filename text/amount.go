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
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)

// ParseAmount reads a money amount. Thousands separators, currency symbols, and a leading plus are ignored, and both
// accounting style negatives, (12.00), and trailing minus signs, 12.00-, are understood.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, &ErrBadAmount{Token: s, Reason: "empty amount"}
	}

	neg := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		neg = true
		raw = raw[1 : len(raw)-1]
	}

	clean := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\u00a0', '$', '£', '€', '¥':
			return -1
		}
		return r
	}, raw)
	clean = strings.TrimPrefix(clean, "+")
	if strings.HasSuffix(clean, "-") && !strings.HasPrefix(clean, "-") {
		neg = true
		clean = strings.TrimSuffix(clean, "-")
	}

	if !amountPattern.MatchString(clean) {
		return decimal.Zero, &ErrBadAmount{Token: s, Reason: "not a decimal number"}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &ErrBadAmount{Token: s, Reason: err.Error()}
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// FormatAmount renders d with exactly two fraction digits, no thousands separators, and no plus sign.
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	if d.IsZero() {
		return "0.00"
	}
	return d.StringFixed(2)
}

// Amount normalizes an amount token to fixed point with two fraction digits.
func Amount(s string) (string, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return "", err
	}
	return FormatAmount(d), nil
}
