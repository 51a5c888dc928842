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

package qif

import (
	"fmt"

	"github.com/milochristiansen/moneysan/text"
)

type valueKind int

const (
	kindText   valueKind = iota
	kindDate             // MM/DD/YYYY, record dies if it won't parse
	kindAmount           // Two decimal places, record dies if it won't parse
	kindNumber           // Prices and share counts, kept at full precision
)

// handler describes how the value of one tag is cleaned up.
type handler struct {
	kind     valueKind
	required bool // An empty value makes the line useless.
	single   bool // Only the first occurrence in a record is kept.
	split    bool // Part of a split entry.
	limit    func(Limits) int
}

func payeeLimit(l Limits) int   { return l.PayeeLength }
func memoLimit(l Limits) int    { return l.MemoLength }
func addressLimit(l Limits) int { return l.AddressLength }

// The tags of the transaction sections (Bank, CCard, Invst, ...). Anything else is dropped.
var transactionTags = map[byte]handler{
	'D': {kind: kindDate, required: true, single: true},
	'T': {kind: kindAmount, required: true, single: true},
	'U': {kind: kindAmount, required: true, single: true},
	'P': {kind: kindText, single: true, limit: payeeLimit},
	'M': {kind: kindText, single: true, limit: memoLimit},
	'A': {kind: kindText, limit: addressLimit},
	'L': {kind: kindText, single: true},
	'N': {kind: kindText, single: true},
	'C': {kind: kindText, single: true},

	// Investment accounts
	'Y': {kind: kindText, single: true},
	'I': {kind: kindNumber, required: true, single: true},
	'Q': {kind: kindNumber, required: true, single: true},
	'O': {kind: kindAmount, required: true, single: true},

	// Splits
	'S': {kind: kindText, split: true},
	'E': {kind: kindText, split: true, limit: memoLimit},
	'$': {kind: kindAmount, required: true, split: true},
	'%': {kind: kindText, required: true, split: true},
}

// List sections (accounts, categories, ...) reuse tag letters with different meanings, so every field is just text.
var listTag = handler{kind: kindText}

// Section names holding list items rather than transactions.
var listSections = map[string]bool{
	"ACCOUNT":  true,
	"CAT":      true,
	"CLASS":    true,
	"SECURITY": true,
	"PAYEE":    true,
	"PRICES":   true,
}

// normalize runs a value through the normalizer for its kind. The returned notes are non-fatal problems.
func (h handler) normalize(value string, lim Limits) (clean string, notes []string, err error) {
	switch h.kind {
	case kindDate:
		clean, err = text.Date(value)
		return clean, nil, err
	case kindAmount:
		clean, err = text.Amount(value)
		return clean, nil, err
	case kindNumber:
		d, err := text.ParseAmount(value)
		if err != nil {
			return "", nil, err
		}
		return d.String(), nil, nil
	}

	clean, lossy := text.ASCII(value)
	if lossy {
		notes = append(notes, "non-ASCII characters dropped")
	}
	if h.limit != nil {
		var cut bool
		clean, cut = text.Truncate(clean, h.limit(lim))
		if cut {
			notes = append(notes, fmt.Sprintf("truncated to %d characters", h.limit(lim)))
		}
	}
	return clean, notes, nil
}
