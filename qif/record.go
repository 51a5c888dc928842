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
Package qif sanitizes Quicken Interchange Format files.

A QIF file is a list of records, one tagged field per line (the first character is the tag) and a line holding only
a caret between records. Headers starting with a bang switch between sections. Records are rebuilt field by field in
their original order, with every value run through the text normalizers.
*/
package qif

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Limits are the importer's constraints on QIF content. Zero means no limit.
type Limits struct {
	MaxSplits     int `yaml:"max_splits"`
	PayeeLength   int `yaml:"payee_length"`
	MemoLength    int `yaml:"memo_length"`
	AddressLength int `yaml:"address_length"`
}

// DefaultLimits are the limits the importer enforces.
var DefaultLimits = Limits{
	MaxSplits:     250,
	PayeeLength:   80,
	MemoLength:    120,
	AddressLength: 35,
}

// Field is a single tagged line.
type Field struct {
	Tag   byte
	Value string
	Line  int // Source line.
}

func (f Field) String() string {
	return string(f.Tag) + f.Value
}

// Split is one entry of a split transaction: a category, memo, amount, and/or percentage.
type Split struct {
	Fields []Field

	At int // Index into the record's Fields where the split is written.
}

// Has returns true if the split already holds a field with the given tag.
func (s *Split) Has(tag byte) bool {
	return slices.IndexFunc(s.Fields, func(f Field) bool { return f.Tag == tag }) != -1
}

// Record is a single transaction (or list item), in source order.
type Record struct {
	Fields []Field
	Splits []Split

	Position int // 1 based index of the record in the file.
	Line     int // Line the record started on.
}

// Has returns true if the record holds a (non split) field with the given tag.
func (r *Record) Has(tag byte) bool {
	return slices.IndexFunc(r.Fields, func(f Field) bool { return f.Tag == tag }) != -1
}

// Lines renders the record, including the closing caret. Splits are written among the plain fields in the order
// they were read.
func (r *Record) Lines() []string {
	lines := make([]string, 0, len(r.Fields)+len(r.Splits)*3+1)
	next := 0
	for i := 0; i <= len(r.Fields); i++ {
		for ; next < len(r.Splits) && (r.Splits[next].At <= i || i == len(r.Fields)); next++ {
			for _, f := range r.Splits[next].Fields {
				lines = append(lines, f.String())
			}
		}
		if i < len(r.Fields) {
			lines = append(lines, r.Fields[i].String())
		}
	}
	return append(lines, "^")
}

func (r *Record) String() string {
	return strings.Join(r.Lines(), "\n")
}
