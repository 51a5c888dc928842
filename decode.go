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

package moneysan

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// Decode turns raw file content into text. UTF-8 is used as is (minus any byte order mark), anything else is assumed
// to be Windows-1252, which is what most banks that don't send UTF-8 actually send. legacy is true in the latter case.
func Decode(data []byte) (text string, legacy bool) {
	data = bytes.TrimPrefix(data, bom)
	if utf8.Valid(data) {
		return string(data), false
	}

	// Every byte is valid in 1252, so this can't fail.
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(bytes.ToValidUTF8(data, nil)), true
	}
	return string(out), true
}
