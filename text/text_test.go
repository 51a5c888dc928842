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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestASCII(t *testing.T) {
	tests := []struct {
		input string
		want  string
		lossy bool
	}{
		{"Hello World", "Hello World", false},
		{"café", "cafe", false},
		{"naïve résumé", "naive resume", false},
		{"Straße", "Strasse", false},
		{"Ærø", "AEro", false},
		{"ﬁle", "file", false},
		{"test—dash", "test-dash", false},
		{"“quoted”", `"quoted"`, false},
		{"it’s", "it's", false},
		{"line1\r\nline2", "line1 line2", false},
		{"tab\there", "tab here", false},
		{"test^value", "test value", false},
		{"too    many   spaces", "too many spaces", false},
		{"  trimmed  ", "trimmed", false},
		{"", "", false},
		{"中文", "", true},
		{"Price: €50", "Price: 50", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, lossy := ASCII(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.lossy, lossy)

			again, _ := ASCII(got)
			assert.Equal(t, got, again, "ASCII is not idempotent")
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		limit int
		want  string
		cut   bool
	}{
		{"short", 10, "short", false},
		{"exactly10!", 10, "exactly10!", false},
		{"this is too long", 10, "this is to", true},
		{"abc def", 4, "abc", true},
		{"", 10, "", false},
		{"unlimited", 0, "unlimited", false},
	}

	for _, tt := range tests {
		got, cut := Truncate(tt.input, tt.limit)
		assert.Equal(t, tt.want, got, "Truncate(%q, %d)", tt.input, tt.limit)
		assert.Equal(t, tt.cut, cut, "Truncate(%q, %d)", tt.input, tt.limit)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12/25/2023", "12/25/2023"},
		{"12/25/23", "12/25/2023"},
		{"01/15/24", "01/15/2024"},
		{"1/5/2024", "01/05/2024"},
		{"2023-12-25", "12/25/2023"},
		{"2023/12/25", "12/25/2023"},
		{"20231225", "12/25/2023"},
		{"25/12/2023", "12/25/2023"},
		{"25-12-2023", "12/25/2023"},
		{"25.12.2023", "12/25/2023"},
		{"  12/25/2023  ", "12/25/2023"},
		{"1/ 5'24", "01/05/2024"},
		{"12/25'99", "12/25/1999"},
		{"01/01/2000", "01/01/2000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Date(tt.input)
			if assert.NoError(t, err) {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDateErrors(t *testing.T) {
	for _, input := range []string{"13/45/2024", "invalid-date", "", "2024-02-30"} {
		_, err := Date(input)
		var bad *ErrBadDate
		if assert.ErrorAs(t, err, &bad, "Date(%q)", input) {
			assert.Equal(t, input, bad.Token)
			assert.NotEmpty(t, bad.Reason)
		}
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"100.50", "100.50"},
		{"-50.25", "-50.25"},
		{"1,234.56", "1234.56"},
		{"1,000,000.00", "1000000.00"},
		{"-1,234.56", "-1234.56"},
		{"+100.00", "100.00"},
		{"  100.50  ", "100.50"},
		{"100", "100.00"},
		{".5", "0.50"},
		{"$100.00", "100.00"},
		{"(12.50)", "-12.50"},
		{"12.50-", "-12.50"},
		{"-0.00", "0.00"},
		{"1234.567", "1234.57"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Amount(tt.input)
			if assert.NoError(t, err) {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAmountErrors(t *testing.T) {
	for _, input := range []string{"", "-", "abc", "1.2.3", "12a", "1e5"} {
		_, err := Amount(input)
		var bad *ErrBadAmount
		assert.ErrorAs(t, err, &bad, "Amount(%q)", input)
	}
}
