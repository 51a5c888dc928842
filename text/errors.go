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

import "fmt"

// ErrBadDate is returned by the date normalizer when a token does not match any of the recognized date formats.
type ErrBadDate struct {
	Token  string
	Reason string
}

func (err *ErrBadDate) Error() string {
	return fmt.Sprintf("Malformed date %q: %v", err.Token, err.Reason)
}

// ErrBadAmount is returned by the amount normalizer when a token is not a usable decimal amount.
type ErrBadAmount struct {
	Token  string
	Reason string
}

func (err *ErrBadAmount) Error() string {
	return fmt.Sprintf("Malformed amount %q: %v", err.Token, err.Reason)
}
