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

package tools

import (
	"fmt"
	"io"
	"os"
)

// Where fatal errors go, and how the program dies. Tests swap these out.
var (
	Stderr io.Writer = os.Stderr
	Exit             = os.Exit
)

// HandleErr takes an error and if the error is not nil, it is written to standard error and the program exits with
// code 1.
func HandleErr(err error) {
	if err != nil {
		fmt.Fprintln(Stderr, err)
		Exit(1)
	}
}
