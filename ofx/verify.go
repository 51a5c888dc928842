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
	"bytes"
	"fmt"

	"github.com/aclindsa/ofxgo"
)

// Verify reads sanitized output back with a real OFX client library and returns the number of statements it found.
// Every statement transaction must have a FITID.
func Verify(data []byte) (int, error) {
	resp, err := ofxgo.ParseResponse(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, msg := range append(resp.Bank, resp.CreditCard...) {
		var trns []ofxgo.Transaction
		if b, ok := msg.(*ofxgo.StatementResponse); ok {
			if b.BankTranList != nil {
				trns = b.BankTranList.Transactions
			}
		} else if cc, ok := msg.(*ofxgo.CCStatementResponse); ok {
			if cc.BankTranList != nil {
				trns = cc.BankTranList.Transactions
			}
		} else {
			return count, fmt.Errorf("Unexpected response type %T.", msg)
		}

		for i, trn := range trns {
			if trn.FiTID == "" {
				return count, fmt.Errorf("Transaction %v of statement %v has no FITID.", i+1, count+1)
			}
		}
		count++
	}
	return count + len(resp.InvStmt), nil
}
