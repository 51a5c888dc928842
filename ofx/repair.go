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
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/milochristiansen/moneysan/report"
	"github.com/milochristiansen/moneysan/text"
)

// Synthesized ids are name based UUIDs in this namespace, so the same transactions always get the same ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("moneysan"))

const (
	epoch       = "19700101"
	defaultBank = "000000000"
)

var statementTags = map[string]bool{"STMTRS": true, "CCSTMTRS": true, "INVSTMTRS": true}
var responseTags = map[string]bool{"STMTTRNRS": true, "CCSTMTTRNRS": true, "INVSTMTTRNRS": true}

// The response wrapper each statement belongs in.
var wrapperTags = map[string]string{"STMTRS": "STMTTRNRS", "CCSTMTRS": "CCSTMTTRNRS", "INVSTMTRS": "INVSTMTTRNRS"}

type repairer struct {
	lim  Limits
	sink report.Sink

	fallback string // Document level statement date.
	trn      int    // Position of the current STMTTRN.
	kept     int    // Transactions that survived.

	fitids map[string]int // Occurrences of each date/amount/memo key, for FITID synthesis.
}

// Repair normalizes every leaf in the tree and fills in the fields the importer insists on. Transactions with an
// unusable amount or posting date are removed. A document without any statements, or one where every transaction
// had to be removed, is an error (report.ErrNoData).
func Repair(root *Node, lim Limits, sink report.Sink) error {
	if sink == nil {
		sink = report.Discard
	}
	r := &repairer{lim: lim, sink: sink, fitids: map[string]int{}}

	stmts := []*Node{}
	root.Walk(func(n *Node) {
		if statementTags[n.Tag] {
			stmts = append(stmts, n)
		}
	})
	if len(stmts) == 0 {
		return report.ErrNoData
	}

	r.fallback = statementDate(root, "")
	r.fix(root, r.fallback)
	if r.trn > 0 && r.kept == 0 {
		return report.ErrNoData
	}

	r.wrap(root)
	root.Walk(func(n *Node) {
		if responseTags[n.Tag] {
			r.response(n)
		}
	})
	for _, stmt := range stmts {
		r.statement(stmt)
	}
	r.signon(root)
	return nil
}

func (r *repairer) event(kind report.Kind, n *Node, record int, reason string) {
	r.sink.Report(report.Event{
		Kind:   kind,
		Format: "ofx",
		Field:  n.Tag,
		Record: record,
		Line:   n.Line,
		Reason: reason,
	})
}

// fix normalizes the leaves under n. date is the statement date used to replace broken dates.
func (r *repairer) fix(n *Node, date string) {
	if statementTags[n.Tag] {
		date = statementDate(n, r.fallback)
	}

	kept := n.Children[:0]
	for _, c := range n.Children {
		switch {
		case c.Tag == "STMTTRN":
			r.trn++
			if !r.transaction(c, date) {
				continue
			}
			r.kept++
		case c.container:
			r.fix(c, date)
		default:
			if !r.leaf(c, 0, date) {
				continue
			}
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

// leaf normalizes a single value. It returns false if the leaf had to be removed.
func (r *repairer) leaf(n *Node, record int, date string) bool {
	if strings.TrimSpace(n.Value) == "" {
		n.Value = ""
		return true
	}

	clean, notes, err := fixerFor(n.Tag)(n.Value, r.lim)
	if err != nil {
		switch n.Tag {
		case "BALAMT":
			r.event(report.FieldWarning, n, record, err.Error()+", recalculated")
			return false
		case "TRNAMT":
			r.event(report.FieldWarning, n, record, err.Error()+", dropped")
			return false
		default:
			r.event(report.FieldWarning, n, record, err.Error()+", replaced with statement date")
			n.Value = date
			return true
		}
	}
	for _, note := range notes {
		r.event(report.FieldWarning, n, record, note)
	}
	n.Value = clean
	return true
}

// transaction repairs a STMTTRN. It returns false if the transaction can't be saved.
func (r *repairer) transaction(n *Node, date string) bool {
	for _, tag := range []string{"DTPOSTED", "TRNAMT"} {
		c := n.Child(tag)
		if c == nil || strings.TrimSpace(c.Value) == "" {
			r.sink.Report(report.Event{
				Kind:   report.RecordError,
				Format: "ofx",
				Field:  tag,
				Record: r.trn,
				Line:   n.Line,
				Reason: fmt.Sprintf("transaction has no %v, dropped", tag),
			})
			return false
		}

		_, _, err := fixerFor(tag)(c.Value, r.lim)
		if err != nil {
			r.event(report.RecordError, c, r.trn, err.Error()+", transaction dropped")
			return false
		}
	}

	for _, c := range n.Children {
		if c.container {
			r.fix(c, date)
			continue
		}
		r.leaf(c, r.trn, date)
	}

	if n.Text("TRNTYPE") == "" {
		typ := "CREDIT"
		if strings.HasPrefix(n.Text("TRNAMT"), "-") {
			typ = "DEBIT"
		}
		n.Set("TRNTYPE", typ)
		r.event(report.FieldWarning, n, r.trn, "no TRNTYPE, set to "+typ)
	}

	if n.Text("FITID") == "" {
		key := transactionKey(n)
		r.fitids[key]++
		id := uuid.NewSHA1(namespace, []byte(key+"|"+strconv.Itoa(r.fitids[key])))
		n.Set("FITID", strings.ReplaceAll(id.String(), "-", ""), "TRNTYPE", "DTPOSTED", "DTUSER", "DTAVAIL", "TRNAMT")
		r.event(report.FieldWarning, n, r.trn, "no FITID, synthesized")
	}
	return true
}

// wrap puts every statement that isn't already inside a response wrapper into a new one, so it gets a TRNUID.
func (r *repairer) wrap(n *Node) {
	for i, c := range n.Children {
		if tag, ok := wrapperTags[c.Tag]; ok && !responseTags[n.Tag] {
			n.Children[i] = Aggregate(tag, c)
			r.event(report.FieldWarning, c, 0, "no "+tag+", synthesized")
			continue
		}
		if c.container {
			r.wrap(c)
		}
	}
}

// response makes sure a statement response wrapper has a TRNUID and a STATUS.
func (r *repairer) response(n *Node) {
	if n.Text("TRNUID") == "" {
		keys := []string{}
		for _, trn := range n.FindAll("STMTTRN") {
			keys = append(keys, transactionKey(trn))
		}
		if len(keys) == 0 {
			keys = append(keys, accountID(n), statementDate(n, r.fallback))
		}

		id := uuid.NewSHA1(namespace, []byte(strings.Join(keys, "\n")))
		n.Set("TRNUID", id.String())
		r.event(report.FieldWarning, n, 0, "no TRNUID, synthesized")
	}

	if n.Child("STATUS") == nil {
		n.Insert(status(), "TRNUID")
	}
}

// statement fills in the currency and balances of a single statement.
func (r *repairer) statement(n *Node) {
	if n.Text("CURDEF") == "" {
		n.Set("CURDEF", "USD", "DTASOF")
		r.event(report.FieldWarning, n, 0, "no CURDEF, set to USD")
	}

	// Investment statements carry their balances in INVBAL, which the importer doesn't need.
	if n.Tag == "INVSTMTRS" {
		return
	}

	date := statementDate(n, r.fallback)
	sum := decimal.Zero
	for _, trn := range n.FindAll("STMTTRN") {
		amt, err := text.ParseAmount(trn.Text("TRNAMT"))
		if err == nil {
			sum = sum.Add(amt)
		}
	}

	after := []string{"CURDEF", "BANKACCTFROM", "CCACCTFROM", "BANKTRANLIST"}
	for _, tag := range []string{"LEDGERBAL", "AVAILBAL"} {
		after = append(after, tag)

		bal := n.Child(tag)
		if bal == nil {
			bal = Aggregate(tag)
			n.Insert(bal, after...)
			r.event(report.FieldWarning, bal, 0, "no "+tag+", synthesized")
		}
		if bal.Text("BALAMT") == "" {
			bal.Set("BALAMT", text.FormatAmount(sum))
			r.event(report.FieldWarning, bal, 0, "no BALAMT, set to the sum of the transactions")
		}
		if bal.Text("DTASOF") == "" {
			bal.Set("DTASOF", date, "BALAMT")
		}
	}
}

// signon makes sure there is a signon response with institution info.
func (r *repairer) signon(root *Node) {
	sonrs := root.Find("SONRS")
	if sonrs == nil {
		msgs := root.Child("SIGNONMSGSRSV1")
		if msgs == nil {
			msgs = Aggregate("SIGNONMSGSRSV1")
			root.Insert(msgs)
		}
		sonrs = Aggregate("SONRS")
		msgs.Append(sonrs)
		r.event(report.FieldWarning, sonrs, 0, "no signon response, synthesized")
	}

	if sonrs.Child("STATUS") == nil {
		sonrs.Insert(status())
	}
	if sonrs.Text("DTSERVER") == "" {
		sonrs.Set("DTSERVER", r.fallback, "STATUS")
	}
	if sonrs.Text("LANGUAGE") == "" {
		sonrs.Set("LANGUAGE", "ENG", "STATUS", "DTSERVER")
	}

	bank := defaultBank
	if from := root.Find("BANKACCTFROM"); from != nil && from.Text("BANKID") != "" {
		bank = from.Text("BANKID")
	}

	fi := sonrs.Child("FI")
	if fi == nil {
		fi = Aggregate("FI")
		sonrs.Insert(fi, "STATUS", "DTSERVER", "USERKEY", "TSKEYEXPIRE", "LANGUAGE", "DTPROFUP", "DTACCTUP")
	}
	if fi.Text("ORG") == "" {
		org, _ := text.Truncate(bank, r.lim.OrgLength)
		fi.Set("ORG", org)
		r.event(report.FieldWarning, fi, 0, "no ORG, set to "+org)
	}
	if fi.Text("FID") == "" {
		fid, _ := text.Truncate(bank, r.lim.FIDLength)
		fi.Set("FID", fid, "ORG")
		r.event(report.FieldWarning, fi, 0, "no FID, set to "+fid)
	}
	if sonrs.Text("INTU.BID") == "" {
		sonrs.Set("INTU.BID", fi.Text("FID"), "FI")
	}
}

func status() *Node {
	return Aggregate("STATUS", Leaf("CODE", "0"), Leaf("SEVERITY", "INFO"))
}

// transactionKey is the content a transaction's synthesized ids are derived from.
func transactionKey(trn *Node) string {
	return trn.Text("DTPOSTED") + "|" + trn.Text("TRNAMT") + "|" + trn.Text("MEMO")
}

func accountID(n *Node) string {
	if id := n.Find("ACCTID"); id != nil {
		return id.Value
	}
	return ""
}

// statementDate picks the date a statement is "as of": the end of its transaction list, else the newest posting
// date, else fallback, else the epoch. The result is always YYYYMMDD.
func statementDate(n *Node, fallback string) string {
	if end := n.Find("DTEND"); end != nil {
		if d, ok := day(end.Value); ok {
			return d
		}
	}

	latest := ""
	for _, p := range n.FindAll("DTPOSTED") {
		if d, ok := day(p.Value); ok && d > latest {
			latest = d
		}
	}
	if latest != "" {
		return latest
	}

	if fallback != "" {
		return fallback
	}
	if srv := n.Find("DTSERVER"); srv != nil {
		if d, ok := day(srv.Value); ok {
			return d
		}
	}
	return epoch
}

// day reduces any readable date to YYYYMMDD.
func day(value string) (string, bool) {
	clean, _, err := fixDate(value, Limits{})
	if err != nil {
		return "", false
	}
	return clean[:8], true
}
