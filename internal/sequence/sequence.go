// Package sequence derives the next human-readable business identifier
// from the most recently allocated one. It is a pure string function:
// callers read the last record themselves and rely on the store's unique
// index to reject the loser when two requests race on the same id.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Format describes one identifier scheme: a fixed prefix followed by a
// zero-padded decimal suffix of Width digits.
type Format struct {
	Prefix string
	Width  int
}

// Identifier schemes used across the system.
var (
	MedicineID  = Format{Prefix: "MED", Width: 3}
	BatchNumber = Format{Prefix: "B", Width: 6}
	SupplierID  = Format{Prefix: "SUP", Width: 3}
	OrderID     = Format{Prefix: "", Width: 7}
	InvoiceID   = Format{Prefix: "IN", Width: 5}
	CashierID   = Format{Prefix: "C", Width: 3}
)

// Render formats n according to the scheme. Values wider than Width keep
// all their digits rather than truncating.
func (f Format) Render(n int) string {
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, n)
}

// Next returns the identifier following lastID. An empty lastID (no prior
// record) yields the first identifier. A suffix that does not parse as a
// positive integer is treated as zero, so a malformed last id also yields
// the first identifier instead of an error.
func (f Format) Next(lastID string) string {
	return f.Render(f.suffix(lastID) + 1)
}

func (f Format) suffix(id string) int {
	raw := strings.TrimPrefix(id, f.Prefix)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
