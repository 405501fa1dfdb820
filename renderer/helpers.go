package renderer

import (
	"bytes"
	"io"

	"github.com/etnz/forecast"
	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// money formats d in the report currency.
func money(r *forecast.Report, d decimal.Decimal) string { return r.Money(d).String() }

// signed formats d in the report currency with an explicit sign, "-" for zero.
func signed(r *forecast.Report, d decimal.Decimal) string { return r.Money(d).SignedString() }
