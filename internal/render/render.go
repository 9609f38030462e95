// Package render prints command results: aligned column listings and the
// field/value tables of show-like commands.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/pkg/errors"
)

// A Table streams tab-aligned rows under a header. Rows are buffered by the
// underlying writer and aligned on Flush.
type Table struct {
	tw *tabwriter.Writer
}

// NewTable returns a Table writing to w under the given column names.
func NewTable(w io.Writer, columns ...string) *Table {
	t := &Table{tw: tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)}
	t.Row(columns...)
	return t
}

// Row appends one row.
func (t *Table) Row(values ...string) {
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(t.tw, "\t")
		}
		fmt.Fprint(t.tw, v)
	}
	fmt.Fprintln(t.tw)
}

// Flush aligns and writes the buffered rows.
func (t *Table) Flush() error {
	return errors.Wrap(t.tw.Flush(), "could not render table")
}

// Pairs writes the field/value table of show-like commands.
func Pairs(w io.Writer, pairs []attrs.Pair) error {
	table := NewTable(w, "Field", "Value")
	for _, pair := range pairs {
		table.Row(pair.Key, pair.Value)
	}
	return table.Flush()
}
