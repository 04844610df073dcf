package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the inferred type of a column, decided by its predominant cell type.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
	KindEmpty   Kind = "empty"
)

// Cell is one value in a column. A zero Cell is a missing value.
type Cell struct {
	Raw     string
	Num     float64
	Numeric bool
}

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Num: v, Numeric: true} }

// Text returns a textual cell. An empty string is a missing value.
func Text(s string) Cell { return Cell{Raw: s} }

// Missing is the missing-value marker.
var Missing = Cell{}

// Column is a named, homogeneous sequence of cells.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// NumericColumn builds a numeric column from raw values.
func NumericColumn(name string, vals ...float64) Column {
	cells := make([]Cell, len(vals))
	for i, v := range vals {
		cells[i] = Number(v)
	}
	return Column{Name: name, Kind: KindNumeric, Cells: cells}
}

// TextColumn builds a text column from raw values.
func TextColumn(name string, vals ...string) Column {
	cells := make([]Cell, len(vals))
	for i, v := range vals {
		cells[i] = Text(v)
	}
	return Column{Name: name, Kind: KindText, Cells: cells}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.Cells) }

// Float returns the numeric value at row i and whether one is present.
func (c *Column) Float(i int) (float64, bool) {
	if i < 0 || i >= len(c.Cells) || !c.Cells[i].Numeric {
		return 0, false
	}
	return c.Cells[i].Num, true
}

// Floats returns the present numeric values in row order, skipping missing cells.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Numeric {
			out = append(out, cell.Num)
		}
	}
	return out
}

// Dataset is an ordered collection of named columns with equal row counts.
// It is read-only to the analysis code; nothing here mutates it.
type Dataset struct {
	Name    string
	Columns []Column
}

// New builds a dataset from columns, preserving column order.
func New(name string, cols ...Column) *Dataset {
	return &Dataset{Name: name, Columns: cols}
}

// Rows returns the row count of the dataset (the length of the longest column).
func (d *Dataset) Rows() int {
	n := 0
	for i := range d.Columns {
		if l := d.Columns[i].Len(); l > n {
			n = l
		}
	}
	return n
}

// Column looks up a column by name (case-insensitive). The second return
// reports whether it exists.
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.Columns {
		if strings.EqualFold(d.Columns[i].Name, name) {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// NumericColumns returns the numeric columns in dataset order.
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for i := range d.Columns {
		if d.Columns[i].Kind == KindNumeric {
			out = append(out, &d.Columns[i])
		}
	}
	return out
}

// HumanizeName converts a raw column name into a display label:
// underscores become spaces and words are title-cased, so "unit_price"
// renders as "Unit Price".
func HumanizeName(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	return cases.Title(language.English).String(s)
}
