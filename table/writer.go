package table

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const colSep = "  "

// Write serializes the table: comments first, then one "#<" header line per
// column, then the data rows right-aligned on per-column widths.
func (t *Table) Write(w io.Writer) error {
	if err := t.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, c := range t.Comments {
		fmt.Fprintf(bw, "##  %s\n", c)
	}
	for _, c := range t.Columns {
		bw.WriteString(headerLine(c))
	}

	rows := t.NumRows()
	cells := make([][]string, len(t.Columns))
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = make([]string, rows)
		for j := 0; j < rows; j++ {
			s := formatCell(t.Data[i][j], col.Kind)
			cells[i][j] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}
	for j := 0; j < rows; j++ {
		for i := range t.Columns {
			if i > 0 {
				bw.WriteString(colSep)
			}
			fmt.Fprintf(bw, "%*s", widths[i], cells[i][j])
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("table: write: %w", err)
	}
	return nil
}

// WriteFile creates the named file and writes the table to it.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("table: create: %w", err)
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("table: close: %w", err)
	}
	return nil
}

// Appender writes a table incrementally: comments and header once at
// construction, then one row per Append call. Rows reach the underlying
// writer immediately, so an interrupted producer leaves a readable prefix.
type Appender struct {
	w    io.Writer
	cols []Column
}

// NewAppender writes the comments and the column header to w and returns an
// appender bound to the given schema.
func NewAppender(w io.Writer, cols []Column, comments ...string) (*Appender, error) {
	probe := Table{Columns: cols}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, c := range comments {
		sb.WriteString("##  ")
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
	for _, c := range cols {
		sb.WriteString(headerLine(c))
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return nil, fmt.Errorf("table: header: %w", err)
	}
	return &Appender{w: w, cols: append([]Column(nil), cols...)}, nil
}

// Append writes one row. The number of values must match the schema.
func (a *Appender) Append(vals ...float64) error {
	if len(vals) != len(a.cols) {
		return fmt.Errorf("%w: got %d values for %d columns",
			ErrValueCount, len(vals), len(a.cols))
	}
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(colSep)
		}
		sb.WriteString(formatCell(v, a.cols[i].Kind))
	}
	sb.WriteByte('\n')
	if _, err := io.WriteString(a.w, sb.String()); err != nil {
		return fmt.Errorf("table: append: %w", err)
	}
	return nil
}

// headerLine renders "#<  name", pads the name field to 25 characters, and
// appends the dtype.
func headerLine(c Column) string {
	pad := 25 - len(c.Name)
	if pad < 1 {
		pad = 1
	}
	return "#<  " + c.Name + strings.Repeat(" ", pad) + c.Kind.String() + "\n"
}

func formatCell(v float64, k Kind) string {
	if k == Int {
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
