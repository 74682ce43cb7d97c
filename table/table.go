package table

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies how a column's values are typed on disk.
type Kind int

const (
	// Float columns hold 64-bit floating point values ("float64").
	Float Kind = iota
	// Int columns hold 64-bit signed integers ("int64").
	Int
)

// String returns the on-disk dtype name of the kind.
func (k Kind) String() string {
	if k == Int {
		return "int64"
	}
	return "float64"
}

// Column describes one named, typed table column.
type Column struct {
	Name string
	Kind Kind
}

// Table is an in-memory record table with column-major storage. All cells
// are kept as float64; the column Kind controls parsing and formatting.
// Integer columns therefore hold values exactly up to 2^53.
type Table struct {
	Columns  []Column
	Data     [][]float64 // Data[i] holds column i; all columns share one length
	Comments []string    // "##" lines in file order, marker stripped
	BadRows  int         // data lines Read skipped because they failed to parse
}

var (
	ErrNoColumns     = errors.New("table: schema must contain at least one column")
	ErrColumnName    = errors.New("table: column names must be non-empty without whitespace")
	ErrDuplicateName = errors.New("table: column names must be unique")
	ErrValueCount    = errors.New("table: value count must match column count")
	ErrNoColumn      = errors.New("table: column not found")
	ErrNoHeader      = errors.New("table: data rows precede the column header")
	ErrLateHeader    = errors.New("table: column header after data rows")
	ErrHeaderSyntax  = errors.New("table: malformed column header line")
	ErrColumnKind    = errors.New("table: unsupported column type")
	ErrRagged        = errors.New("table: columns must share one length")
)

// New returns an empty table with the given schema.
func New(cols ...Column) *Table {
	return &Table{
		Columns: cols,
		Data:    make([][]float64, len(cols)),
	}
}

// NumCols returns the number of columns in the schema.
func (t *Table) NumCols() int { return len(t.Columns) }

// NumRows returns the number of complete rows stored.
func (t *Table) NumRows() int {
	if len(t.Data) == 0 {
		return 0
	}
	return len(t.Data[0])
}

// Validate checks the schema and the shape of the stored data.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == "" || strings.ContainsAny(c.Name, " \t") {
			return fmt.Errorf("%w: %q", ErrColumnName, c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	if len(t.Data) == 0 {
		return nil
	}
	if len(t.Data) != len(t.Columns) {
		return ErrRagged
	}
	for _, col := range t.Data[1:] {
		if len(col) != len(t.Data[0]) {
			return ErrRagged
		}
	}
	return nil
}

// AppendRow appends one row. The number of values must match the schema.
func (t *Table) AppendRow(vals ...float64) error {
	if len(vals) != len(t.Columns) {
		return fmt.Errorf("%w: got %d values for %d columns",
			ErrValueCount, len(vals), len(t.Columns))
	}
	if len(t.Data) != len(t.Columns) {
		t.Data = make([][]float64, len(t.Columns))
	}
	for i, v := range vals {
		t.Data[i] = append(t.Data[i], v)
	}
	return nil
}

// Index returns the position of the named column, or -1 if absent.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the backing slice of the named column. The slice is shared
// with the table, not copied.
func (t *Table) Column(name string) ([]float64, error) {
	i := t.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	if i >= len(t.Data) {
		return nil, nil
	}
	return t.Data[i], nil
}

// Names returns the column names in schema order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func kindFromDType(s string) (Kind, error) {
	switch s {
	case "float", "float_", "float16", "float32", "float64":
		return Float, nil
	case "int", "int_", "intc", "intp", "int8", "int16", "int32", "int64",
		"uint8", "uint16", "uint32", "uint64":
		return Int, nil
	}
	return Float, fmt.Errorf("%w: %q", ErrColumnKind, s)
}
