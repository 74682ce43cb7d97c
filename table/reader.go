package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a table, taking the schema from its "#<" header lines.
// "##" comment lines are collected into Comments; data lines that do not
// match the schema are skipped and counted in BadRows.
func Read(r io.Reader) (*Table, error) {
	return read(r, nil)
}

// ReadColumns parses a table using the given schema. Any "#<" header lines
// in the input are skipped rather than interpreted, so ReadColumns also
// handles headerless files such as bare two-column spectra.
func ReadColumns(r io.Reader, cols []Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	return read(r, cols)
}

// ReadFile opens and parses the named table file.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// ReadColumnsFile opens and parses the named file with an explicit schema.
func ReadColumnsFile(path string, cols []Column) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open: %w", err)
	}
	defer f.Close()
	return ReadColumns(f, cols)
}

func read(r io.Reader, cols []Column) (*Table, error) {
	explicit := cols != nil
	t := New(cols...)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
			continue

		case strings.HasPrefix(text, "#<"):
			if explicit {
				continue
			}
			name, kind, err := parseHeaderLine(text)
			if err != nil {
				return nil, fmt.Errorf("table: line %d: %w", line, err)
			}
			if t.NumRows() > 0 {
				return nil, fmt.Errorf("table: line %d: %w", line, ErrLateHeader)
			}
			t.Columns = append(t.Columns, Column{Name: name, Kind: kind})
			t.Data = append(t.Data, nil)
			continue

		case strings.HasPrefix(text, "##"):
			t.Comments = append(t.Comments, strings.TrimSpace(text[2:]))
			continue

		case strings.HasPrefix(text, "#"):
			// Tolerated: bare "#" comments from other tools.
			continue
		}

		if len(t.Columns) == 0 {
			return nil, fmt.Errorf("table: line %d: %w", line, ErrNoHeader)
		}
		fields := strings.Fields(text)
		if len(fields) != len(t.Columns) {
			t.BadRows++
			continue
		}
		row := make([]float64, len(fields))
		ok := true
		for i, field := range fields {
			v, err := parseCell(field, t.Columns[i].Kind)
			if err != nil {
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			t.BadRows++
			continue
		}
		for i, v := range row {
			t.Data[i] = append(t.Data[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: read: %w", err)
	}
	return t, nil
}

func parseHeaderLine(text string) (string, Kind, error) {
	fields := strings.Fields(strings.TrimPrefix(text, "#<"))
	if len(fields) != 2 {
		return "", 0, ErrHeaderSyntax
	}
	kind, err := kindFromDType(fields[1])
	if err != nil {
		return "", 0, err
	}
	return fields[0], kind, nil
}

func parseCell(s string, k Kind) (float64, error) {
	if k == Int {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
	return strconv.ParseFloat(s, 64)
}
