package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMissingKey = errors.New("config: key not found")
	ErrNotScalar  = errors.New("config: key holds more than one value")
	ErrEmptyKey   = errors.New("config: keys must be non-empty")
)

// File holds the contents of a parameter file. Keys keep their
// first-appearance order; values are kept as raw tokens and typed on
// access, so unknown keys round-trip unchanged.
type File struct {
	keys   []string
	values map[string][]string
}

// New returns an empty parameter set.
func New() *File {
	return &File{values: make(map[string][]string)}
}

// Read parses a parameter file. Each non-blank, non-comment line is one
// "key values" entry; values are the remaining tokens joined and split on
// commas. A key that appears on several lines accumulates all its values.
func Read(r io.Reader) (*File, error) {
	f := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		key := fields[0]
		// Tokens are joined without separators before the comma split, so
		// "R  2.0, 4.0" and "R 2.0,4.0" parse identically.
		parts := strings.Split(strings.Join(fields[1:], ""), ",")
		f.append(key, parts...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	return f, nil
}

// ReadFile opens and parses the named parameter file.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open: %w", err)
	}
	defer fh.Close()
	return Read(fh)
}

func (f *File) append(key string, vals ...string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = append(f.values[key], vals...)
}

// Set replaces the values of key, registering the key if it is new.
func (f *File) Set(key string, vals ...string) error {
	if key == "" || strings.ContainsAny(key, " \t") {
		return fmt.Errorf("%w: %q", ErrEmptyKey, key)
	}
	if f.values == nil {
		f.values = make(map[string][]string)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = append([]string(nil), vals...)
	return nil
}

// Has reports whether key is present.
func (f *File) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Keys returns all keys in first-appearance order.
func (f *File) Keys() []string {
	return append([]string(nil), f.keys...)
}

// IsNone reports whether key holds the single placeholder value "none".
func (f *File) IsNone(key string) bool {
	vals := f.values[key]
	return len(vals) == 1 && strings.EqualFold(vals[0], "none")
}

// Strings returns the raw value tokens of key.
func (f *File) Strings(key string) ([]string, error) {
	vals, ok := f.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return append([]string(nil), vals...), nil
}

// String returns the single value of key.
func (f *File) String(key string) (string, error) {
	vals, ok := f.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	if len(vals) != 1 {
		return "", fmt.Errorf("%w: %q has %d values", ErrNotScalar, key, len(vals))
	}
	return vals[0], nil
}

// Float returns the single value of key parsed as a float64.
func (f *File) Float(key string) (float64, error) {
	s, err := f.String(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("config: key %q: %w", key, err)
	}
	return v, nil
}

// Floats returns all values of key parsed as float64s.
func (f *File) Floats(key string) ([]float64, error) {
	vals, ok := f.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	out := make([]float64, len(vals))
	for i, s := range vals {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("config: key %q: %w", key, err)
		}
		out[i] = v
	}
	return out, nil
}

// Int returns the single value of key parsed as an int.
func (f *File) Int(key string) (int, error) {
	s, err := f.String(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: key %q: %w", key, err)
	}
	return v, nil
}

// Bool returns the single value of key parsed as a bool. "true" and
// "false" are matched case-insensitively.
func (f *File) Bool(key string) (bool, error) {
	s, err := f.String(key)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("config: key %q: not a bool: %q", key, s)
}

// Write serializes the parameter set: an optional "##" comment banner, a
// blank line, then one "key  values" line per key with the key padded to
// 28 characters and list values joined by ", ".
func (f *File) Write(w io.Writer, comment string) error {
	bw := bufio.NewWriter(w)
	if comment != "" {
		fmt.Fprintf(bw, "##  %s\n\n", comment)
	} else {
		bw.WriteString("\n\n")
	}
	for _, key := range f.keys {
		fmt.Fprintf(bw, "%-28s  %s\n", key, strings.Join(f.values[key], ", "))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// WriteFile creates the named file and writes the parameter set to it.
func (f *File) WriteFile(path, comment string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create: %w", err)
	}
	if err := f.Write(fh, comment); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("config: close: %w", err)
	}
	return nil
}
