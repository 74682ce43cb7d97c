// Package table reads and writes plain-text record tables in the column
// catalog format used throughout this module.
//
// A table file carries its own schema: "##" lines are free-form comments,
// "#<" lines declare one column each (name, then dtype), and every other
// non-blank line is one whitespace-separated data row:
//
//	##  aperture photometry, run 7d44…
//	#<  id                       int64
//	#<  alpha                    float64
//	#<  delta                    float64
//	1   150.117 2.205
//	2   150.119 2.211
//
// All cells are stored as float64; the declared dtype selects integer or
// floating-point parsing and formatting. Rows that fail to parse are
// skipped and counted in [Table.BadRows] rather than aborting the read.
//
// # Usage
//
// Build a table in memory and write it:
//
//	t := table.New(
//	    table.Column{Name: "id", Kind: table.Int},
//	    table.Column{Name: "flux", Kind: table.Float},
//	)
//	t.AppendRow(1, 1052.7)
//	err := t.WriteFile("phot.dat")
//
// Stream rows as they are produced with [NewAppender], which writes the
// header once and each row immediately.
package table
