package token

import "fmt"

// Position locates an instruction in the program text.
// Line and Column count bytes, so a multi-byte comment character
// advances the column by its encoded length.
type Position struct {
	Filename string // Empty for programs given inline
	Line     int    // 1-based
	Column   int    // 1-based
	Offset   int    // 0-based byte offset into the source
}

// NoPos is the zero Position, used for instructions without source text.
var NoPos = Position{}

// IsValid reports whether p refers to source text.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String formats p as "file:line:col", or "line:col" without a file name.
// An invalid position prints as "-".
func (p Position) String() string {
	switch {
	case !p.IsValid():
		return "-"
	case p.Filename != "":
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes earlier in the same source than other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}
