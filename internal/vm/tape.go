package vm

import "errors"

// DefaultTapeSize is the initial number of cells. The tape doubles from
// here as the data pointer moves right.
const DefaultTapeSize = 1

var (
	// ErrTapeLimit is returned when growth would pass the configured maximum.
	ErrTapeLimit = errors.New("tape limit exceeded")
	// ErrNegativeIndex is returned for cell indexes below zero.
	ErrNegativeIndex = errors.New("negative cell index")
)

// Tape is a zero-initialised row of 8-bit cells that grows to the right.
// Growth doubles the length, appends zero cells and never shrinks.
type Tape struct {
	cells []byte
	max   int // 0 means unbounded
}

// NewTape creates a tape of size cells. max bounds growth; zero means
// unbounded.
func NewTape(size, max int) *Tape {
	if size < 1 {
		size = 1
	}
	if max > 0 && size > max {
		size = max
	}
	return &Tape{cells: make([]byte, size), max: max}
}

// Len returns the current number of cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Grow doubles the tape until index i is addressable.
func (t *Tape) Grow(i int) error {
	if i < 0 {
		return ErrNegativeIndex
	}
	if i < len(t.cells) {
		return nil
	}
	if t.max > 0 && i >= t.max {
		return ErrTapeLimit
	}
	n := len(t.cells)
	for n <= i {
		n *= 2
	}
	if t.max > 0 && n > t.max {
		n = t.max
	}
	t.cells = append(t.cells, make([]byte, n-len(t.cells))...)
	return nil
}

// Get returns cell i. Cells that were never reached read as zero;
// Get does not grow the tape.
func (t *Tape) Get(i int) byte {
	if i < 0 || i >= len(t.cells) {
		return 0
	}
	return t.cells[i]
}

// Set stores b in cell i, growing the tape if needed.
func (t *Tape) Set(i int, b byte) error {
	if err := t.Grow(i); err != nil {
		return err
	}
	t.cells[i] = b
	return nil
}

// Bytes returns a copy of all cells.
func (t *Tape) Bytes() []byte {
	out := make([]byte, len(t.cells))
	copy(out, t.cells)
	return out
}
