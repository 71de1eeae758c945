// Package token defines the instruction set of the tape language.
package token

// Op is one instruction of the eight-symbol alphabet.
// The zero value is ILLEGAL so that an uninitialized Op never
// dispatches as a real instruction.
type Op uint8

const (
	ILLEGAL Op = iota // <illegal>

	opStart
	RIGHT  // >
	LEFT   // <
	INC    // +
	DEC    // -
	OUTPUT // .
	INPUT  // ,
	OPEN   // [
	CLOSE  // ]
	opEnd
)

// Alphabet lists the instruction characters in Op order.
const Alphabet = "><+-.,[]"

var ops = [256]Op{
	'>': RIGHT,
	'<': LEFT,
	'+': INC,
	'-': DEC,
	'.': OUTPUT,
	',': INPUT,
	'[': OPEN,
	']': CLOSE,
}

// Lookup returns the instruction for character c, or ILLEGAL if c is
// not part of the alphabet.
func Lookup(c byte) Op {
	return ops[c]
}

// IsInstruction reports whether c is one of the eight instruction characters.
func IsInstruction(c byte) bool {
	return ops[c] != ILLEGAL
}

// Valid reports whether op is one of the eight instructions.
func (op Op) Valid() bool {
	return op > opStart && op < opEnd
}

// Byte returns the source character for op. ILLEGAL maps to '?'.
func (op Op) Byte() byte {
	if !op.Valid() {
		return '?'
	}
	return Alphabet[op-opStart-1]
}

// String returns the source character for op.
func (op Op) String() string {
	if !op.Valid() {
		return "<illegal>"
	}
	return string(op.Byte())
}

// IsBracket returns true for OPEN and CLOSE.
func (op Op) IsBracket() bool {
	return op == OPEN || op == CLOSE
}

// TouchesCell returns true if op reads or writes the current cell.
// Only pointer moves leave the tape alone.
func (op Op) TouchesCell() bool {
	return op.Valid() && op != RIGHT && op != LEFT
}
