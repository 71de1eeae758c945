package compiler

import (
	"fmt"
	"strings"

	"github.com/kolkov/ubf/internal/token"
)

// Program is a filtered instruction sequence with its loop boundary table.
// A Program is immutable once built and may be shared between runs.
type Program struct {
	// Code is the filtered instruction sequence.
	Code []token.Op

	// Pos holds the source position of each instruction.
	// It may be nil for programs built from raw instructions.
	Pos []token.Position

	// Match maps every bracket to the index of its partner.
	// Entries for non-bracket instructions are -1.
	Match []int

	// Loops is the number of [ ] pairs.
	Loops int
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Code)
}

// Position returns the source position of instruction ip,
// or token.NoPos if it is unknown.
func (p *Program) Position(ip int) token.Position {
	if ip < 0 || ip >= len(p.Pos) {
		return token.NoPos
	}
	return p.Pos[ip]
}

// String returns the filtered program text.
func (p *Program) String() string {
	var sb strings.Builder
	sb.Grow(len(p.Code))
	for _, op := range p.Code {
		sb.WriteByte(op.Byte())
	}
	return sb.String()
}

// Disassemble returns a human-readable listing of the program.
func (p *Program) Disassemble() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== %d instructions, %d loops ===\n", len(p.Code), p.Loops)

	depth := 0
	for ip, op := range p.Code {
		if op == token.CLOSE {
			depth--
		}
		fmt.Fprintf(&sb, "%04d: %s%s", ip, strings.Repeat("  ", depth), op)
		if op.IsBracket() {
			fmt.Fprintf(&sb, " -> %04d", p.Match[ip])
		}
		if pos := p.Position(ip); pos.IsValid() {
			fmt.Fprintf(&sb, "\t; %s", pos)
		}
		sb.WriteByte('\n')
		if op == token.OPEN {
			depth++
		}
	}

	return sb.String()
}
