// Package compiler turns program text into a checked instruction sequence.
//
// Compilation here is deliberately shallow: the source is filtered to the
// instruction alphabet and every bracket is paired with its partner in a
// single pass. No instruction is rewritten or merged.
package compiler

import (
	"fmt"

	"github.com/kolkov/ubf/internal/lexer"
	"github.com/kolkov/ubf/internal/token"
)

// BracketError reports an unbalanced bracket.
type BracketError struct {
	Index int            // Instruction index of the offending bracket
	Op    token.Op       // token.OPEN or token.CLOSE
	Pos   token.Position // Source position, if known
}

func (e *BracketError) Error() string {
	msg := fmt.Sprintf("unmatched '%s' at instruction %d", e.Op, e.Index)
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

// Compile filters src and resolves its loops.
// filename is used only for error positions and may be empty.
func Compile(filename, src string) (*Program, error) {
	code, pos := lexer.Scan(filename, src)
	p := &Program{Code: code, Pos: pos}
	if err := p.resolve(); err != nil {
		return nil, err
	}
	return p, nil
}

// FromOps builds a Program from an already filtered instruction sequence.
func FromOps(code []token.Op) (*Program, error) {
	for i, op := range code {
		if !op.Valid() {
			return nil, fmt.Errorf("invalid instruction %d at index %d", op, i)
		}
	}
	p := &Program{Code: code}
	if err := p.resolve(); err != nil {
		return nil, err
	}
	return p, nil
}

// resolve fills the loop boundary table using a stack of open brackets.
func (p *Program) resolve() error {
	p.Match = make([]int, len(p.Code))
	var open []int
	for ip, op := range p.Code {
		p.Match[ip] = -1
		switch op {
		case token.OPEN:
			open = append(open, ip)
		case token.CLOSE:
			if len(open) == 0 {
				return &BracketError{Index: ip, Op: token.CLOSE, Pos: p.Position(ip)}
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			p.Match[start] = ip
			p.Match[ip] = start
			p.Loops++
		}
	}
	if len(open) > 0 {
		ip := open[len(open)-1]
		return &BracketError{Index: ip, Op: token.OPEN, Pos: p.Position(ip)}
	}
	return nil
}
