// Package lexer filters program text down to the instruction alphabet.
//
// Everything outside the eight instruction characters is commentary and
// is dropped without error. The lexer still remembers where each surviving
// instruction came from so that faults can be reported against the
// original source.
package lexer

import (
	"strings"

	"github.com/coregx/coregex"

	"github.com/kolkov/ubf/internal/token"
)

// instructionPattern matches exactly one instruction character.
const instructionPattern = `[\[\]<>+.,\-]`

var instructionRe = mustCompile(instructionPattern)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("lexer: bad instruction pattern: " + err.Error())
	}
	return re
}

// Lexer yields the instructions of a program one at a time.
type Lexer struct {
	src     string
	matches [][]int // byte spans of instruction characters in src
	next    int     // index into matches
	offset  int     // byte offset up to which line/column are known
	pos     token.Position
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	return NewFromString(string(src))
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return &Lexer{
		src:     src,
		matches: instructionRe.FindAllStringIndex(src, -1),
		pos:     token.Position{Line: 1, Column: 1},
	}
}

// Token is a scanned instruction with its source position.
// Op is token.ILLEGAL once the source is exhausted.
type Token struct {
	Op  token.Op
	Pos token.Position
}

// Scan returns the next instruction. At end of input it returns a Token
// whose Op is token.ILLEGAL and whose Pos is the end of the source.
func (l *Lexer) Scan() Token {
	if l.next >= len(l.matches) {
		l.advance(len(l.src))
		return Token{Op: token.ILLEGAL, Pos: l.pos}
	}
	start := l.matches[l.next][0]
	l.next++
	l.advance(start)
	return Token{Op: token.Lookup(l.src[start]), Pos: l.pos}
}

// Remaining returns the number of instructions not yet scanned.
func (l *Lexer) Remaining() int {
	return len(l.matches) - l.next
}

// advance moves the tracked position forward to byte offset off.
func (l *Lexer) advance(off int) {
	for l.offset < off {
		if l.src[l.offset] == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
		l.offset++
	}
	l.pos.Offset = off
}

// Scan filters src and returns the instruction sequence together with the
// source position of every instruction. filename may be empty.
func Scan(filename, src string) ([]token.Op, []token.Position) {
	l := NewFromString(src)
	ops := make([]token.Op, 0, l.Remaining())
	pos := make([]token.Position, 0, l.Remaining())
	for {
		tok := l.Scan()
		if tok.Op == token.ILLEGAL {
			break
		}
		tok.Pos.Filename = filename
		ops = append(ops, tok.Op)
		pos = append(pos, tok.Pos)
	}
	return ops, pos
}

// Filter returns the ordered subsequence of src made of instruction
// characters only. It never fails and is idempotent.
func Filter(src string) string {
	matches := instructionRe.FindAllStringIndex(src, -1)
	if len(matches) == len(src) {
		return src
	}
	var sb strings.Builder
	sb.Grow(len(matches))
	for _, m := range matches {
		sb.WriteByte(src[m[0]])
	}
	return sb.String()
}
