package compiler

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kolkov/ubf/internal/token"
)

// DefaultNASMTapeSize is the static tape size of emitted assembly.
const DefaultNASMTapeSize = 30000

// NASMOptions controls assembly emission.
type NASMOptions struct {
	// TapeSize is the number of cells reserved in .bss.
	// Zero means DefaultNASMTapeSize.
	TapeSize int
}

// EmitNASM writes x86-64 Linux NASM source for p to w.
//
// The generated program keeps the data pointer in rsi and talks to the
// kernel directly through read(0), write(1) and exit(60). A read at end of
// input leaves the cell unchanged. The tape is fixed-size: unlike the
// interpreter it does not grow and does not check the pointer.
//
// Assemble and link with:
//
//	nasm -f elf64 prog.asm && ld prog.o -o prog
func EmitNASM(w io.Writer, p *Program, opts NASMOptions) error {
	if opts.TapeSize <= 0 {
		opts.TapeSize = DefaultNASMTapeSize
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "; %d instructions, %d loops\n", len(p.Code), p.Loops)
	bw.WriteString("section .bss\n")
	fmt.Fprintf(bw, "    tape resb %d\n", opts.TapeSize)
	bw.WriteString("section .text\n")
	bw.WriteString("global _start\n")
	bw.WriteString("_start:\n")
	bw.WriteString("    mov rsi, tape\n")

	// Loops are numbered in order of their opening bracket.
	ids := make(map[int]int, p.Loops)
	next := 0

	for ip, op := range p.Code {
		switch op {
		case token.RIGHT:
			bw.WriteString("    inc rsi\n")
		case token.LEFT:
			bw.WriteString("    dec rsi\n")
		case token.INC:
			bw.WriteString("    inc byte [rsi]\n")
		case token.DEC:
			bw.WriteString("    dec byte [rsi]\n")
		case token.OUTPUT:
			emitSyscall(bw, 1, 1)
		case token.INPUT:
			emitSyscall(bw, 0, 0)
		case token.OPEN:
			id := next
			next++
			ids[ip] = id
			bw.WriteString("    cmp byte [rsi], 0\n")
			fmt.Fprintf(bw, "    je loop_%d_end\n", id)
			fmt.Fprintf(bw, "loop_%d_body:\n", id)
		case token.CLOSE:
			id, ok := ids[p.Match[ip]]
			if !ok {
				return &BracketError{Index: ip, Op: token.CLOSE, Pos: p.Position(ip)}
			}
			bw.WriteString("    cmp byte [rsi], 0\n")
			fmt.Fprintf(bw, "    jne loop_%d_body\n", id)
			fmt.Fprintf(bw, "loop_%d_end:\n", id)
		default:
			return fmt.Errorf("invalid instruction %d at index %d", op, ip)
		}
	}

	bw.WriteString("    mov rax, 60\n")
	bw.WriteString("    xor rdi, rdi\n")
	bw.WriteString("    syscall\n")

	return bw.Flush()
}

// emitSyscall emits a one-byte read or write on the cell at rsi.
func emitSyscall(bw *bufio.Writer, nr, fd int) {
	fmt.Fprintf(bw, "    mov rax, %d\n", nr)
	fmt.Fprintf(bw, "    mov rdi, %d\n", fd)
	bw.WriteString("    mov rdx, 1\n")
	bw.WriteString("    syscall\n")
}
