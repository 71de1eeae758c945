package ubf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/kolkov/ubf/internal/compiler"
	"github.com/kolkov/ubf/internal/vm"
)

// Program represents a compiled program ready for execution.
// It is safe for concurrent use; each call to Run creates an
// independent execution context with a fresh tape.
type Program struct {
	compiled *compiler.Program
	source   string // Original source for debugging
}

// Result is the outcome of Execute.
type Result struct {
	// Output holds what the program wrote, unless Config.Output was set.
	Output string

	// State is the machine state when the run ended.
	State State

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Run executes the compiled program with the given input and configuration.
// Returns the output as a string, or an error if execution faults. On a
// fault the output produced before it is still returned.
//
// If config is nil, default configuration is used.
// If config.Output is set, output is written there and the returned
// string will be empty.
func (p *Program) Run(input io.Reader, config *Config) (string, error) {
	res, err := p.Execute(context.Background(), input, config)
	return res.Output, err
}

// Execute runs the program like Run and also returns the final machine
// state. The run stops with a RuntimeError wrapping ctx.Err() once ctx is
// done. The Result is never nil, also on error.
func (p *Program) Execute(ctx context.Context, input io.Reader, config *Config) (*Result, error) {
	var c Config
	if config != nil {
		c = *config
	}
	c.applyDefaults()

	v := vm.NewWithConfig(p.compiled.Code, c.vmConfig())
	v.SetInput(input)
	if ctx != nil {
		v.SetContext(ctx)
	}

	// Set output capture if not provided
	var outputBuf *bytes.Buffer
	if c.Output == nil {
		outputBuf = &bytes.Buffer{}
		v.SetOutput(outputBuf)
	} else {
		v.SetOutput(c.Output)
	}

	c.Logger.Debug("run started",
		"instructions", p.compiled.Len(),
		"loops", p.compiled.Loops,
		"eof", c.EOF.String())

	start := time.Now()
	err := v.Run()

	res := &Result{
		State: State{
			Tape:    v.Tape().Bytes(),
			Pointer: v.Pointer(),
			IP:      v.IP(),
			Steps:   v.Steps(),
		},
		Elapsed: time.Since(start),
	}
	if outputBuf != nil {
		res.Output = outputBuf.String()
	}

	if err != nil {
		err = p.convertError(err, res.State.Steps)
		c.Logger.Error("run failed",
			"error", err,
			"ip", res.State.IP,
			"pointer", res.State.Pointer,
			"steps", res.State.Steps)
		return res, err
	}

	c.Logger.Debug("run finished",
		"steps", res.State.Steps,
		"pointer", res.State.Pointer,
		"cells", len(res.State.Tape),
		"elapsed", res.Elapsed)
	return res, nil
}

// convertError maps a VM fault to the public error types.
func (p *Program) convertError(err error, steps int64) error {
	var fault *vm.Error
	if !errors.As(err, &fault) {
		return &RuntimeError{Index: -1, Message: err.Error(), Err: err}
	}

	pos := p.compiled.Position(fault.IP)
	switch fault.Kind {
	case vm.Malformed:
		return &MalformedProgramError{
			Index:    fault.IP,
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Message:  fault.Err.Error(),
		}
	case vm.InputExhausted:
		return &InputExhaustedError{Index: fault.IP, Line: pos.Line, Column: pos.Column}
	case vm.PointerOutOfRange:
		return &PointerError{
			Index:   fault.IP,
			Line:    pos.Line,
			Column:  pos.Column,
			Pointer: fault.Pointer,
			Message: fault.Err.Error(),
		}
	case vm.StepLimit:
		return &StepLimitError{Index: fault.IP, Steps: steps}
	}
	return &RuntimeError{Index: fault.IP, Message: fault.Err.Error(), Err: fault.Err}
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}

// Len returns the number of instructions after filtering.
func (p *Program) Len() int {
	return p.compiled.Len()
}

// String returns the filtered program: the source with everything but
// instruction characters removed.
func (p *Program) String() string {
	return p.compiled.String()
}

// Disassemble returns a human-readable listing of the instructions with
// loop partners and source positions.
// Useful for debugging and understanding program structure.
func (p *Program) Disassemble() string {
	return p.compiled.Disassemble()
}

// AsmOptions controls Assemble.
type AsmOptions struct {
	// TapeSize is the static tape size in cells (default 30000).
	TapeSize int
}

// Assemble writes x86-64 Linux NASM source for the program to w.
// The result is assembled and linked with external tools:
//
//	nasm -f elf64 prog.asm && ld prog.o -o prog
func (p *Program) Assemble(w io.Writer, opts *AsmOptions) error {
	var nasm compiler.NASMOptions
	if opts != nil {
		nasm.TapeSize = opts.TapeSize
	}
	return compiler.EmitNASM(w, p.compiled, nasm)
}
