// Package vm executes instruction sequences against a growable byte tape.
//
// The VM interprets instructions directly: loops are entered and repeated
// through an explicit control-flow stack of IP markers, and loops whose
// condition cell is zero are skipped by scanning forward to the matching
// bracket. No recursion is involved, so nesting depth is bounded only by
// memory.
package vm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/ubf/internal/runtime"
	"github.com/kolkov/ubf/internal/token"
)

// cancelCheckMask sets how often the context is polled, in instructions.
const cancelCheckMask = 1<<12 - 1

// EOFPolicy decides what ',' does once input is exhausted.
type EOFPolicy uint8

const (
	// EOFError aborts the run with an InputExhausted fault.
	EOFError EOFPolicy = iota
	// EOFZero stores 0 in the cell.
	EOFZero
	// EOFMax stores 255 in the cell (-1 as a byte).
	EOFMax
	// EOFUnchanged leaves the cell as it was.
	EOFUnchanged
)

var eofNames = [...]string{
	EOFError:     "error",
	EOFZero:      "zero",
	EOFMax:       "max",
	EOFUnchanged: "unchanged",
}

func (p EOFPolicy) String() string {
	if int(p) < len(eofNames) {
		return eofNames[p]
	}
	return fmt.Sprintf("EOFPolicy(%d)", p)
}

// ParseEOFPolicy parses a policy name as printed by EOFPolicy.String.
// "-1" is accepted as an alias for "max" and "" for "error".
func ParseEOFPolicy(s string) (EOFPolicy, error) {
	switch strings.ToLower(s) {
	case "", "error":
		return EOFError, nil
	case "zero", "0":
		return EOFZero, nil
	case "max", "-1", "255":
		return EOFMax, nil
	case "unchanged", "keep":
		return EOFUnchanged, nil
	}
	return EOFError, fmt.Errorf("unknown EOF policy %q (want error, zero, max or unchanged)", s)
}

// VMConfig holds VM configuration options.
type VMConfig struct {
	// TapeSize is the initial number of cells (default DefaultTapeSize).
	TapeSize int

	// MaxTape bounds tape growth in cells. Zero means unbounded.
	MaxTape int

	// MaxSteps bounds the number of executed instructions.
	// Zero means unbounded.
	MaxSteps int64

	// EOF selects the end-of-input behavior of ','.
	EOF EOFPolicy
}

// DefaultVMConfig returns the default configuration: unbounded tape and
// steps, faulting on end of input.
func DefaultVMConfig() VMConfig {
	return VMConfig{TapeSize: DefaultTapeSize}
}

// VM runs one program once. Create a new VM for every run.
type VM struct {
	code []token.Op

	ip    int   // Instruction pointer
	dp    int   // Data pointer
	stack []int // IPs of entered loops
	tape  *Tape

	in  *runtime.Input
	out *runtime.Output

	eof      EOFPolicy
	steps    int64
	maxSteps int64
	ctx      context.Context
}

// New creates a VM for code with the default configuration.
func New(code []token.Op) *VM {
	return NewWithConfig(code, DefaultVMConfig())
}

// NewWithConfig creates a VM for code with the given configuration.
// Input starts empty and output is discarded until SetInput and
// SetOutput are called.
func NewWithConfig(code []token.Op, config VMConfig) *VM {
	return &VM{
		code:     code,
		stack:    make([]int, 0, 16),
		tape:     NewTape(config.TapeSize, config.MaxTape),
		in:       runtime.NewInput(nil),
		out:      runtime.NewOutput(nil),
		eof:      config.EOF,
		maxSteps: config.MaxSteps,
	}
}

// SetInput sets the reader consumed by ','.
func (vm *VM) SetInput(r io.Reader) {
	vm.in = runtime.NewInput(r)
}

// SetOutput sets the writer written by '.'.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = runtime.NewOutput(w)
}

// SetContext makes the run stop with a Canceled fault once ctx is done.
// The context is polled between instructions; a ',' blocked on input is
// not interrupted.
func (vm *VM) SetContext(ctx context.Context) {
	vm.ctx = ctx
}

// Pointer returns the data pointer.
func (vm *VM) Pointer() int {
	return vm.dp
}

// IP returns the instruction pointer.
func (vm *VM) IP() int {
	return vm.ip
}

// Steps returns the number of instructions executed so far.
func (vm *VM) Steps() int64 {
	return vm.steps
}

// Depth returns the number of loops currently entered.
func (vm *VM) Depth() int {
	return len(vm.stack)
}

// Tape returns the tape. It must not be modified while the VM runs.
func (vm *VM) Tape() *Tape {
	return vm.tape
}

// Run executes the program to completion or to the first fault.
// Output is flushed before Run returns, also on fault.
func (vm *VM) Run() error {
	err := vm.execute()
	if ferr := vm.out.Flush(); ferr != nil && err == nil {
		err = vm.fault(IOFailure, ferr)
	}
	return err
}

func (vm *VM) execute() error {
	var done <-chan struct{}
	if vm.ctx != nil {
		done = vm.ctx.Done()
	}

	code := vm.code
	for vm.ip < len(code) {
		if vm.maxSteps > 0 && vm.steps >= vm.maxSteps {
			return vm.fault(StepLimit, ErrStepLimit)
		}
		if done != nil && vm.steps&cancelCheckMask == 0 {
			select {
			case <-done:
				return vm.fault(Canceled, vm.ctx.Err())
			default:
			}
		}

		op := code[vm.ip]
		if op.TouchesCell() {
			if err := vm.tape.Grow(vm.dp); err != nil {
				return vm.fault(PointerOutOfRange, err)
			}
		}

		switch op {
		case token.RIGHT:
			vm.dp++

		case token.LEFT:
			if vm.dp == 0 {
				return vm.fault(PointerOutOfRange, ErrLeftOfStart)
			}
			vm.dp--

		case token.INC:
			vm.tape.cells[vm.dp]++

		case token.DEC:
			vm.tape.cells[vm.dp]--

		case token.OUTPUT:
			if err := vm.out.WriteByte(vm.tape.cells[vm.dp]); err != nil {
				return vm.fault(IOFailure, err)
			}

		case token.INPUT:
			if err := vm.read(); err != nil {
				return err
			}

		case token.OPEN:
			if vm.tape.cells[vm.dp] != 0 {
				vm.stack = append(vm.stack, vm.ip)
			} else if err := vm.skipLoop(); err != nil {
				return err
			}

		case token.CLOSE:
			if len(vm.stack) == 0 {
				return vm.fault(Malformed, ErrUnmatchedClose)
			}
			top := vm.stack[len(vm.stack)-1]
			vm.stack = vm.stack[:len(vm.stack)-1]
			if vm.tape.cells[vm.dp] != 0 {
				// Land on the '[' so the condition is evaluated again.
				vm.ip = top - 1
			}

		default:
			panic(fmt.Sprintf("vm: invalid instruction %d at %d", op, vm.ip))
		}

		vm.steps++
		vm.ip++
	}

	if len(vm.stack) > 0 {
		vm.ip = vm.stack[len(vm.stack)-1]
		return vm.fault(Malformed, ErrUnmatchedOpen)
	}
	return nil
}

// skipLoop moves ip from a '[' to its matching ']' without executing the
// body. Nested loops are skipped as a unit.
func (vm *VM) skipLoop() error {
	start := vm.ip
	depth := 1
	for depth > 0 {
		vm.ip++
		if vm.ip >= len(vm.code) {
			vm.ip = start
			return vm.fault(Malformed, ErrUnmatchedOpen)
		}
		switch vm.code[vm.ip] {
		case token.OPEN:
			depth++
		case token.CLOSE:
			depth--
		}
	}
	return nil
}

// read executes ','. Pending output is flushed first so that prompts are
// visible before the VM blocks.
func (vm *VM) read() error {
	if err := vm.out.Flush(); err != nil {
		return vm.fault(IOFailure, err)
	}

	b, err := vm.in.ReadByte()
	switch {
	case err == nil:
		vm.tape.cells[vm.dp] = b
	case errors.Is(err, io.EOF):
		switch vm.eof {
		case EOFZero:
			vm.tape.cells[vm.dp] = 0
		case EOFMax:
			vm.tape.cells[vm.dp] = 0xff
		case EOFUnchanged:
		default:
			return vm.fault(InputExhausted, io.EOF)
		}
	default:
		return vm.fault(IOFailure, err)
	}
	return nil
}
