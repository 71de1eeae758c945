package vm

import (
	"errors"
	"fmt"

	"github.com/kolkov/ubf/internal/token"
)

// Kind classifies a fault that aborted a run.
type Kind uint8

const (
	// Malformed is an unbalanced bracket found while running.
	Malformed Kind = iota + 1
	// InputExhausted is ',' at end of input under the EOFError policy.
	InputExhausted
	// PointerOutOfRange is '<' at cell 0, or growth past the tape limit.
	PointerOutOfRange
	// StepLimit is a run that exceeded its instruction budget.
	StepLimit
	// Canceled is a run stopped by its context.
	Canceled
	// IOFailure is an error from the input or output channel.
	IOFailure
)

var kindNames = [...]string{
	Malformed:         "malformed program",
	InputExhausted:    "input exhausted",
	PointerOutOfRange: "pointer out of range",
	StepLimit:         "step limit exceeded",
	Canceled:          "canceled",
	IOFailure:         "i/o error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Sentinel causes for the fault kinds that have no underlying error.
var (
	ErrUnmatchedOpen  = errors.New("unmatched '['")
	ErrUnmatchedClose = errors.New("unmatched ']'")
	ErrLeftOfStart    = errors.New("pointer moved left of cell 0")
	ErrStepLimit      = errors.New("step limit exceeded")
)

// Error is a fault raised by the dispatch loop. Every fault aborts the run.
type Error struct {
	Kind    Kind
	IP      int      // Index of the offending instruction
	Op      token.Op // The offending instruction
	Pointer int      // Data pointer at the time of the fault
	Err     error    // Underlying cause
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at instruction %d ('%s')", e.Kind, e.IP, e.Op)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// fault builds an Error for the instruction at the current IP.
func (vm *VM) fault(kind Kind, err error) *Error {
	var op token.Op
	if vm.ip >= 0 && vm.ip < len(vm.code) {
		op = vm.code[vm.ip]
	}
	return &Error{
		Kind:    kind,
		IP:      vm.ip,
		Op:      op,
		Pointer: vm.dp,
		Err:     err,
	}
}
