package ubf

import (
	"errors"
	"fmt"
)

// location formats a fault location as "file:line:col (instruction n)".
func location(filename string, line, column, index int) string {
	switch {
	case line > 0 && filename != "":
		return fmt.Sprintf("%s:%d:%d (instruction %d)", filename, line, column, index)
	case line > 0:
		return fmt.Sprintf("%d:%d (instruction %d)", line, column, index)
	}
	return fmt.Sprintf("instruction %d", index)
}

// MalformedProgramError represents unbalanced brackets.
// Compile reports it before anything runs.
type MalformedProgramError struct {
	Index    int    // Instruction index of the offending bracket
	Filename string // Source file, if known
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Message  string // Error description
}

func (e *MalformedProgramError) Error() string {
	return fmt.Sprintf("malformed program at %s: %s",
		location(e.Filename, e.Line, e.Column, e.Index), e.Message)
}

// InputExhaustedError reports ',' at end of input under the EOFError policy.
type InputExhaustedError struct {
	Index  int // Instruction index of the ','
	Line   int
	Column int
}

func (e *InputExhaustedError) Error() string {
	return fmt.Sprintf("input exhausted at %s", location("", e.Line, e.Column, e.Index))
}

// PointerError reports a data pointer outside the tape: a move left of
// cell 0, or growth past Config.MaxTape.
type PointerError struct {
	Index   int // Instruction index
	Line    int
	Column  int
	Pointer int    // Data pointer at the time of the fault
	Message string // Error description
}

func (e *PointerError) Error() string {
	return fmt.Sprintf("pointer error at %s: %s (pointer %d)",
		location("", e.Line, e.Column, e.Index), e.Message, e.Pointer)
}

// StepLimitError reports a run that executed Config.MaxSteps instructions
// without finishing.
type StepLimitError struct {
	Index int   // Instruction that would have run next
	Steps int64 // Instructions executed
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit exceeded after %d steps at instruction %d", e.Steps, e.Index)
}

// RuntimeError represents any other fault during execution: I/O failures
// and cancellation. It unwraps to the cause.
type RuntimeError struct {
	Index   int    // Instruction index
	Message string // Error description
	Err     error  // Underlying cause
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at instruction %d: %s", e.Index, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err is a MalformedProgramError.
func IsMalformed(err error) bool {
	var e *MalformedProgramError
	return errors.As(err, &e)
}
