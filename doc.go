// Package ubf provides an embeddable interpreter for the eight-instruction
// tape language (><+-.,[]).
//
// Programs run against a tape of 8-bit cells that starts at one cell and
// doubles whenever the data pointer moves past its end. Cell arithmetic
// wraps modulo 256. Every character outside the instruction set is ignored.
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := ubf.Run(`++++++++[>++++++++<-]>.`, nil, nil)
//	// output == "@"
//
// With configuration:
//
//	output, err := ubf.Run(program, input, &ubf.Config{
//	    EOF:      ubf.EOFZero,
//	    MaxSteps: 1_000_000,
//	})
//
// # Compiled Programs
//
// For repeated execution of the same program:
//
//	prog, err := ubf.Compile(`,[.,]`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, file := range files {
//	    output, err := prog.Run(file, &ubf.Config{EOF: ubf.EOFZero})
//	    // ...
//	}
//
// [Program.Execute] additionally returns the final tape, data pointer and
// step count, and stops when its context is done.
//
// # Configuration
//
// The [Config] type allows customization of execution:
//   - End-of-input behavior of ',' ([EOFPolicy])
//   - Initial tape size and an optional tape limit
//   - A step budget
//   - Custom output writer and logger
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [MalformedProgramError]: unbalanced brackets, reported by Compile
//   - [InputExhaustedError]: ',' at end of input under [EOFError]
//   - [PointerError]: '<' at cell 0, or growth past Config.MaxTape
//   - [StepLimitError]: Config.MaxSteps exceeded
//   - [RuntimeError]: I/O failures and cancellation
//
// A faulting run still returns the output written before the fault.
//
// # Thread Safety
//
// Compiled [Program] objects are safe for concurrent use.
// Each call to [Program.Run] creates an independent execution context.
package ubf
