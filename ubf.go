package ubf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kolkov/ubf/internal/compiler"
)

// Version is the ubf version string.
const Version = "0.1.0"

// Run compiles program and runs it once over input, which may be nil for
// programs that never execute ','. A nil config selects the defaults.
// Characters outside the instruction set are ignored.
//
// It returns everything the program wrote, and an error if the program is
// malformed or faults while running. To run one program many times,
// Compile it once and call Program.Run.
//
//	output, err := ubf.Run(`++++++++[>++++++++<-]>.`, nil, nil)
//	// output: "@"
func Run(program string, input io.Reader, config *Config) (string, error) {
	prog, err := Compile(program)
	if err != nil {
		return "", err
	}
	return prog.Run(input, config)
}

// Compile filters a program and checks that its brackets balance.
// Nothing runs until Program.Run or Program.Execute is called, and the
// result may be reused across runs and goroutines.
//
//	prog, err := ubf.Compile(`,[.,]`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	config := &ubf.Config{EOF: ubf.EOFZero}
//	output1, _ := prog.Run(file1, config)
//	output2, _ := prog.Run(file2, config)
func Compile(program string) (*Program, error) {
	return compile("", program)
}

// CompileFile reads and compiles the program in the named file.
// Error positions carry the file name.
func CompileFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read program file %s: %w", path, err)
	}
	return compile(path, string(data))
}

func compile(filename, program string) (*Program, error) {
	compiled, err := compiler.Compile(filename, program)
	if err != nil {
		// Convert bracket error to public type
		var be *compiler.BracketError
		if errors.As(err, &be) {
			return nil, &MalformedProgramError{
				Index:    be.Index,
				Filename: be.Pos.Filename,
				Line:     be.Pos.Line,
				Column:   be.Pos.Column,
				Message:  fmt.Sprintf("unmatched '%s'", be.Op),
			}
		}
		return nil, err
	}

	return &Program{
		compiled: compiled,
		source:   program,
	}, nil
}

// Exec runs program with output streamed to w instead of being collected
// into a string. Settings other than Output are taken from config.
//
//	err := ubf.Exec(`,[.,]`, os.Stdin, os.Stdout, &ubf.Config{EOF: ubf.EOFZero})
func Exec(program string, input io.Reader, w io.Writer, config *Config) error {
	prog, err := Compile(program)
	if err != nil {
		return err
	}

	var c Config
	if config != nil {
		c = *config
	}
	c.Output = w

	_, err = prog.Run(input, &c)
	return err
}

// MustCompile is like Compile but panics on a malformed program.
// It is meant for programs fixed at build time:
//
//	var cat = ubf.MustCompile(`,[.,]`)
func MustCompile(program string) *Program {
	prog, err := Compile(program)
	if err != nil {
		panic(err)
	}
	return prog
}
