package ubf

import (
	"io"
	"log/slog"

	"github.com/kolkov/ubf/internal/logging"
	"github.com/kolkov/ubf/internal/vm"
)

// EOFPolicy decides what ',' does once input is exhausted.
type EOFPolicy = vm.EOFPolicy

// End-of-input policies.
const (
	// EOFError aborts the run with an InputExhaustedError (default).
	EOFError = vm.EOFError
	// EOFZero stores 0 in the current cell.
	EOFZero = vm.EOFZero
	// EOFMax stores 255 (-1 as a byte) in the current cell.
	EOFMax = vm.EOFMax
	// EOFUnchanged leaves the current cell as it was.
	EOFUnchanged = vm.EOFUnchanged
)

// ParseEOFPolicy parses "error", "zero", "max" (or "-1") and "unchanged".
func ParseEOFPolicy(s string) (EOFPolicy, error) {
	return vm.ParseEOFPolicy(s)
}

// Config holds configuration options for program execution.
type Config struct {
	// Output is the writer for '.'.
	// If nil, output is captured and returned from Run.
	Output io.Writer

	// EOF selects the behavior of ',' at end of input.
	EOF EOFPolicy

	// TapeSize is the initial number of cells (default 1).
	// The tape doubles whenever the pointer moves past its end.
	TapeSize int

	// MaxTape bounds tape growth in cells. Zero means unbounded.
	MaxTape int

	// MaxSteps bounds the number of executed instructions.
	// Zero means unbounded.
	MaxSteps int64

	// Logger receives run diagnostics. If nil, nothing is logged.
	Logger *slog.Logger
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.TapeSize <= 0 {
		c.TapeSize = vm.DefaultTapeSize
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
}

// vmConfig converts c to the VM's configuration.
func (c *Config) vmConfig() vm.VMConfig {
	return vm.VMConfig{
		TapeSize: c.TapeSize,
		MaxTape:  c.MaxTape,
		MaxSteps: c.MaxSteps,
		EOF:      c.EOF,
	}
}
