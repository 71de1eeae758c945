package ubf

import (
	"io"

	"github.com/kolkov/ubf/internal/snapshot"
)

// State is the machine state at the end of a run.
type State struct {
	Tape    []byte // Every cell the tape grew to
	Pointer int    // Final data pointer
	IP      int    // Final instruction pointer
	Steps   int64  // Instructions executed
}

// Cell returns cell i, or 0 for cells the tape never reached.
func (s *State) Cell(i int) byte {
	if i < 0 || i >= len(s.Tape) {
		return 0
	}
	return s.Tape[i]
}

// Encode writes the state to w as "json" or "cbor".
func (s *State) Encode(w io.Writer, format string) error {
	f, err := snapshot.ParseFormat(format)
	if err != nil {
		return err
	}
	return snapshot.Encode(w, &snapshot.State{
		Tape:    s.Tape,
		Pointer: s.Pointer,
		IP:      s.IP,
		Steps:   s.Steps,
	}, f)
}

// DecodeState reads a state written by State.Encode.
func DecodeState(r io.Reader, format string) (*State, error) {
	f, err := snapshot.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	s, err := snapshot.Decode(r, f)
	if err != nil {
		return nil, err
	}
	return &State{
		Tape:    s.Tape,
		Pointer: s.Pointer,
		IP:      s.IP,
		Steps:   s.Steps,
	}, nil
}
