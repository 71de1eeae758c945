// Package snapshot encodes the final machine state of a run.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical encoding so that equal states produce
// identical bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Format selects the snapshot encoding.
type Format uint8

const (
	JSON Format = iota
	CBOR
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CBOR:
		return "cbor"
	}
	return fmt.Sprintf("Format(%d)", f)
}

// ParseFormat parses "json" or "cbor". The empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return JSON, nil
	case "cbor":
		return CBOR, nil
	}
	return JSON, fmt.Errorf("snapshot: unknown format %q (want json or cbor)", s)
}

// State is the machine state at the end of a run.
type State struct {
	Tape    []byte `json:"tape" cbor:"1,keyasint"`
	Pointer int    `json:"pointer" cbor:"2,keyasint"`
	IP      int    `json:"ip" cbor:"3,keyasint"`
	Steps   int64  `json:"steps" cbor:"4,keyasint"`
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s *State, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("snapshot: encode json: %w", err)
		}
		return nil
	case CBOR:
		data, err := cborEncMode.Marshal(s)
		if err != nil {
			return fmt.Errorf("snapshot: encode cbor: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("snapshot: unknown format %v", f)
}

// Decode reads a State from r in format f.
func Decode(r io.Reader, f Format) (*State, error) {
	var s State
	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("snapshot: decode json: %w", err)
		}
	case CBOR:
		if err := cbor.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("snapshot: decode cbor: %w", err)
		}
	default:
		return nil, fmt.Errorf("snapshot: unknown format %v", f)
	}
	return &s, nil
}
