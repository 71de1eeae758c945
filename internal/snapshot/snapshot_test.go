package snapshot

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	s := &State{Tape: []byte{0, 64}, Pointer: 1, IP: 23, Steps: 201}
	if err := Encode(&buf, s, JSON); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"tape": "AEA="`, `"pointer": 1`, `"ip": 23`, `"steps": 201`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s in %s", want, out)
		}
	}
}

func TestEncodeCBORCanonical(t *testing.T) {
	s := &State{Tape: []byte{1, 2, 3}, Pointer: 2, Steps: 9}

	var a, b bytes.Buffer
	if err := Encode(&a, s, CBOR); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := Encode(&b, s, CBOR); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("canonical encoding is not deterministic")
	}

	// Integer keys keep the map small: a 4-entry map header.
	if a.Bytes()[0] != 0xa4 {
		t.Errorf("first byte = %#x, want map(4) 0xa4", a.Bytes()[0])
	}

	got, err := Decode(&a, CBOR)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got.Tape, s.Tape) || got.Pointer != s.Pointer || got.Steps != s.Steps {
		t.Errorf("Decode() = %+v, want %+v", got, s)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json"), JSON); err == nil {
		t.Error("Decode accepted bad JSON")
	}
	if _, err := Decode(bytes.NewReader([]byte{0xff, 0x00}), CBOR); err == nil {
		t.Error("Decode accepted bad CBOR")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": JSON, "json": JSON, "CBOR": CBOR} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat accepted xml")
	}
}
