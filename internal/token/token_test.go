package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		c    byte
		want Op
	}{
		{'>', RIGHT},
		{'<', LEFT},
		{'+', INC},
		{'-', DEC},
		{'.', OUTPUT},
		{',', INPUT},
		{'[', OPEN},
		{']', CLOSE},
		{'a', ILLEGAL},
		{' ', ILLEGAL},
		{0, ILLEGAL},
		{0xff, ILLEGAL},
	}

	for _, tt := range tests {
		if got := Lookup(tt.c); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestOpByteMatchesLookup(t *testing.T) {
	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		op := Lookup(c)
		if !op.Valid() {
			t.Fatalf("Lookup(%q) is not valid", c)
		}
		if op.Byte() != c {
			t.Errorf("%v.Byte() = %q, want %q", op, op.Byte(), c)
		}
		if op.String() != string(c) {
			t.Errorf("%v.String() = %q, want %q", op, op.String(), string(c))
		}
	}
}

func TestIllegal(t *testing.T) {
	if ILLEGAL.Valid() {
		t.Error("ILLEGAL.Valid() = true")
	}
	if opEnd.Valid() {
		t.Error("opEnd.Valid() = true")
	}
	if got := ILLEGAL.String(); got != "<illegal>" {
		t.Errorf("ILLEGAL.String() = %q", got)
	}
	var zero Op
	if zero != ILLEGAL {
		t.Error("zero Op is not ILLEGAL")
	}
}

func TestTouchesCell(t *testing.T) {
	if RIGHT.TouchesCell() || LEFT.TouchesCell() {
		t.Error("pointer moves should not touch the cell")
	}
	for _, op := range []Op{INC, DEC, OUTPUT, INPUT, OPEN, CLOSE} {
		if !op.TouchesCell() {
			t.Errorf("%v.TouchesCell() = false", op)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got := p.String(); got != "3:7" {
		t.Errorf("String() = %q, want 3:7", got)
	}
	p.Filename = "hello.b"
	if got := p.String(); got != "hello.b:3:7" {
		t.Errorf("String() = %q, want hello.b:3:7", got)
	}
	if NoPos.IsValid() {
		t.Error("NoPos.IsValid() = true")
	}
	if got := NoPos.String(); got != "-" {
		t.Errorf("NoPos.String() = %q, want -", got)
	}
	a := Position{Line: 1, Column: 9, Offset: 8}
	b := Position{Line: 2, Column: 1, Offset: 10}
	if !a.Before(b) || b.Before(a) {
		t.Error("Before should follow byte offsets")
	}
}
