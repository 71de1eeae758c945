package lexer

import (
	"testing"

	"github.com/kolkov/ubf/internal/token"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only instructions", "+-<>.,[]", "+-<>.,[]"},
		{"comment words", "add one + then print .", "+."},
		{"whitespace", " +\t+\n+\r\n", "+++"},
		{"no instructions", "hello world!", ""},
		{"unicode", "привет+мир-", "+-"},
		{"invalid utf8", "\xff+\xfe-", "+-"},
		{"lookalikes", "{}()=:;_~", ""},
		{"multiply", "++++++++[>++++++++<-]>. prints @", "++++++++[>++++++++<-]>."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filter(tt.input); got != tt.want {
				t.Errorf("Filter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"+[-]",
		"a+b-c<d>e.f,g[h]i",
		"Hello World!\n>++++++++[<+++++++++>-]<.",
	}
	for _, in := range inputs {
		once := Filter(in)
		if twice := Filter(once); twice != once {
			t.Errorf("Filter(Filter(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestScanPositions(t *testing.T) {
	src := "a+\n  [-]\n."
	ops, pos := Scan("prog.b", src)

	wantOps := []token.Op{token.INC, token.OPEN, token.DEC, token.CLOSE, token.OUTPUT}
	wantPos := []token.Position{
		{Filename: "prog.b", Line: 1, Column: 2, Offset: 1},
		{Filename: "prog.b", Line: 2, Column: 3, Offset: 5},
		{Filename: "prog.b", Line: 2, Column: 4, Offset: 6},
		{Filename: "prog.b", Line: 2, Column: 5, Offset: 7},
		{Filename: "prog.b", Line: 3, Column: 1, Offset: 9},
	}

	if len(ops) != len(wantOps) {
		t.Fatalf("got %d ops, want %d", len(ops), len(wantOps))
	}
	for i := range wantOps {
		if ops[i] != wantOps[i] {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i], wantOps[i])
		}
		if pos[i] != wantPos[i] {
			t.Errorf("pos[%d] = %+v, want %+v", i, pos[i], wantPos[i])
		}
	}
}

func TestLexerScanEOF(t *testing.T) {
	l := NewFromString("x+y\nz")
	if l.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", l.Remaining())
	}

	tok := l.Scan()
	if tok.Op != token.INC {
		t.Fatalf("first token = %v, want +", tok.Op)
	}

	tok = l.Scan()
	if tok.Op != token.ILLEGAL {
		t.Fatalf("second token = %v, want end of input", tok.Op)
	}
	if tok.Pos.Line != 2 || tok.Pos.Column != 2 {
		t.Errorf("end position = %v, want 2:2", tok.Pos)
	}

	// Scanning past the end keeps returning the end token.
	if again := l.Scan(); again.Op != token.ILLEGAL {
		t.Errorf("Scan after end = %v", again.Op)
	}
}

func TestScanMatchesFilter(t *testing.T) {
	src := "copy: ,[.,] done"
	ops, _ := Scan("", src)
	filtered := Filter(src)
	if len(ops) != len(filtered) {
		t.Fatalf("Scan found %d ops, Filter kept %d chars", len(ops), len(filtered))
	}
	for i, op := range ops {
		if op.Byte() != filtered[i] {
			t.Errorf("ops[%d] = %v, filtered[%d] = %q", i, op, i, filtered[i])
		}
	}
}
