package vm

import (
	"io"
	"strings"
	"testing"

	"github.com/kolkov/ubf/internal/lexer"
)

func benchmarkProgram(b *testing.B, source string) {
	code, _ := lexer.Scan("", source)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm := New(code)
		vm.SetOutput(io.Discard)
		if err := vm.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHelloWorld(b *testing.B) {
	benchmarkProgram(b, helloWorld)
}

// BenchmarkNestedLoops runs 255*255 inner iterations.
func BenchmarkNestedLoops(b *testing.B) {
	benchmarkProgram(b, "-[>-[-]<-]")
}

// BenchmarkSkippedLoops exercises the forward scan.
func BenchmarkSkippedLoops(b *testing.B) {
	body := strings.Repeat("[>+<-[>+<-]]", 64)
	benchmarkProgram(b, strings.Repeat(body, 16))
}

func BenchmarkTapeGrowth(b *testing.B) {
	benchmarkProgram(b, strings.Repeat(">+", 4096))
}
