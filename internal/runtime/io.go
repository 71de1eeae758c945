// Package runtime provides the byte channels a running program reads and
// writes, and the file handling the command line uses to set them up.
package runtime

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"
)

// Input is the ordered byte source consumed by ','.
// A nil reader behaves as an empty input.
type Input struct {
	r   io.ByteReader
	n   int64 // bytes delivered so far
	eof bool
}

// NewInput wraps r for byte-at-a-time reading. Readers that already
// implement io.ByteReader are used directly; anything else is buffered.
func NewInput(r io.Reader) *Input {
	if r == nil {
		return &Input{eof: true}
	}
	if br, ok := r.(io.ByteReader); ok {
		return &Input{r: br}
	}
	return &Input{r: bufio.NewReader(r)}
}

// ReadByte returns the next input byte. It blocks until a byte is
// available and returns io.EOF once the source is exhausted. Once EOF has
// been seen it is returned for every later call.
func (in *Input) ReadByte() (byte, error) {
	if in.eof {
		return 0, io.EOF
	}
	b, err := in.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			in.eof = true
			return 0, io.EOF
		}
		return 0, err
	}
	in.n++
	return b, nil
}

// Consumed returns the number of bytes read so far.
func (in *Input) Consumed() int64 {
	return in.n
}

// Output is the ordered byte sink written by '.'.
type Output struct {
	w *bufio.Writer
	n int64
}

// NewOutput wraps w in a buffer. Call Flush when done.
// A nil writer discards output.
func NewOutput(w io.Writer) *Output {
	if w == nil {
		w = io.Discard
	}
	return &Output{w: bufio.NewWriter(w)}
}

// WriteByte appends b to the output.
func (out *Output) WriteByte(b byte) error {
	if err := out.w.WriteByte(b); err != nil {
		return err
	}
	out.n++
	return nil
}

// Flush writes any buffered bytes to the underlying writer.
func (out *Output) Flush() error {
	return out.w.Flush()
}

// Written returns the number of bytes written so far.
func (out *Output) Written() int64 {
	return out.n
}

// IOManager opens and tracks the files named on the command line.
// The name "-" stands for standard input or standard output.
type IOManager struct {
	mu sync.Mutex

	inFiles  []*os.File
	outFiles map[string]*OutputFile
}

// OutputFile wraps an os.File for output operations.
type OutputFile struct {
	file   *os.File
	writer *bufio.Writer
}

// NewIOManager creates a new I/O manager.
func NewIOManager() *IOManager {
	return &IOManager{
		outFiles: make(map[string]*OutputFile),
	}
}

// OpenInput returns a reader over the concatenation of the named files.
// With no names it returns standard input.
func (m *IOManager) OpenInput(names ...string) (io.Reader, error) {
	if len(names) == 0 {
		return os.Stdin, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	readers := make([]io.Reader, 0, len(names))
	for _, name := range names {
		if name == "-" {
			readers = append(readers, os.Stdin)
			continue
		}
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		m.inFiles = append(m.inFiles, file)
		readers = append(readers, file)
	}
	if len(readers) == 1 {
		return readers[0], nil
	}
	return io.MultiReader(readers...), nil
}

// GetOutputFile returns a buffered writer for the named file, creating or
// truncating it on first use. If append is true, opens in append mode.
func (m *IOManager) GetOutputFile(name string, append bool) (*bufio.Writer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if already open
	if of, ok := m.outFiles[name]; ok {
		return of.writer, nil
	}

	file := os.Stdout
	if name != "-" {
		var flag int
		if append {
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		} else {
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}

		var err error
		file, err = os.OpenFile(name, flag, 0644)
		if err != nil {
			return nil, err
		}
	}

	of := &OutputFile{
		file:   file,
		writer: bufio.NewWriter(file),
	}
	m.outFiles[name] = of

	return of.writer, nil
}

// Flush flushes every open output file.
func (m *IOManager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, of := range m.outFiles {
		errs = append(errs, of.writer.Flush())
	}
	return errors.Join(errs...)
}

// CloseAll flushes and closes every file opened through m.
// Standard streams are flushed but left open.
func (m *IOManager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, of := range m.outFiles {
		errs = append(errs, of.writer.Flush())
		if of.file != os.Stdout {
			errs = append(errs, of.file.Close())
		}
	}
	m.outFiles = make(map[string]*OutputFile)

	for _, f := range m.inFiles {
		errs = append(errs, f.Close())
	}
	m.inFiles = nil

	return errors.Join(errs...)
}
