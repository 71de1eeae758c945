// Package config loads ubf.toml (or ubf.yaml) settings for the command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kolkov/ubf/internal/snapshot"
	"github.com/kolkov/ubf/internal/vm"
)

// FileName is the file FindAndLoad looks for.
const FileName = "ubf.toml"

// File is the on-disk configuration.
type File struct {
	EOF      string `toml:"eof" yaml:"eof"`
	TapeSize int    `toml:"tape-size" yaml:"tape-size"`
	MaxTape  int    `toml:"max-tape" yaml:"max-tape"`
	MaxSteps int64  `toml:"max-steps" yaml:"max-steps"`
	Timeout  string `toml:"timeout" yaml:"timeout"`

	Log  Log  `toml:"log" yaml:"log"`
	Dump Dump `toml:"dump" yaml:"dump"`
	Asm  Asm  `toml:"asm" yaml:"asm"`

	// Path is the file the configuration was loaded from (set at load time).
	Path string `toml:"-" yaml:"-"`
}

// Log configures diagnostics.
type Log struct {
	Level  string `toml:"level" yaml:"level"`
	File   string `toml:"file" yaml:"file"`
	Format string `toml:"format" yaml:"format"`
}

// Dump configures the final-state snapshot.
type Dump struct {
	Path   string `toml:"path" yaml:"path"`
	Format string `toml:"format" yaml:"format"`
}

// Asm configures assembly output.
type Asm struct {
	TapeSize int `toml:"tape-size" yaml:"tape-size"`
}

// Load parses the configuration file at path. The format is chosen by
// extension: .yaml and .yml are YAML, anything else is TOML.
// Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse error in %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("parse error in %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse error in %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	f.Path = path
	return &f, nil
}

// FindAndLoad walks up from startDir to find a ubf.toml file,
// then loads and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*File, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks value ranges and names.
func (f *File) Validate() error {
	if _, err := vm.ParseEOFPolicy(f.EOF); err != nil {
		return err
	}
	if f.TapeSize < 0 || f.MaxTape < 0 || f.MaxSteps < 0 || f.Asm.TapeSize < 0 {
		return fmt.Errorf("sizes and limits must not be negative")
	}
	if f.MaxTape > 0 && f.TapeSize > f.MaxTape {
		return fmt.Errorf("tape-size %d exceeds max-tape %d", f.TapeSize, f.MaxTape)
	}
	if _, err := f.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := snapshot.ParseFormat(f.Dump.Format); err != nil {
		return err
	}
	switch strings.ToLower(f.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", f.Log.Format)
	}
	return nil
}

// TimeoutDuration returns the parsed timeout; zero means none.
func (f *File) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("bad timeout %q: %w", f.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("bad timeout %q: negative", f.Timeout)
	}
	return d, nil
}
