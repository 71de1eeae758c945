// ubf - tape language interpreter
//
// Runs programs over the eight-instruction alphabet ><+-.,[] against a
// growable byte tape. Uses manual argument parsing so that flag handling
// stays close to the other tools in this family.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kolkov/ubf"
	"github.com/kolkov/ubf/internal/config"
	"github.com/kolkov/ubf/internal/logging"
	"github.com/kolkov/ubf/internal/runtime"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: ubf [options] [-e 'prog' | progfile] [input ...]"
	longUsage  = `Program:
  -e prog           run prog given on the command line
  progfile          read the program from a file

Execution:
  -eof policy       end of input for ',': error, zero, max, unchanged
  -tape N           initial tape size in cells (default 1)
  -max-tape N       fault when the tape would grow past N cells
  -max-steps N      fault after N instructions
  -timeout D        stop the run after duration D (e.g. 5s)
  -config file      load settings from file (default: nearest ubf.toml)

Output:
  -o file           write program output to file instead of stdout
  -dump file        write the final machine state to file
  -dump-format f    state format: json, cbor (default json)
  -S file           write x86-64 NASM source to file and exit

Debugging arguments:
  -d                print the filtered program and its length to stderr and exit
  -da               print the instruction listing to stderr and exit
  -t                print elapsed run time to stderr

Logging:
  -log-level L      debug, info, warn, error (default warn)
  -log-file file    also write log records to file
  -log-json         write the log file as JSON

Other:
  -h, --help        show this help message
  -version          show ubf version and exit
`
)

// options is the merged result of the config file and the command line.
type options struct {
	eof        string
	tapeSize   int
	maxTape    int
	maxSteps   int64
	timeout    time.Duration
	outPath    string
	dumpPath   string
	dumpFormat string
	asmPath    string
	asmTape    int
	logLevel   string
	logFile    string
	logJSON    bool
}

// cliArgs holds everything parsed from the command line. Option flags
// are kept as setters so they can be applied over the config file.
type cliArgs struct {
	program    string
	hasProgram bool
	progFile   string
	inputs     []string
	configPath string
	debug      bool
	debugAsm   bool
	timing     bool
	help       bool
	version    bool
	setters    []func(*options)
}

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		errorExitf("%v", err)
	}
	if args.help {
		fmt.Printf("ubf %s - tape language interpreter\n\n%s\n\n%s", version, shortUsage, longUsage)
		os.Exit(0)
	}
	if args.version {
		fmt.Printf("ubf version %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
		fmt.Printf("  library: %s\n", ubf.Version)
		os.Exit(0)
	}
	if !args.hasProgram && args.progFile == "" {
		errorExitf(shortUsage)
	}

	opts, err := loadOptions(args)
	if err != nil {
		errorExit(err)
	}
	if err := run(args, opts); err != nil {
		errorExit(err)
	}
}

// parseArgs parses the command line (without the program name).
//
//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func parseArgs(argv []string) (*cliArgs, error) {
	a := &cliArgs{}

	var i int
	value := func(flag string) (string, error) {
		if i+1 >= len(argv) {
			return "", fmt.Errorf("flag needs an argument: %s", flag)
		}
		i++
		return argv[i], nil
	}
	set := func(fn func(*options)) {
		a.setters = append(a.setters, fn)
	}

	for i = 0; i < len(argv); i++ {
		// Stop on explicit end of args or first arg not prefixed with "-"
		arg := argv[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-e":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			a.program = v
			a.hasProgram = true
		case "-config":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			a.configPath = v
		case "-eof":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			if _, err := ubf.ParseEOFPolicy(v); err != nil {
				return nil, err
			}
			set(func(o *options) { o.eof = v })
		case "-tape", "-max-tape":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid cell count for %s: %s", arg, v)
			}
			if arg == "-tape" {
				set(func(o *options) { o.tapeSize = n })
			} else {
				set(func(o *options) { o.maxTape = n })
			}
		case "-max-steps":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid step count: %s", v)
			}
			set(func(o *options) { o.maxSteps = n })
		case "-timeout":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			d, err := time.ParseDuration(v)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("invalid timeout: %s", v)
			}
			set(func(o *options) { o.timeout = d })
		case "-o":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			set(func(o *options) { o.outPath = v })
		case "-dump":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			set(func(o *options) { o.dumpPath = v })
		case "-dump-format":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			set(func(o *options) { o.dumpFormat = v })
		case "-S":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			set(func(o *options) { o.asmPath = v })
		case "-log-level":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			set(func(o *options) { o.logLevel = v })
		case "-log-file":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			set(func(o *options) { o.logFile = v })
		case "-log-json":
			set(func(o *options) { o.logJSON = true })
		case "-d":
			a.debug = true
		case "-da":
			a.debugAsm = true
		case "-t":
			a.timing = true
		case "-h", "--help":
			a.help = true
		case "-version", "--version":
			a.version = true
		default:
			// Handle -eprog with no space.
			if strings.HasPrefix(arg, "-e") && len(arg) > 2 {
				a.program = arg[2:]
				a.hasProgram = true
				continue
			}
			return nil, fmt.Errorf("flag provided but not defined: %s", arg)
		}
	}

	// Remaining args are the program file and input files
	rest := argv[min(i, len(argv)):]
	if !a.hasProgram && len(rest) > 0 {
		a.progFile = rest[0]
		rest = rest[1:]
	}
	a.inputs = rest
	return a, nil
}

// loadOptions reads the config file and applies the command-line flags
// on top of it.
func loadOptions(a *cliArgs) (*options, error) {
	var (
		f   *config.File
		err error
	)
	if a.configPath != "" {
		f, err = config.Load(a.configPath)
	} else {
		f, err = config.FindAndLoad(".")
	}
	if err != nil {
		return nil, err
	}

	o := &options{}
	if f != nil {
		timeout, err := f.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		*o = options{
			eof:        f.EOF,
			tapeSize:   f.TapeSize,
			maxTape:    f.MaxTape,
			maxSteps:   f.MaxSteps,
			timeout:    timeout,
			dumpPath:   f.Dump.Path,
			dumpFormat: f.Dump.Format,
			asmTape:    f.Asm.TapeSize,
			logLevel:   f.Log.Level,
			logFile:    f.Log.File,
			logJSON:    strings.EqualFold(f.Log.Format, "json"),
		}
	}
	for _, fn := range a.setters {
		fn(o)
	}
	return o, nil
}

// run compiles and executes the program described by a and o.
func run(a *cliArgs, o *options) error {
	logger, closeLog, err := logging.New(logging.Options{
		Level: o.logLevel,
		File:  o.logFile,
		JSON:  o.logJSON,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	var prog *ubf.Program
	if a.hasProgram {
		prog, err = ubf.Compile(a.program)
	} else {
		prog, err = ubf.CompileFile(a.progFile)
	}
	if err != nil {
		return err
	}

	// Debug output modes
	if a.debug {
		fmt.Fprintln(os.Stderr, prog.String())
		fmt.Fprintf(os.Stderr, "length: %d\n", prog.Len())
		return nil
	}
	if a.debugAsm {
		fmt.Fprint(os.Stderr, prog.Disassemble())
		return nil
	}

	iom := runtime.NewIOManager()
	defer iom.CloseAll()

	if o.asmPath != "" {
		w, err := iom.GetOutputFile(o.asmPath, false)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", o.asmPath, err)
		}
		if err := prog.Assemble(w, &ubf.AsmOptions{TapeSize: o.asmTape}); err != nil {
			return err
		}
		return iom.CloseAll()
	}

	eof, err := ubf.ParseEOFPolicy(o.eof)
	if err != nil {
		return err
	}

	input, err := iom.OpenInput(a.inputs...)
	if err != nil {
		return fmt.Errorf("cannot open input: %w", err)
	}

	outPath := o.outPath
	if outPath == "" {
		outPath = "-"
	}
	output, err := iom.GetOutputFile(outPath, false)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", outPath, err)
	}

	ctx := context.Background()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	res, runErr := prog.Execute(ctx, input, &ubf.Config{
		Output:   output,
		EOF:      eof,
		TapeSize: o.tapeSize,
		MaxTape:  o.maxTape,
		MaxSteps: o.maxSteps,
		Logger:   logger,
	})

	if a.timing {
		fmt.Fprintf(os.Stderr, "elapsed: %v (%d steps)\n", res.Elapsed, res.State.Steps)
	}
	if o.dumpPath != "" {
		if err := dumpState(iom, o, &res.State, logger); err != nil {
			return err
		}
	}
	if err := iom.CloseAll(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// dumpState writes the final machine state to o.dumpPath.
func dumpState(iom *runtime.IOManager, o *options, st *ubf.State, logger *slog.Logger) error {
	w, err := iom.GetOutputFile(o.dumpPath, false)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", o.dumpPath, err)
	}
	format := o.dumpFormat
	if format == "" {
		format = "json"
	}
	if err := st.Encode(w, format); err != nil {
		return err
	}
	logger.Debug("state dumped", "path", o.dumpPath, "format", format, "cells", len(st.Tape))
	return nil
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ubf: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "ubf: %v\n", err)
	os.Exit(1)
}
