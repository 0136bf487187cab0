package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/klauspost/compress/gzip"

	"github.com/mcncl/jsonize"
	"github.com/mcncl/jsonize/internal/config"
	"github.com/mcncl/jsonize/internal/errors"
	"github.com/mcncl/jsonize/internal/parser"
	"github.com/mcncl/jsonize/internal/transform"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file (gzip-compressed when it ends in .gz). If not specified, writes to stdout." short:"o" type:"path"`
	Compact     bool   `help:"Render compact JSON instead of the pretty 4-space form." short:"c"`
	Rekey       string `help:"Rewrite object keys in the given style (camel, pascal, snake, kebab)." short:"k"`
	Config      string `help:"Path to a config file. If not specified, searches for .jsonize.yml/.yaml/.toml upward from the working directory."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger kitlog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("jsonize"),
		kong.Description("A tool to normalize, rekey and pretty-print JSON"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonize version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(ctx)
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonize --help\n")

		os.Exit(1)
	}
}

// newContext resolves the effective configuration (defaults, then config
// file, then flags) and sets up the debug logger.
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Compact, CLI.Rekey)
	if err != nil {
		return nil, errors.NewInputError("failed to load configuration", err)
	}

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	if CLI.Debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	return &Context{Debug: CLI.Debug, Config: cfg, Logger: logger}, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Parse JSON input into a value tree
	value, err := parseInput()
	if err != nil {
		// Error is already wrapped by parseInput
		return err
	}

	// 2. Rewrite object keys if requested
	if ctx.Config.Rekey != "" {
		style, err := transform.ParseStyle(ctx.Config.Rekey)
		if err != nil {
			return err
		}
		value = transform.Rekey(value, style)
		if ctx.Debug {
			level.Debug(ctx.Logger).Log("msg", "rewrote object keys", "style", style)
		}
	}

	if ctx.Debug {
		level.Debug(ctx.Logger).Log("msg", "built value tree", "kind", value.Kind())
		fmt.Fprint(os.Stderr, spew.Sdump(value))
	}

	// 3. Output the result
	return writeOutput(value, ctx.Config.Compact)
}

// parseInput reads JSON from file or stdin
func parseInput() (jsonize.Value, error) {
	if CLI.Input != "" {
		// Parse from file
		return parser.ParseFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData))
}

// writeOutput renders the tree and writes it to the configured destination.
// Plain pretty file output goes through jsonize.WriteToFile; compact and
// gzip-compressed targets are rendered here instead.
func writeOutput(value jsonize.Value, compact bool) error {
	if CLI.Output != "" {
		if strings.HasSuffix(CLI.Output, ".gz") {
			err := writeGzip(CLI.Output, jsonize.Render(value, !compact))
			if err != nil {
				return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
			}
		} else if compact {
			err := os.WriteFile(CLI.Output, []byte(jsonize.Render(value, false)), 0644)
			if err != nil {
				return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
			}
		} else {
			err := jsonize.WriteToFile(CLI.Output, value)
			if err != nil {
				return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
			}
		}
		fmt.Fprintf(os.Stderr, "JSON written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(jsonize.Render(value, !compact))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// writeGzip writes text gzip-compressed to path with create-or-truncate
// semantics, matching the sink's file handling.
func writeGzip(path, text string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	zw := gzip.NewWriter(file)
	if _, err := zw.Write([]byte(text)); err != nil {
		_ = zw.Close()
		_ = file.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (jsonize.Value, error) {
	fmt.Fprintln(os.Stderr, "Jsonize Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData)
}
