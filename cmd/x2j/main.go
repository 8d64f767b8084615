// Command x2j converts an XML document to JSON, directed by
// instructions in the http://pageseeder.org/JSON namespace.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/arnodel/xmlstream/encoding/json"
	"github.com/arnodel/xmlstream/encoding/xml"
	"github.com/arnodel/xmlstream/internal/config"
	"github.com/arnodel/xmlstream/internal/format"
	"github.com/arnodel/xmlstream/token"
	"github.com/arnodel/xmlstream/transcode"
	"github.com/arnodel/xmlstream/transform"
)

var cli struct {
	Input     string `arg:"" optional:"" help:"XML input file (stdin if omitted)." type:"existingfile"`
	Output    string `help:"Write JSON to this file instead of stdout." short:"o" type:"path"`
	Indent    int    `help:"Indent step for JSON output (negative means single line)." default:"${indent}"`
	Compact   bool   `help:"Output JSON on a single line." short:"c" default:"${compact}"`
	Color     string `help:"Colorize output: auto, always, never." enum:"auto,always,never" default:"${color}"`
	KeyCase   string `help:"Rewrite object keys: none, snake, camel, pascal, kebab." enum:"none,snake,camel,pascal,kebab" default:"${key_case}"`
	Namespace string `help:"Instruction namespace URI." default:"${namespace}"`
	Config    string `help:"Path to a YAML config file." type:"path"`
	Quiet     bool   `help:"Suppress conversion diagnostics." short:"q"`
	Trace     bool   `help:"Log the token stream instead of encoding it (debugging)."`
}

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling
	// at the bottom of main).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
		}
	}()

	cfg := loadConfig()
	parser := kong.Must(&cli,
		kong.Name("x2j"),
		kong.Description("Convert an XML document to JSON, directed by json:* instructions carried on the XML."),
		kong.UsageOnError(),
		kong.Vars{
			"indent":    strconv.Itoa(cfg.Indent),
			"compact":   strconv.FormatBool(cfg.Compact),
			"color":     cfg.Color,
			"key_case":  cfg.KeyCase,
			"namespace": cfg.Namespace,
		},
	)
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "x2j: %s\n", err)
		os.Exit(2)
	}

	// Open the input
	var input io.Reader = os.Stdin
	if cli.Input != "" {
		f, err := os.Open(cli.Input)
		if err != nil {
			fatalError("error opening %q: %s", cli.Input, err)
		}
		defer f.Close()
		input = f
	}

	// Open the output and decide on colors
	var colorizer *format.Colorizer
	var stdout io.Writer = os.Stdout
	outIsTerminal := isatty.IsTerminal(os.Stdout.Fd())
	if cli.Output != "" {
		f, err := os.Create(cli.Output)
		if err != nil {
			fatalError("error creating %q: %s", cli.Output, err)
		}
		defer f.Close()
		stdout = f
		outIsTerminal = false
	}
	switch cli.Color {
	case "always":
		colorizer = &defaultColorizer
	case "never":
	default:
		if outIsTerminal {
			colorizer = &defaultColorizer
		}
	}
	if colorizer != nil && cli.Output == "" {
		stdout = colorable.NewColorableStdout()
	}

	// Set up the decoder
	decoder := xml.NewDecoder(input)
	decoder.Namespace = cli.Namespace
	if !cli.Quiet {
		decoder.OnDiagnostic = func(d transcode.Diagnostic) {
			fmt.Fprintf(os.Stderr, "x2j: %s\n", d)
		}
	}

	// Start transcoding the input document
	stream := token.StartStream(
		decoder,
		func(err error) {
			fmt.Fprintf(os.Stderr, "x2j: error while converting: %s\n", err)
		},
	)

	if cli.KeyCase != "none" {
		keyCase, err := transform.NewKeyCase(cli.KeyCase)
		if err != nil {
			fatalError("error: %s", err)
		}
		stream = token.TransformStream(stream, keyCase)
	}

	if cli.Trace {
		if err := token.ConsumeStream(stream, sinkFunc(transform.Trace{}.Transform)); err != nil {
			fatalError("error: %s", err)
		}
		return
	}

	// Write the output stream
	indent := cli.Indent
	if cli.Compact {
		indent = -1
	}
	out := bufio.NewWriter(stdout)
	printer := &format.DefaultPrinter{
		Writer:     out,
		IndentSize: indent,
	}
	// When writing to a terminal, flush after each value so the user
	// gets feedback early.
	if outIsTerminal {
		printer.Flusher = out
	}
	encoder := &json.Encoder{Printer: printer, Colorizer: colorizer}

	err := token.ConsumeStream(stream, encoder)
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or
			// 'less').  In this case we don't want to complain.
			return
		}
		fatalError("error: %s", err)
	}
	if err := out.Flush(); err != nil && !errors.Is(err, syscall.EPIPE) {
		fatalError("error: %s", err)
	}
}

func loadConfig() config.Config {
	// The config file informs flag defaults, so it has to be found
	// before kong parses the command line.
	for i, arg := range os.Args[1:] {
		var path string
		switch {
		case arg == "--config" && i+2 < len(os.Args):
			path = os.Args[i+2]
		case strings.HasPrefix(arg, "--config="):
			path = strings.TrimPrefix(arg, "--config=")
		default:
			continue
		}
		cfg, err := config.Load(path)
		if err != nil {
			fatalError("error: %s", err)
		}
		return cfg
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		fatalError("error: %s", err)
	}
	return cfg
}

func fatalError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// sinkFunc adapts a transform function into a StreamSink.
type sinkFunc func(in <-chan token.Token, out token.WriteStream)

func (f sinkFunc) Consume(in <-chan token.Token) error {
	f(in, token.NewAccumulatorStream())
	return nil
}

// Some color ANSI codes
var (
	reset      = []byte("\033[0m")
	yellow     = []byte("\033[33m")
	white      = []byte("\033[37m")
	green      = []byte("\033[32m")
	dimWhite   = []byte("\033[37;2m")
	brightBlue = []byte("\033[34;1m")
)

var defaultColorizer = format.Colorizer{
	ScalarColorCodes: [4][]byte{dimWhite, yellow, white, green},
	KeyColorCode:     brightBlue,
	ResetCode:        reset,
}
