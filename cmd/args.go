package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"
)

const usage = `Usage: emojicodec [flags|options] <path to package directory>

Flags:
------
-h, --help      Displays usage information (ie. this text).
-v, --version   Displays the current compiler version.
-n, --no-cache  Disables reading and writing the package metadata cache.

Options:
--------
-o,  --outpath    Sets the path for the generated LLVM IR file.  Defaults to
                  <package name>.ll inside the package directory.
-r,  --report     Sets the path for the JSON package documentation report.
                  No report is generated if unspecified.
-ll, --loglevel   Sets the compiler's log-level.  Valid values are:
                    - "verbose" for outputting all messages (default)
                    - "warn" for outputting errors and warnings
                    - "error" for outputting errors only
                    - "silent" for no output
`

// Prints the usage message and exits the compiler with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":         {},
	"r":         {},
	"ll":        {},
	"-outpath":  {},
	"-report":   {},
	"-loglevel": {},
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument.  If this argument is positional, this
// value is empty.  The second value is the value of the argument.  If this
// value is empty, the argument is a flag.  The final value indicates whether
// or not there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx < len(ap.args) {
		arg := ap.args[ap.ndx]
		ap.ndx++

		if strings.HasPrefix(arg, "-") { // flag or option
			name := arg[1:]

			if _, ok := options[name]; ok { // option
				// Make sure the option value exists.
				if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
					value := ap.args[ap.ndx]
					ap.ndx++
					return name, value, true
				} else {
					argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
				}
			} else { // flag
				return name, "", true
			}
		} else { // positional
			return "", arg, true
		}
	}

	// No arguments to parse.
	return "", "", false
}

// useArg attempts to use a single command-line argument to initialize the
// compiler.  If the argument is invalid, the program will exit.
func useArg(c *Compiler, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println("emojicodec v" + common.CompilerVersion)
		os.Exit(0)
	case "n", "-no-cache":
		c.noCache = true
	case "ll", "-loglevel":
		{
			var logLevel int
			switch value {
			case "silent":
				logLevel = report.LogLevelSilent
			case "error":
				logLevel = report.LogLevelError
			case "warn":
				logLevel = report.LogLevelWarn
			case "verbose":
				logLevel = report.LogLevelVerbose
			default:
				argumentError("invalid log level")
			}

			report.InitReporter(logLevel)
		}
	case "o", "-outpath":
		{
			absPath, err := filepath.Abs(value)
			if err != nil {
				argumentError("invalid output path: %s", value)
			}

			c.outputPath = absPath
		}
	case "r", "-report":
		{
			absPath, err := filepath.Abs(value)
			if err != nil {
				argumentError("invalid report path: %s", value)
			}

			c.reportPath = absPath
		}
	case "":
		if c.rootPath == "" {
			absPath, err := filepath.Abs(value)
			if err != nil {
				argumentError("invalid package path: %s", value)
			}

			c.rootPath = absPath
		} else {
			argumentError("package path specified multiple times")
		}
	default:
		argumentError("unknown flag: %s", name)
	}
}

// NewCompilerFromArgs creates a new compiler instance based on the given
// command line arguments if the arguments are valid and compilation should
// continue: ie. if the user requests the compiler version, then compilation
// should not continue.
func NewCompilerFromArgs() *Compiler {
	c := &Compiler{}

	ap := argParser{args: os.Args[1:], ndx: 0}

	// Parse all command line arguments.
	for {
		if name, value, ok := ap.nextArg(); ok {
			useArg(c, name, value)
		} else {
			break
		}
	}

	// Check to make sure a package path was specified.
	if c.rootPath == "" {
		argumentError("a package path must be specified")
	}

	return c
}
