package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Styles used for the banners of the different message severities.
var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	errorStyleBG.Print("Internal Compiler Error")
	errorColorFG.Println(" " + message)
	fmt.Print("This error was not supposed to happen: please open an issue on GitHub\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + message + "\n")
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the banner to prefix the message with: eg. for a mutability error the label
// is "Mutability Error".
func displayCompileMessage(label string, isError bool, absPath, reprPath string, span *TextSpan, message string) {
	if isError {
		errorStyleBG.Print(label)
	} else {
		warnStyleBG.Print(label)
	}

	if span == nil {
		fmt.Printf(" %s: %s\n\n", reprPath, message)
	} else {
		fmt.Printf(" %s:%d:%d: %s\n\n", reprPath, span.StartLine+1, span.StartCol+1, message)
		displaySourceText(absPath, span, isError)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	errorStyleBG.Print("Error")
	fmt.Printf(" %s: %s\n\n", reprPath, err)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span
// with the erroneous text underlined by carrets.
func displaySourceText(absPath string, span *TextSpan, isError bool) {
	// Open the file so we can read the desired source text.
	file, err := os.Open(absPath)
	if err != nil {
		// The file may legitimately be gone by the time the error displays
		// (eg. analysis of in-memory sources): just skip the excerpt.
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if err := sc.Err(); err != nil {
		return
	}

	// Calculate the minimum line indentation so the excerpt can be shifted
	// left as a block.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Generate the format string for line numbers, padded so that the
	// separator bars line up down the excerpt.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and at
		// column zero on every continuation line.
		var carretPrefixCount int
		if i == 0 {
			carretPrefixCount = span.StartCol - minIndent
		}

		// Underlining runs to the end of every line except the last, where it
		// stops at the end column.
		var carretSuffixCount int
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol
		}

		fmt.Print(strings.Repeat(" ", carretPrefixCount))

		carrets := strings.Repeat("^", len(line)-carretSuffixCount-carretPrefixCount-minIndent)
		if isError {
			errorColorFG.Println(carrets)
		} else {
			warnColorFG.Println(carrets)
		}
	}

	fmt.Println()
}
