package report

import "sync"

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized: its methods can be safely called from multiple
// goroutines compiling independent functions.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors detected so far.
	errorCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// rep is the global reporter instance.
var rep *Reporter

func init() {
	// The reporter defaults to verbose until the driver configures it so that
	// errors raised before argument parsing completes are never swallowed.
	rep = &Reporter{m: &sync.Mutex{}, logLevel: LogLevelVerbose}
}

// InitReporter initializes the global error reporter to the given log level.
func InitReporter(logLevel int) {
	rep = &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return rep.errorCount > 0
}

// ShouldProceed indicates whether or not there have been any non-fatal errors
// that should cause compilation to stop at the current phase.
func ShouldProceed() bool {
	return rep.errorCount == 0
}
