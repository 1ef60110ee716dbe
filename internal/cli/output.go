package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	okTag   = color.New(color.FgGreen, color.Bold).Sprint
	failTag = color.New(color.FgRed, color.Bold).Sprint
	warnTag = color.New(color.FgYellow).Sprint
	skipTag = color.New(color.Faint).Sprint

	// printer formats counts for status lines.
	printer = message.NewPrinter(language.English)
)

// Count messages with registered plural forms.
const (
	msgTokens         = "%d tokens"
	msgConfigurations = "%d configurations"
)

func init() {
	message.Set(language.English, msgTokens,
		plural.Selectf(1, "%d",
			plural.One, "%[1]d token",
			plural.Other, "%[1]d tokens",
		))
	message.Set(language.English, msgConfigurations,
		plural.Selectf(1, "%d",
			plural.One, "%[1]d configuration",
			plural.Other, "%[1]d configurations",
		))
}

// reportedError wraps an error whose status line has already been printed,
// so Execute does not print it a second time.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func printOK(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", okTag("[ OK ]"), fmt.Sprintf(format, args...))
}

func printFail(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", failTag("[FAIL]"), fmt.Sprintf(format, args...))
}

func printWarn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", warnTag("[WARN]"), fmt.Sprintf(format, args...))
}

func printSkip(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", skipTag("[SKIP]"), fmt.Sprintf(format, args...))
}
