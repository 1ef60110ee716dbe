package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xcfix-labs/xcfix/internal/branding"
	"github.com/xcfix-labs/xcfix/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` rewrites generated Xcode project files in place. Its default
rule strips the "-framework Pods_Runner" linker flags from every build
configuration of the Runner target.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if noColor || config.GetBool(config.KeyNoColor) {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

// Execute runs the root command with build info injected via ldflags.
// Errors not already reported by a command are printed to stderr.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}
