package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xcfix-labs/xcfix/internal/config"
	"github.com/xcfix-labs/xcfix/internal/patcher"
	"github.com/xcfix-labs/xcfix/internal/rules"
)

var (
	patchTarget  string
	patchSetting string
	patchRemove  []string
	patchRules   string
	patchDryRun  bool
	patchCheck   bool
	patchBackup  bool
)

// errWouldChange is returned by --check when tokens would be removed.
var errWouldChange = errors.New("project would change")

func init() {
	patchCmd.Flags().StringVar(&patchTarget, "target", "", "Target to patch (default from config, Runner)")
	patchCmd.Flags().StringVar(&patchSetting, "setting", rules.DefaultSetting, "Build setting holding the tokens")
	patchCmd.Flags().StringSliceVar(&patchRemove, "remove", rules.DefaultRemove, "Tokens to remove (comma-separated or repeated)")
	patchCmd.Flags().StringVar(&patchRules, "rules", "", "Rule file replacing the built-in rule")
	patchCmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "Show what would change without writing")
	patchCmd.Flags().BoolVar(&patchCheck, "check", false, "Exit non-zero if the project would change; never writes")
	patchCmd.Flags().BoolVar(&patchBackup, "backup", false, "Copy the project file to <file>.bak before writing")
	rootCmd.AddCommand(patchCmd)
}

var patchCmd = &cobra.Command{
	Use:   "patch [project]",
	Short: "Remove linker flags from a target's build configurations",
	Long: `Remove tokens from a build setting in every build configuration of a target,
then write the project back in place.

The project is a .xcodeproj bundle or its project.pbxproj file. Without an
argument the configured project is used (default ios/Runner.xcodeproj).

Example:
  xcfix patch
  xcfix patch ios/Runner.xcodeproj --backup
  xcfix patch --target App --remove=-framework,Pods_App
  xcfix patch --rules strip.yaml --check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatch,
}

// ruleOverrides carries the command-line values that replace parts of the
// loaded rule. Empty fields keep the rule's value.
type ruleOverrides struct {
	Target  string
	Setting string
	Remove  []string
}

func runPatch(cmd *cobra.Command, args []string) error {
	project := projectArg(args)

	rulesPath := patchRules
	if rulesPath == "" {
		rulesPath = config.Get(config.KeyRules)
	}

	var o ruleOverrides
	if cmd.Flags().Changed("target") {
		o.Target = patchTarget
	} else if rulesPath == "" {
		o.Target = config.Get(config.KeyTarget)
	}
	if cmd.Flags().Changed("setting") || cmd.Flags().Changed("remove") {
		o.Setting = patchSetting
		o.Remove = patchRemove
	}

	rule, err := loadRule(rulesPath, o)
	if err != nil {
		return err
	}
	if err := rule.CheckVersion(buildVersion); err != nil {
		return err
	}

	opts := patcher.Options{
		DryRun: patchDryRun || patchCheck,
		Backup: patchBackup || config.GetBool(config.KeyBackup),
	}
	return patchProject(cmd.OutOrStdout(), project, rule, opts, patchCheck)
}

// projectArg returns the project named on the command line or the
// configured default.
func projectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.Get(config.KeyProject)
}

// loadRule reads the rule at path, or the built-in rule when path is empty,
// and applies the overrides.
func loadRule(path string, o ruleOverrides) (*rules.Rule, error) {
	rule := rules.Default()
	if path != "" {
		loaded, err := rules.Load(path)
		if err != nil {
			return nil, err
		}
		rule = loaded
	}

	if o.Target != "" {
		rule.Target = o.Target
	}
	if o.Setting != "" || len(o.Remove) > 0 {
		setting := o.Setting
		if setting == "" {
			setting = rules.DefaultSetting
		}
		remove := o.Remove
		if len(remove) == 0 {
			remove = rules.DefaultRemove
		}
		rule.Patches = []rules.Patch{{Setting: setting, Remove: remove}}
	}
	return rule, nil
}

// patchProject runs the patcher and prints one status line per
// configuration followed by the overall outcome.
func patchProject(w io.Writer, project string, rule *rules.Rule, opts patcher.Options, check bool) error {
	result, err := patcher.Run(project, rule, opts)
	if errors.Is(err, patcher.ErrTargetNotFound) {
		printFail(w, "Could not find %s target", rule.Target)
		return &reportedError{err: err}
	}
	if err != nil {
		return err
	}

	printConfigResults(w, result)

	if check {
		if result.Changed() {
			printFail(w, "%s would change: %s", result.Project, removalSummary(result))
			return &reportedError{err: errWouldChange}
		}
		printOK(w, "%s is clean", result.Project)
		return nil
	}

	if !result.Written {
		printSkip(w, "Dry run: %s not written (%s)", result.Project, removalSummary(result))
		return nil
	}

	if result.BackupPath != "" {
		fmt.Fprintf(w, "Backup written to %s\n", result.BackupPath)
	}
	printOK(w, "Successfully modified %s to remove %s", result.Project, rule.Summary())
	return nil
}

func printConfigResults(w io.Writer, result *patcher.Result) {
	for _, c := range result.Configurations {
		label := fmt.Sprintf("%s/%s %s", result.Target, c.Configuration, c.Setting)
		switch c.Status {
		case patcher.StatusPatched:
			printOK(w, "%s: removed %s", label, strings.Join(c.Removed, " "))
		case patcher.StatusUnchanged:
			printSkip(w, "%s: nothing to remove", label)
		case patcher.StatusMissing:
			printSkip(w, "%s: not set", label)
		case patcher.StatusNotSequence:
			printWarn(w, "%s: not a list, left unchanged", label)
		}
	}
}

func removalSummary(result *patcher.Result) string {
	patched := 0
	for _, c := range result.Configurations {
		if c.Status == patcher.StatusPatched {
			patched++
		}
	}
	return printer.Sprintf(msgTokens, result.RemovedCount()) + " in " + printer.Sprintf(msgConfigurations, patched)
}
