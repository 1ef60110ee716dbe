package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xcfix-labs/xcfix/internal/rules"
)

func init() {
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate patch rule files",
	Long: `A rule file names a target and, per build setting, the tokens to remove:

  name: strip-pods-framework
  requires: ">= 0.1.0"
  target: Runner
  patches:
    - setting: OTHER_LDFLAGS
      remove: ["-framework", "Pods_Runner"]`,
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a rule file against the rule schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateRuleFile(cmd.OutOrStdout(), args[0])
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a rule file, or the built-in rule, as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rule := rules.Default()
		if len(args) > 0 {
			loaded, err := rules.Load(args[0])
			if err != nil {
				return err
			}
			rule = loaded
		}
		data, err := rules.Marshal(rule)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func validateRuleFile(w io.Writer, path string) error {
	fmt.Fprintf(w, "Rule validation: %s\n", path)

	result, err := rules.ValidateFile(path)
	if err != nil {
		printFail(w, "%v", err)
		return &reportedError{err: fmt.Errorf("rule validation failed: %w", err)}
	}

	if !result.Valid {
		printFail(w, "%d validation issue(s):", len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(w, "    - %s\n", issue.Message)
			}
		}
		return &reportedError{err: fmt.Errorf("rule %s has %d validation issue(s)", path, len(result.Issues))}
	}

	rule, err := rules.Load(path)
	if err != nil {
		printFail(w, "%v", err)
		return &reportedError{err: err}
	}
	if err := rule.CheckVersion(buildVersion); err != nil {
		printWarn(w, "%v", err)
	}
	printOK(w, "Valid rule: %s (target %s, %d patch(es))", rule.Name, rule.Target, len(rule.Patches))
	return nil
}
