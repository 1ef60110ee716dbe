package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xcfix-labs/xcfix/internal/pbxproj"
	"github.com/xcfix-labs/xcfix/internal/rules"
)

var (
	targetsSetting string
	targetsJSON    bool
)

func init() {
	targetsCmd.Flags().StringVar(&targetsSetting, "setting", rules.DefaultSetting, "Build setting to show per configuration")
	targetsCmd.Flags().BoolVar(&targetsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(targetsCmd)
}

var targetsCmd = &cobra.Command{
	Use:   "targets [project]",
	Short: "List targets, their build configurations, and a setting's value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := listTargets(projectArg(args), targetsSetting)
		if err != nil {
			return err
		}
		if targetsJSON {
			return printTargetsJSON(cmd.OutOrStdout(), entries)
		}
		return printTargetsTable(cmd.OutOrStdout(), entries)
	},
}

// targetEntry is one row of the targets listing.
type targetEntry struct {
	Target        string   `json:"target"`
	Type          string   `json:"type"`
	Configuration string   `json:"configuration"`
	Setting       string   `json:"setting"`
	Set           bool     `json:"set"`
	Value         []string `json:"value,omitempty"`
	Scalar        string   `json:"scalar,omitempty"`
}

func listTargets(project, setting string) ([]targetEntry, error) {
	p, err := pbxproj.Load(project)
	if err != nil {
		return nil, err
	}
	targets, err := p.Targets()
	if err != nil {
		return nil, err
	}

	var entries []targetEntry
	for _, t := range targets {
		configs, err := t.BuildConfigurations()
		if err != nil {
			return nil, err
		}
		for _, c := range configs {
			e := targetEntry{
				Target:        t.Name,
				Type:          t.ISA,
				Configuration: c.Name,
				Setting:       setting,
				Set:           c.HasSetting(setting),
			}
			tokens, err := c.StringList(setting)
			switch {
			case errors.Is(err, pbxproj.ErrNotSequence):
				v, _ := c.Setting(setting)
				e.Scalar = fmt.Sprint(v)
			case err != nil:
				return nil, err
			default:
				e.Value = tokens
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func printTargetsTable(w io.Writer, entries []targetEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	if len(entries) > 0 {
		fmt.Fprintf(tw, "TARGET\tCONFIGURATION\t%s\n", entries[0].Setting)
	}
	for _, e := range entries {
		value := "-"
		switch {
		case !e.Set:
		case e.Scalar != "":
			value = fmt.Sprintf("%q", e.Scalar)
		default:
			value = "(" + strings.Join(e.Value, " ") + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Target, e.Configuration, value)
	}
	return tw.Flush()
}

func printTargetsJSON(w io.Writer, entries []targetEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
