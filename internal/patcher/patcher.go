package patcher

import (
	"errors"
	"fmt"

	"github.com/xcfix-labs/xcfix/internal/pbxproj"
	"github.com/xcfix-labs/xcfix/internal/platform"
	"github.com/xcfix-labs/xcfix/internal/rules"
)

// ErrTargetNotFound is returned when the project has no target with the
// rule's name. The descriptor is left untouched in that case.
var ErrTargetNotFound = errors.New("target not found")

// Status describes what happened to one setting of one configuration.
type Status string

const (
	StatusPatched     Status = "patched"      // tokens were removed
	StatusUnchanged   Status = "unchanged"    // list present, nothing to remove
	StatusMissing     Status = "missing"      // setting absent, left absent
	StatusNotSequence Status = "not-sequence" // scalar value, left as is
)

// Options controls how Run persists the result.
type Options struct {
	DryRun bool // compute the result but never write
	Backup bool // copy the descriptor to <file>.bak before writing
}

// ConfigResult records the outcome for one (configuration, setting) pair.
type ConfigResult struct {
	Configuration string
	Setting       string
	Status        Status
	Before        []string
	After         []string
	Removed       []string
}

// Result summarizes a patch run.
type Result struct {
	Path           string // resolved project.pbxproj path
	Project        string // bundle display name, e.g. Runner.xcodeproj
	Target         string
	Configurations []ConfigResult
	Written        bool
	BackupPath     string
}

// RemovedCount returns the total number of tokens removed.
func (r *Result) RemovedCount() int {
	n := 0
	for _, c := range r.Configurations {
		n += len(c.Removed)
	}
	return n
}

// Changed reports whether any token was removed.
func (r *Result) Changed() bool {
	return r.RemovedCount() > 0
}

// Run loads the descriptor at path, applies rule, and writes the descriptor
// back unless opts.DryRun is set. The file is rewritten even when nothing
// was removed. When the target is missing, ErrTargetNotFound is returned and
// nothing is written.
func Run(path string, rule *rules.Rule, opts Options) (*Result, error) {
	file := pbxproj.ResolvePath(path)

	project, err := pbxproj.Load(file)
	if err != nil {
		return nil, err
	}

	result, err := Apply(project, rule)
	if err != nil {
		return nil, err
	}
	result.Path = file
	result.Project = pbxproj.DisplayName(file)

	if opts.DryRun {
		return result, nil
	}

	if opts.Backup {
		backup, err := platform.Backup(file)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backup
	}

	if err := project.Save(file); err != nil {
		return nil, err
	}
	result.Written = true
	return result, nil
}

// Apply removes the rule's tokens from every build configuration of the
// rule's target in project.
func Apply(project *pbxproj.Project, rule *rules.Rule) (*Result, error) {
	target, err := project.FindTarget(rule.Target)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, rule.Target)
	}

	configs, err := target.BuildConfigurations()
	if err != nil {
		return nil, err
	}

	result := &Result{Target: target.Name}
	for _, cfg := range configs {
		for _, p := range rule.Patches {
			cr, err := applyPatch(cfg, p)
			if err != nil {
				return nil, err
			}
			result.Configurations = append(result.Configurations, cr)
		}
	}
	return result, nil
}

func applyPatch(cfg *pbxproj.BuildConfiguration, p rules.Patch) (ConfigResult, error) {
	cr := ConfigResult{Configuration: cfg.Name, Setting: p.Setting}

	if !cfg.HasSetting(p.Setting) {
		cr.Status = StatusMissing
		return cr, nil
	}

	before, err := cfg.StringList(p.Setting)
	if errors.Is(err, pbxproj.ErrNotSequence) {
		cr.Status = StatusNotSequence
		return cr, nil
	}
	if err != nil {
		return cr, err
	}

	after, removed := RemoveTokens(before, p.Remove)
	cr.Before = before
	cr.After = after
	cr.Removed = removed
	if len(removed) == 0 {
		cr.Status = StatusUnchanged
		return cr, nil
	}

	cfg.SetStringList(p.Setting, after)
	cr.Status = StatusPatched
	return cr, nil
}

// RemoveTokens returns tokens without any element equal to one of remove,
// keeping the order of the rest, plus the removed elements in the order they
// were found. Matching is whole-token; substrings are never touched.
func RemoveTokens(tokens, remove []string) (kept, removed []string) {
	drop := make(map[string]bool, len(remove))
	for _, r := range remove {
		drop[r] = true
	}

	kept = make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if drop[tok] {
			removed = append(removed, tok)
			continue
		}
		kept = append(kept, tok)
	}
	return kept, removed
}
