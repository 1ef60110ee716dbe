package rules

import "strings"

// Default values of the built-in rule.
const (
	DefaultName    = "strip-pods-framework"
	DefaultTarget  = "Runner"
	DefaultSetting = "OTHER_LDFLAGS"
)

// DefaultRemove lists the tokens the built-in rule strips.
var DefaultRemove = []string{"-framework", "Pods_Runner"}

// Rule describes which tokens to remove from which settings of a target.
type Rule struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Requires    string  `yaml:"requires,omitempty" json:"requires,omitempty"`
	Target      string  `yaml:"target" json:"target"`
	Patches     []Patch `yaml:"patches" json:"patches"`
}

// Patch strips Remove tokens from one build setting.
type Patch struct {
	Setting string   `yaml:"setting" json:"setting"`
	Remove  []string `yaml:"remove" json:"remove"`
}

// Default returns a fresh copy of the built-in rule.
func Default() *Rule {
	return &Rule{
		Name:        DefaultName,
		Description: "Remove the -framework Pods_Runner link flags from the Runner target",
		Target:      DefaultTarget,
		Patches: []Patch{{
			Setting: DefaultSetting,
			Remove:  append([]string(nil), DefaultRemove...),
		}},
	}
}

// Tokens returns every removal token across all patches, deduplicated, in
// first-seen order.
func (r *Rule) Tokens() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.Patches {
		for _, tok := range p.Remove {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	return out
}

// Summary renders the removal tokens space-separated, e.g.
// "-framework Pods_Runner".
func (r *Rule) Summary() string {
	return strings.Join(r.Tokens(), " ")
}
