// Package rules handles parsing and validation of xcfix patch rules. A rule
// names a target and, per build setting, the tokens to strip from it. Rule
// files are YAML, validated against the JSON schema embedded from
// schema/rule.schema.json. Default returns the built-in rule used when no
// file is given.
package rules
