// Package cli defines the Cobra command tree for the xcfix CLI. Each file
// in this package registers one top-level command (patch, targets, rules,
// config, version) with the root command. Command implementations delegate
// to internal packages for the actual work and only handle flag parsing,
// status output, and exit behaviour.
package cli
