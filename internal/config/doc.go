// Package config manages user-level settings stored at ~/.xcfix/config.yaml.
// Values can be overridden with XCFIX_* environment variables. It provides
// functions to load, read, and write keys such as the default project path
// and target name used by the patch command.
package config
