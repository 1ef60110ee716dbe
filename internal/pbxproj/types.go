package pbxproj

import (
	"errors"
	"fmt"
)

// Object isa values used when walking the object graph.
const (
	ISAProject            = "PBXProject"
	ISANativeTarget       = "PBXNativeTarget"
	ISAAggregateTarget    = "PBXAggregateTarget"
	ISALegacyTarget       = "PBXLegacyTarget"
	ISAConfigurationList  = "XCConfigurationList"
	ISABuildConfiguration = "XCBuildConfiguration"
)

// ErrNotSequence is returned when a build setting holds a scalar where a
// list of tokens was expected.
var ErrNotSequence = errors.New("setting is not a list")

// ParseError reports a descriptor that could not be read as a project.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing project %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Target is a named build unit within a project.
type Target struct {
	ID   string
	ISA  string
	Name string

	project *Project
	object  map[string]interface{}
}

// BuildConfiguration is a named variant (Debug, Release, ...) of a target's
// build settings.
type BuildConfiguration struct {
	ID   string
	Name string

	object map[string]interface{}
}
