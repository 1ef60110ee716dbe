package pbxproj

import (
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"
)

const (
	bundleExt   = ".xcodeproj"
	projectFile = "project.pbxproj"

	// utf8Marker is the first line Xcode writes into every project file.
	utf8Marker = "// !$*UTF8*$!"
)

// Project is an in-memory project descriptor.
type Project struct {
	root    map[string]interface{}
	objects map[string]interface{}
	format  int
}

// ResolvePath maps a .xcodeproj bundle (or any directory) to the
// project.pbxproj inside it. File paths are returned unchanged.
func ResolvePath(path string) string {
	if filepath.Ext(path) == bundleExt {
		return filepath.Join(path, projectFile)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, projectFile)
	}
	return path
}

// DisplayName returns the bundle name for a descriptor path, e.g.
// "Runner.xcodeproj" for ios/Runner.xcodeproj/project.pbxproj.
func DisplayName(path string) string {
	file := ResolvePath(path)
	if filepath.Base(file) == projectFile {
		return filepath.Base(filepath.Dir(file))
	}
	return filepath.Base(file)
}

// Load reads and parses the descriptor at path. Read failures are returned
// wrapped; anything that is not a project is reported as a *ParseError.
func Load(path string) (*Project, error) {
	file := ResolvePath(path)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", file, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: file, Err: err}
	}
	return p, nil
}

// Parse decodes descriptor bytes.
func Parse(data []byte) (*Project, error) {
	var root map[string]interface{}
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("decoding property list: %w", err)
	}

	objects, ok := root["objects"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("missing 'objects' dictionary")
	}
	if _, ok := root["rootObject"].(string); !ok {
		return nil, fmt.Errorf("missing 'rootObject' reference")
	}

	// GNUstep output would add typed literals Xcode cannot read back.
	if format == plist.GNUStepFormat {
		format = plist.OpenStepFormat
	}

	return &Project{
		root:    root,
		objects: objects,
		format:  format,
	}, nil
}

// Encode serializes the project. Text projects are written by the package's
// own OpenStep writer; XML and binary input keep their format. Dictionary
// keys are written in a fixed order, so encoding the same content always
// yields the same bytes.
func (p *Project) Encode() (out []byte, err error) {
	if p.format == plist.OpenStepFormat {
		return encodeOpenStep(p.root)
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("encoding project: %v", r)
		}
	}()
	out, err = plist.MarshalIndent(p.root, p.format, "\t")
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return out, nil
}

// Targets returns the targets listed by the root project object, in the
// order the project declares them. Entries that are not native, aggregate,
// or legacy targets are skipped.
func (p *Project) Targets() ([]*Target, error) {
	rootID, _ := p.root["rootObject"].(string)
	rootObj, err := p.object(rootID, ISAProject)
	if err != nil {
		return nil, fmt.Errorf("resolving root object: %w", err)
	}

	ids, _ := rootObj["targets"].([]interface{})
	targets := make([]*Target, 0, len(ids))
	for _, raw := range ids {
		id, ok := raw.(string)
		if !ok {
			continue
		}
		obj, err := p.object(id, "")
		if err != nil {
			return nil, fmt.Errorf("resolving target: %w", err)
		}
		isa, _ := obj["isa"].(string)
		if !isTargetISA(isa) {
			continue
		}
		name, _ := obj["name"].(string)
		targets = append(targets, &Target{
			ID:      id,
			ISA:     isa,
			Name:    name,
			project: p,
			object:  obj,
		})
	}
	return targets, nil
}

func isTargetISA(isa string) bool {
	switch isa {
	case ISANativeTarget, ISAAggregateTarget, ISALegacyTarget:
		return true
	}
	return false
}

// FindTarget returns the target with exactly the given name, or nil.
func (p *Project) FindTarget(name string) (*Target, error) {
	targets, err := p.Targets()
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}

// object looks up id in the objects table and, when isa is non-empty,
// checks its type.
func (p *Project) object(id, isa string) (map[string]interface{}, error) {
	obj, ok := p.objects[id].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("object %q not found", id)
	}
	if isa != "" {
		if got, _ := obj["isa"].(string); got != isa {
			return nil, fmt.Errorf("object %q is %q, expected %q", id, got, isa)
		}
	}
	return obj, nil
}
