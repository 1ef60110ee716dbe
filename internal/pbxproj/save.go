package pbxproj

import (
	"fmt"

	"github.com/xcfix-labs/xcfix/internal/platform"
)

// Save encodes the project and overwrites the descriptor at path, keeping
// the file's permissions.
func (p *Project) Save(path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}

	file := ResolvePath(path)
	if err := platform.WriteFile(file, data); err != nil {
		return fmt.Errorf("writing project %s: %w", file, err)
	}
	return nil
}
