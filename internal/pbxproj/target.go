package pbxproj

import "fmt"

// BuildConfigurations returns the configurations attached to the target
// through its configuration list.
func (t *Target) BuildConfigurations() ([]*BuildConfiguration, error) {
	listID, ok := t.object["buildConfigurationList"].(string)
	if !ok {
		return nil, nil
	}
	list, err := t.project.object(listID, ISAConfigurationList)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", t.Name, err)
	}

	ids, _ := list["buildConfigurations"].([]interface{})
	configs := make([]*BuildConfiguration, 0, len(ids))
	for _, raw := range ids {
		id, ok := raw.(string)
		if !ok {
			continue
		}
		obj, err := t.project.object(id, ISABuildConfiguration)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Name, err)
		}
		name, _ := obj["name"].(string)
		configs = append(configs, &BuildConfiguration{ID: id, Name: name, object: obj})
	}
	return configs, nil
}

func (c *BuildConfiguration) settings() map[string]interface{} {
	s, _ := c.object["buildSettings"].(map[string]interface{})
	return s
}

// Setting returns the raw value of a build setting.
func (c *BuildConfiguration) Setting(key string) (interface{}, bool) {
	v, ok := c.settings()[key]
	return v, ok
}

// HasSetting reports whether key is present in the build settings.
func (c *BuildConfiguration) HasSetting(key string) bool {
	_, ok := c.Setting(key)
	return ok
}

// StringList returns a list-valued setting as tokens. It returns
// ErrNotSequence when the value is a scalar.
func (c *BuildConfiguration) StringList(key string) ([]string, error) {
	v, ok := c.Setting(key)
	if !ok {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s in %s: %w", key, c.Name, ErrNotSequence)
	}
	tokens := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s in %s: %w", key, c.Name, ErrNotSequence)
		}
		tokens = append(tokens, s)
	}
	return tokens, nil
}

// SetStringList replaces a setting with the given tokens. The buildSettings
// dictionary is created if the configuration has none.
func (c *BuildConfiguration) SetStringList(key string, tokens []string) {
	s := c.settings()
	if s == nil {
		s = make(map[string]interface{})
		c.object["buildSettings"] = s
	}
	items := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		items[i] = tok
	}
	s[key] = items
}
