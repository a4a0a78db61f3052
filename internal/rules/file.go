package rules

import (
	"fmt"
	"os"
)

// DefaultFileName is the file name used when exporting without a path.
const DefaultFileName = "turmite_rule.json"

// SaveFile writes t as indented JSON.
func SaveFile(path string, t Table) error {
	if path == "" {
		path = DefaultFileName
	}
	if err := t.Validate().Err(); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	data, err := indentJSON(t)
	if err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	return nil
}

// LoadFile reads a rule table from path. Comment headers are accepted so a
// file saved from the rule editor loads as-is.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	t, err := ParseText(string(data))
	if err != nil {
		return nil, fmt.Errorf("load rules %s: %w", path, err)
	}
	return t, nil
}
