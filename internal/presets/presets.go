// Package presets holds the built-in catalog of named rule tables.
package presets

import (
	"errors"
	"fmt"

	"turmites/internal/rules"
)

// ErrUnknownPreset is returned when a key is not in the catalog.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named, read-only rule table.
type Preset struct {
	Key   string
	Name  string
	table rules.Table
}

// Rules returns a copy of the preset's table so callers may mutate it freely.
func (p Preset) Rules() rules.Table { return p.table.Clone() }

var (
	catalog = map[string]Preset{}
	order   []string
)

// Register adds a preset under key. Later registrations replace earlier ones
// but keep their original position.
func Register(key, name string, t rules.Table) {
	if key == "" || len(t) == 0 {
		return
	}
	if _, ok := catalog[key]; !ok {
		order = append(order, key)
	}
	catalog[key] = Preset{Key: key, Name: name, table: t.Clone()}
}

// Lookup returns the preset registered under key.
func Lookup(key string) (Preset, error) {
	p, ok := catalog[key]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return p, nil
}

// All returns the presets in registration order.
func All() []Preset {
	out := make([]Preset, 0, len(order))
	for _, k := range order {
		out = append(out, catalog[k])
	}
	return out
}

// Keys returns preset keys in registration order.
func Keys() []string {
	return append([]string(nil), order...)
}
