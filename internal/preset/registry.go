package preset

import (
	"fmt"
	"os"
	"sort"
)

// Registry holds loaded presets indexed by name.
type Registry struct {
	byName  map[string]*Preset
	presets []Preset
}

// NewRegistry builds a registry from a list of presets. The first preset
// with a given name wins.
func NewRegistry(presets []Preset) *Registry {
	r := &Registry{
		byName:  make(map[string]*Preset, len(presets)),
		presets: presets,
	}
	for i := range r.presets {
		if _, dup := r.byName[r.presets[i].Name]; !dup {
			r.byName[r.presets[i].Name] = &r.presets[i]
		}
	}
	return r
}

// Get returns the preset with the given name.
func (r *Registry) Get(name string) (*Preset, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Names returns preset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns presets sorted by name.
func (r *Registry) Presets() []*Preset {
	out := make([]*Preset, 0, len(r.byName))
	for _, name := range r.Names() {
		out = append(out, r.byName[name])
	}
	return out
}

// Resolve accepts a preset name or a path to a filter script file.
// Existing files take precedence over names.
func (r *Registry) Resolve(ref string) (*Preset, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return LoadFile(ref)
	}
	if p, ok := r.Get(ref); ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown preset %q (available: %v)", ref, r.Names())
}
