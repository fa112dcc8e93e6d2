package params

import (
	"os"

	"gopkg.in/yaml.v3"
)

type fileSet struct {
	Name    string             `yaml:"name"`
	Scalars map[string]float64 `yaml:"scalars"`
	Current struct {
		Times    []float64 `yaml:"times"`
		Currents []float64 `yaml:"currents"`
	} `yaml:"current_profile"`
}

// Clone returns an independent copy of the set; closures are shared
// since they are immutable.
func (s *Set) Clone() *Set {
	c := NewSet(s.name)
	for k, v := range s.scalars {
		c.scalars[k] = v
	}
	for k, v := range s.funcs {
		c.funcs[k] = v
	}
	c.current = s.current
	return c
}

// Load applies YAML overrides from path on top of a copy of base.
func Load(path string, base *Set) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileSet
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	out := base.Clone()
	if f.Name != "" {
		out.name = f.Name
	}
	for k, v := range f.Scalars {
		out.SetScalar(k, v)
	}
	if len(f.Current.Times) > 0 {
		out.SetCurrentProfile(f.Current.Times, f.Current.Currents)
	}
	return out, nil
}

// Save writes the scalar parameters of a set as a YAML override file.
func Save(path string, s *Set) error {
	f := fileSet{Name: s.name, Scalars: s.scalars}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
