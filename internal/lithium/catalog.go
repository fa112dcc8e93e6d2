package lithium

import (
	"fmt"
	"sort"

	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
)

// Catalog maps model names to their assembly functions.
type Catalog struct {
	builders map[string]func(*params.Set) (*model.Model, error)
}

func NewCatalog() *Catalog {
	c := &Catalog{builders: make(map[string]func(*params.Set) (*model.Model, error))}
	c.builders["spm"] = NewSPM
	c.builders["spme"] = NewSPMe
	return c
}

// Build assembles the named model with the given parameter set.
func (c *Catalog) Build(name string, p *params.Set) (*model.Model, error) {
	fn, ok := c.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(p)
}

func (c *Catalog) List() []string {
	names := make([]string, 0, len(c.builders))
	for name := range c.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
