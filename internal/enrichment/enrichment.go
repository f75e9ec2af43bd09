// Package enrichment holds pure transformations applied to raw game documents
// before they are loaded. Enrichments add fields the loader later maps onto model.Play.
package enrichment

import (
	"errors"
	"fmt"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

// ErrUnknownEnrichment is returned when a name has no registered implementation.
var ErrUnknownEnrichment = errors.New("unknown enrichment")

// Enrichment rewrites one raw game document. Implementations must not mutate their input.
type Enrichment interface {
	Name() string
	Apply(raw model.RawGame) (model.RawGame, error)
}

// Func adapts a plain function to Enrichment.
type Func struct {
	Label string
	Fn    func(model.RawGame) (model.RawGame, error)
}

func (f Func) Name() string { return f.Label }

func (f Func) Apply(raw model.RawGame) (model.RawGame, error) { return f.Fn(raw) }

// Chain is an ordered list of enrichments. Later entries see the output of earlier ones;
// there is no dependency resolution between them.
type Chain struct {
	steps []Enrichment
}

// NewChain returns a chain holding steps in order.
func NewChain(steps ...Enrichment) *Chain {
	return &Chain{steps: append([]Enrichment(nil), steps...)}
}

// Add appends e to the chain.
func (c *Chain) Add(e Enrichment) {
	c.steps = append(c.steps, e)
}

// AddByName resolves name through reg and appends the result.
// On an unknown name the chain is left unchanged.
func (c *Chain) AddByName(reg *Registry, name string) error {
	e, err := reg.Lookup(name)
	if err != nil {
		return err
	}
	c.Add(e)
	return nil
}

// Len is the number of registered steps.
func (c *Chain) Len() int { return len(c.steps) }

// Names lists step names in application order.
func (c *Chain) Names() []string {
	out := make([]string, len(c.steps))
	for i, s := range c.steps {
		out[i] = s.Name()
	}
	return out
}

// Apply folds every step over raw in registration order.
func (c *Chain) Apply(raw model.RawGame) (model.RawGame, error) {
	res := raw
	for _, step := range c.steps {
		next, err := step.Apply(res)
		if err != nil {
			return nil, fmt.Errorf("enrichment %s: %w", step.Name(), err)
		}
		res = next
	}
	return res, nil
}
