package enrichment

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// NameAddPrevPlayName is the configuration key of AddPrevPlayName.
const NameAddPrevPlayName = "add_prev_play_name"

// Registry maps configuration names to enrichment constructors.
type Registry struct {
	byName map[string]func() Enrichment
}

// DefaultRegistry knows the built-in enrichments.
func DefaultRegistry() *Registry {
	return &Registry{byName: map[string]func() Enrichment{
		NameAddPrevPlayName: func() Enrichment { return AddPrevPlayName{} },
	}}
}

// Lookup builds the enrichment registered under name.
func (r *Registry) Lookup(name string) (Enrichment, error) {
	ctor, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnrichment, name)
	}
	return ctor(), nil
}

// Names lists registered names, sorted.
func (r *Registry) Names() []string {
	names := lo.Keys(r.byName)
	sort.Strings(names)
	return names
}
