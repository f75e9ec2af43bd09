// Package preprocess wires enrichment, loading, shot filtering and projection into a single
// pass that turns raw play-by-play documents into the xG training table.
package preprocess

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/enrichment"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/loader"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/shot"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/table"
)

// ErrLoaderNotConfigured is returned by Format when no loader was set.
var ErrLoaderNotConfigured = errors.New("preprocessor has no loader")

// Preprocessor builds the shot table for xG models. It is not safe for concurrent use:
// its loader accumulates state across Format calls.
type Preprocessor struct {
	loader   loader.Loader
	chain    *enrichment.Chain
	registry *enrichment.Registry
	log      zerolog.Logger
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithLoader sets the loader up front.
func WithLoader(l loader.Loader) Option {
	return func(p *Preprocessor) { p.loader = l }
}

// WithRegistry replaces the name lookup used by AddEnrichmentByName.
func WithRegistry(r *enrichment.Registry) Option {
	return func(p *Preprocessor) { p.registry = r }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Preprocessor) {
		p.log = l.With().Str("module", "preprocess").Str("component", "xg").Logger()
	}
}

// New returns a Preprocessor without a loader and with an empty enrichment chain.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		chain:    enrichment.NewChain(),
		registry: enrichment.DefaultRegistry(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Loader returns the configured loader, or nil.
func (p *Preprocessor) Loader() loader.Loader { return p.loader }

// SetLoader replaces the loader.
func (p *Preprocessor) SetLoader(l loader.Loader) { p.loader = l }

// AddEnrichment appends e to the chain.
func (p *Preprocessor) AddEnrichment(e enrichment.Enrichment) { p.chain.Add(e) }

// AddEnrichmentByName resolves name and appends it. Unknown names leave the chain as it was.
func (p *Preprocessor) AddEnrichmentByName(name string) error {
	return p.chain.AddByName(p.registry, name)
}

// Enrichments lists the chain in application order.
func (p *Preprocessor) Enrichments() []string { return p.chain.Names() }

// ApplyEnrichments runs the chain over one raw game.
func (p *Preprocessor) ApplyEnrichments(raw model.RawGame) (model.RawGame, error) {
	return p.chain.Apply(raw)
}

// Format enriches, loads, filters and projects raw. Rows follow the order of raw and, within a
// game, the play order. Only games loaded by this call contribute rows.
func (p *Preprocessor) Format(raw model.RawGames) (*table.Table, error) {
	if p.loader == nil {
		return nil, ErrLoaderNotConfigured
	}

	enriched := make(model.RawGames, 0, len(raw))
	for _, entry := range raw {
		doc, err := p.ApplyEnrichments(entry.Game)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", entry.Key, err)
		}
		enriched = append(enriched, model.RawGameEntry{Key: entry.Key, Game: doc})
	}

	games, err := p.loader.Load(enriched)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}

	out := &table.Table{}
	for _, g := range games {
		shots := shot.FilterShots(g)
		for _, play := range shots.Plays {
			sog, err := shot.Project(play)
			if err != nil {
				return nil, fmt.Errorf("game %s event %s: %w", g.Key, eventLabel(play), err)
			}
			out.Append(model.GameShot{GameKey: g.Key, Shot: sog})
		}
		p.log.Debug().
			Str("game", g.Key).
			Int("plays", len(g.Plays)).
			Int("shots", len(shots.Plays)).
			Msg("game formatted")
	}
	return out, nil
}

func eventLabel(play model.Play) string {
	if play.EventID == nil {
		return "<unknown>"
	}
	return strconv.FormatInt(*play.EventID, 10)
}
