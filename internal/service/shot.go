package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/enrichment"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/loader"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/preprocess"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/table"
)

type shotService struct {
	shots    repository.ShotRepository
	tx       repository.TxManager
	registry *enrichment.Registry
	strict   bool
	log      zerolog.Logger
}

// NewShotService wires the shot use cases. shots and tx may both be nil when no sink is configured;
// persisting and listing then fail with ErrSinkNotConfigured. A non-strict service skips games
// whose shots cannot be projected instead of failing the whole batch.
func NewShotService(shots repository.ShotRepository, tx repository.TxManager, strict bool, logger zerolog.Logger) ShotService {
	l := logger.With().Str("module", "service").Str("component", "shot").Logger()
	return &shotService{
		shots:    shots,
		tx:       tx,
		registry: enrichment.DefaultRegistry(),
		strict:   strict,
		log:      l,
	}
}

func (s *shotService) Enrichments() []string { return s.registry.Names() }

func (s *shotService) Preprocess(ctx context.Context, req PreprocessRequest) (PreprocessResult, error) {
	ferrs := validateGames(req.Games)
	ferrs = append(ferrs, validateEnrichments(s.registry, req.Enrichments)...)
	if req.Persist && s.shots == nil {
		ferrs = append(ferrs, FieldError{Field: "persist", Message: "no shot sink is configured"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("preprocess validation failed")
		return PreprocessResult{}, err
	}

	p := preprocess.New(
		preprocess.WithLoader(loader.NewPbPDataLoader()),
		preprocess.WithRegistry(s.registry),
		preprocess.WithLogger(s.log),
	)
	for _, name := range req.Enrichments {
		// names were validated above
		if err := p.AddEnrichmentByName(name); err != nil {
			return PreprocessResult{}, err
		}
	}

	var res PreprocessResult
	if s.strict {
		tbl, err := p.Format(req.Games)
		if err != nil {
			s.log.Error().Err(err).Int("games", len(req.Games)).Msg("preprocess failed")
			return PreprocessResult{}, err
		}
		res.Table = tbl
	} else {
		res.Table = &table.Table{}
		for _, entry := range req.Games {
			if err := ctx.Err(); err != nil {
				return PreprocessResult{}, err
			}
			tbl, err := p.Format(model.RawGames{entry})
			if err != nil {
				if errors.Is(err, preprocess.ErrLoaderNotConfigured) {
					return PreprocessResult{}, err
				}
				s.log.Warn().Err(err).Str("game", entry.Key).Msg("game skipped")
				res.Skipped = append(res.Skipped, SkippedGame{Key: entry.Key, Reason: err.Error()})
				continue
			}
			res.Table.Append(tbl.Rows...)
		}
	}

	if req.Persist {
		err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
			n, err := s.shots.SaveShots(ctx, res.Table.Rows)
			res.Persisted = n
			return err
		})
		if err != nil {
			s.log.Error().Err(err).Int("rows", res.Table.Len()).Msg("persist shots failed")
			return PreprocessResult{}, err
		}
	}

	s.log.Info().
		Int("games", len(req.Games)).
		Int("rows", res.Table.Len()).
		Int("skipped", len(res.Skipped)).
		Int("persisted", res.Persisted).
		Strs("enrichments", p.Enrichments()).
		Msg("preprocess finished")
	return res, nil
}

func (s *shotService) ListShots(ctx context.Context, gameKey string, page repository.Page) (repository.PageResult[model.ShotOnGoal], error) {
	if !IsValidGameKey(gameKey) {
		return repository.PageResult[model.ShotOnGoal]{}, newInvalidInput([]FieldError{{Field: "key", Message: "must be non-blank and trimmed"}})
	}
	if s.shots == nil {
		return repository.PageResult[model.ShotOnGoal]{}, ErrSinkNotConfigured
	}
	p := normalizePage(page)
	res, err := s.shots.ListByGame(ctx, gameKey, p)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("game", gameKey).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list shots failed")
		}
		return repository.PageResult[model.ShotOnGoal]{}, err
	}
	return res, nil
}
