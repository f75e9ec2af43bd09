// Package service holds use-case orchestration between the preprocessing core, the shot stores
// and the transports. Kept lean: request validation, error shaping and logging.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/table"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrSinkNotConfigured is returned by operations that need a shot store when none is wired.
var ErrSinkNotConfigured = errors.New("no shot sink configured")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// PreprocessRequest is one batch to turn into shot rows.
type PreprocessRequest struct {
	Games       model.RawGames
	Enrichments []string
	// Persist also writes the rows to the configured sink.
	Persist bool
}

// SkippedGame records a game dropped by a non-strict run.
type SkippedGame struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// PreprocessResult is the outcome of a batch.
type PreprocessResult struct {
	Table     *table.Table
	Skipped   []SkippedGame
	Persisted int
}

// ShotService defines the shot dataset use cases.
type ShotService interface {
	Preprocess(ctx context.Context, req PreprocessRequest) (PreprocessResult, error)
	ListShots(ctx context.Context, gameKey string, page repository.Page) (repository.PageResult[model.ShotOnGoal], error)
	Enrichments() []string
}
