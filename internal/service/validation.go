package service

import (
	"fmt"
	"strings"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/enrichment"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
)

const maxPageLimit = 1000

func normalizePage(p repository.Page) repository.Page {
	p = p.Sanitize()
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

// IsValidGameKey accepts non-blank keys without surrounding whitespace.
func IsValidGameKey(key string) bool {
	return key != "" && strings.TrimSpace(key) == key
}

func validateGames(games model.RawGames) []FieldError {
	if len(games) == 0 {
		return []FieldError{{Field: "games", Message: "must not be empty"}}
	}
	var ferrs []FieldError
	seen := make(map[string]struct{}, len(games))
	for i, g := range games {
		if !IsValidGameKey(g.Key) {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("games[%d]", i), Message: "key must be non-blank and trimmed"})
			continue
		}
		if _, dup := seen[g.Key]; dup {
			ferrs = append(ferrs, FieldError{Field: "games." + g.Key, Message: "duplicate game key"})
		}
		seen[g.Key] = struct{}{}
	}
	return ferrs
}

func validateEnrichments(reg *enrichment.Registry, names []string) []FieldError {
	var ferrs []FieldError
	for i, name := range names {
		if _, err := reg.Lookup(name); err != nil {
			ferrs = append(ferrs, FieldError{
				Field:   fmt.Sprintf("enrichments[%d]", i),
				Message: fmt.Sprintf("unknown enrichment %q, expected one of %s", name, strings.Join(reg.Names(), "|")),
			})
		}
	}
	return ferrs
}
