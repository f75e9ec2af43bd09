// Package loader turns raw per-game documents into model.Game values.
package loader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/rawdata"
)

// ErrMalformedGame is returned when a game document cannot be walked at all.
// Missing fields are not malformed; they load as nil.
var ErrMalformedGame = errors.New("malformed game document")

// Raw keys mapped onto model.Play fields. Adding a field to model.Play means adding its key here,
// otherwise the value lands in Play.Other.
const (
	KeyEventID               = "eventId"
	KeyHomeTeamDefendingSide = "homeTeamDefendingSide"
	KeyPeriodDescriptor      = "periodDescriptor"
	KeySortOrder             = "sortOrder"
	KeyTimeInPeriod          = "timeInPeriod"
	KeyTimeRemaining         = "timeRemaining"
	KeyTypeCode              = "typeCode"
	KeyTypeDescKey           = "typeDescKey"
	KeyPrevDescKey           = "prevDescKey"
	KeyPrevTypeCode          = "prevTypeCode"
)

// CoreKeys is the partition key set of LoadPlay.
var CoreKeys = []string{
	KeyEventID,
	KeyHomeTeamDefendingSide,
	KeyPeriodDescriptor,
	KeySortOrder,
	KeyTimeInPeriod,
	KeyTimeRemaining,
	KeyTypeCode,
	KeyTypeDescKey,
	KeyPrevDescKey,
	KeyPrevTypeCode,
}

var coreKeySet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(CoreKeys))
	for _, k := range CoreKeys {
		s[k] = struct{}{}
	}
	return s
}()

// IsCoreKey reports whether key is mapped onto a model.Play field.
func IsCoreKey(key string) bool {
	_, ok := coreKeySet[key]
	return ok
}

// LoadPlay builds a Play from one raw play record.
func LoadPlay(raw map[string]any) model.Play {
	p := model.Play{
		EventID:               rawdata.Int64Ptr(raw, KeyEventID),
		HomeTeamDefendingSide: rawdata.StringPtr(raw, KeyHomeTeamDefendingSide),
		PeriodDescriptor:      loadPeriod(raw),
		SortOrder:             rawdata.Int64Ptr(raw, KeySortOrder),
		TimeInPeriod:          rawdata.StringPtr(raw, KeyTimeInPeriod),
		TimeRemaining:         rawdata.StringPtr(raw, KeyTimeRemaining),
		TypeCode:              rawdata.IntPtr(raw, KeyTypeCode),
		TypeDescKey:           rawdata.StringPtr(raw, KeyTypeDescKey),
		PrevDescKey:           rawdata.StringPtr(raw, KeyPrevDescKey),
		PrevTypeCode:          rawdata.IntPtr(raw, KeyPrevTypeCode),
		Other:                 make(map[string]any, len(raw)),
	}
	for k, v := range raw {
		if !IsCoreKey(k) {
			p.Other[k] = v
		}
	}
	return p
}

func loadPeriod(raw map[string]any) *model.PeriodDescriptor {
	pd, ok := rawdata.Map(raw, KeyPeriodDescriptor)
	if !ok {
		return nil
	}
	return &model.PeriodDescriptor{
		Number:               rawdata.IntPtr(pd, "number"),
		PeriodType:           rawdata.StringPtr(pd, "periodType"),
		MaxRegulationPeriods: rawdata.IntPtr(pd, "maxRegulationPeriods"),
	}
}

// LoadGame builds a Game from its raw document. The key is supplied by the caller,
// it is never read from inside the document.
func LoadGame(key string, raw model.RawGame) (model.Game, error) {
	g := model.Game{Key: key}
	g.HomeTeam, _ = rawdata.Map(raw, "homeTeam")
	g.AwayTeam, _ = rawdata.Map(raw, "awayTeam")

	rawPlays, present := raw["plays"]
	if !present || rawPlays == nil {
		return g, nil
	}
	list, ok := rawPlays.([]any)
	if !ok {
		return model.Game{}, fmt.Errorf("%w: game %s: plays is %T, want array", ErrMalformedGame, key, rawPlays)
	}
	g.Plays = make([]model.Play, 0, len(list))
	for i, item := range list {
		rp, ok := item.(map[string]any)
		if !ok {
			return model.Game{}, fmt.Errorf("%w: game %s: play %d is %T, want object", ErrMalformedGame, key, i, item)
		}
		g.Plays = append(g.Plays, LoadPlay(rp))
	}
	sortPlays(g.Plays)
	return g, nil
}

// sortPlays orders plays by sortOrder, keeping array order for ties.
// A game with any play missing sortOrder keeps array order, matching the enrichment chain.
func sortPlays(plays []model.Play) {
	for _, p := range plays {
		if p.SortOrder == nil {
			return
		}
	}
	sort.SliceStable(plays, func(a, b int) bool { return *plays[a].SortOrder < *plays[b].SortOrder })
}
