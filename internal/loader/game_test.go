package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/loader"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

func rawPlay() map[string]any {
	return map[string]any{
		"eventId":               float64(102),
		"homeTeamDefendingSide": "left",
		"periodDescriptor":      map[string]any{"number": float64(1), "periodType": "REG", "maxRegulationPeriods": float64(3)},
		"sortOrder":             float64(11),
		"timeInPeriod":          "00:25",
		"timeRemaining":         "19:35",
		"typeCode":              float64(506),
		"typeDescKey":           "shot-on-goal",
		"situationCode":         "1551",
		"details":               map[string]any{"xCoord": float64(-61), "eventOwnerTeamId": float64(22)},
	}
}

func TestLoadPlay_Partition(t *testing.T) {
	raw := rawPlay()
	p := loader.LoadPlay(raw)

	require.NotNil(t, p.EventID)
	assert.Equal(t, int64(102), *p.EventID)
	assert.Equal(t, "left", *p.HomeTeamDefendingSide)
	require.NotNil(t, p.PeriodDescriptor)
	assert.Equal(t, 1, *p.PeriodDescriptor.Number)
	assert.Equal(t, "REG", *p.PeriodDescriptor.PeriodType)
	assert.Equal(t, 3, *p.PeriodDescriptor.MaxRegulationPeriods)
	assert.Equal(t, int64(11), *p.SortOrder)
	assert.Equal(t, "00:25", *p.TimeInPeriod)
	assert.Equal(t, "19:35", *p.TimeRemaining)
	assert.Equal(t, 506, *p.TypeCode)
	assert.Equal(t, "shot-on-goal", p.Type())

	// every non-core key is kept verbatim and nothing core leaks into Other
	assert.Equal(t, map[string]any{
		"situationCode": "1551",
		"details":       raw["details"],
	}, p.Other)
	for k := range raw {
		_, inOther := p.Other[k]
		assert.NotEqual(t, loader.IsCoreKey(k), inOther, "key %s", k)
	}
}

func TestLoadPlay_MissingCoreFieldsAreNil(t *testing.T) {
	p := loader.LoadPlay(map[string]any{"typeDescKey": "faceoff", "extra": true})

	assert.Nil(t, p.EventID)
	assert.Nil(t, p.HomeTeamDefendingSide)
	assert.Nil(t, p.PeriodDescriptor)
	assert.Nil(t, p.SortOrder)
	assert.Nil(t, p.TimeInPeriod)
	assert.Nil(t, p.TimeRemaining)
	assert.Nil(t, p.TypeCode)
	assert.Nil(t, p.PrevDescKey)
	assert.Nil(t, p.PrevTypeCode)
	assert.Equal(t, map[string]any{"extra": true}, p.Other)
}

func TestLoadPlay_EnrichedFields(t *testing.T) {
	p := loader.LoadPlay(map[string]any{
		"prevDescKey":  "faceoff",
		"prevTypeCode": float64(502),
	})
	require.NotNil(t, p.PrevDescKey)
	assert.Equal(t, "faceoff", *p.PrevDescKey)
	assert.Equal(t, 502, *p.PrevTypeCode)
	assert.Empty(t, p.Other)

	first := loader.LoadPlay(map[string]any{"prevDescKey": nil, "prevTypeCode": model.NoPrevTypeCode})
	assert.Nil(t, first.PrevDescKey)
	assert.Equal(t, model.NoPrevTypeCode, *first.PrevTypeCode)
}

func TestLoadGame(t *testing.T) {
	raw := model.RawGame{
		"homeTeam": map[string]any{"id": float64(1)},
		"awayTeam": map[string]any{"id": float64(2)},
		"plays": []any{
			map[string]any{"eventId": float64(1), "typeDescKey": "faceoff"},
			map[string]any{"eventId": float64(2), "typeDescKey": "hit"},
			map[string]any{"eventId": float64(3), "typeDescKey": "goal"},
		},
	}
	g, err := loader.LoadGame("2023020001", raw)
	require.NoError(t, err)

	assert.Equal(t, "2023020001", g.Key)
	home, _ := g.HomeTeamID()
	away, _ := g.AwayTeamID()
	assert.Equal(t, int64(1), home)
	assert.Equal(t, int64(2), away)
	require.Len(t, g.Plays, 3)
	for i, p := range g.Plays {
		assert.Equal(t, int64(i+1), *p.EventID)
	}
}

func TestLoadGame_OrdersBySortOrder(t *testing.T) {
	raw := model.RawGame{"plays": []any{
		map[string]any{"eventId": float64(1), "sortOrder": float64(9)},
		map[string]any{"eventId": float64(2), "sortOrder": float64(5)},
		map[string]any{"eventId": float64(3), "sortOrder": float64(5)},
	}}
	g, err := loader.LoadGame("k", raw)
	require.NoError(t, err)

	var ids []int64
	for _, p := range g.Plays {
		ids = append(ids, *p.EventID)
	}
	assert.Equal(t, []int64{2, 3, 1}, ids, "ties keep array order")
}

func TestLoadGame_MissingSortOrderKeepsArrayOrder(t *testing.T) {
	raw := model.RawGame{"plays": []any{
		map[string]any{"eventId": float64(1), "sortOrder": float64(9)},
		map[string]any{"eventId": float64(2)},
		map[string]any{"eventId": float64(3), "sortOrder": float64(5)},
	}}
	g, err := loader.LoadGame("k", raw)
	require.NoError(t, err)

	var ids []int64
	for _, p := range g.Plays {
		ids = append(ids, *p.EventID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestLoadGame_NoPlays(t *testing.T) {
	g, err := loader.LoadGame("k", model.RawGame{})
	require.NoError(t, err)
	assert.Empty(t, g.Plays)

	g, err = loader.LoadGame("k", model.RawGame{"plays": nil})
	require.NoError(t, err)
	assert.Empty(t, g.Plays)
}

func TestLoadGame_Malformed(t *testing.T) {
	_, err := loader.LoadGame("k", model.RawGame{"plays": "nope"})
	assert.ErrorIs(t, err, loader.ErrMalformedGame)

	_, err = loader.LoadGame("k", model.RawGame{"plays": []any{map[string]any{}, 4}})
	assert.ErrorIs(t, err, loader.ErrMalformedGame)
}
