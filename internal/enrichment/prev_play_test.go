package enrichment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/enrichment"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

func play(sortOrder float64, desc string, code float64) map[string]any {
	return map[string]any{"sortOrder": sortOrder, "typeDescKey": desc, "typeCode": code}
}

func enrichedPlays(t *testing.T, raw model.RawGame) []map[string]any {
	t.Helper()
	out, err := enrichment.AddPrevPlayName{}.Apply(raw)
	require.NoError(t, err)
	list, ok := out["plays"].([]any)
	require.True(t, ok)
	plays := make([]map[string]any, len(list))
	for i, p := range list {
		plays[i] = p.(map[string]any)
	}
	return plays
}

func TestAddPrevPlayName_StampsPredecessor(t *testing.T) {
	raw := model.RawGame{"plays": []any{
		play(1, "faceoff", 502),
		play(2, "shot-on-goal", 506),
		play(3, "goal", 505),
	}}
	plays := enrichedPlays(t, raw)

	assert.Nil(t, plays[0]["prevDescKey"])
	assert.Equal(t, model.NoPrevTypeCode, plays[0]["prevTypeCode"])

	assert.Equal(t, "faceoff", plays[1]["prevDescKey"])
	assert.Equal(t, float64(502), plays[1]["prevTypeCode"])

	assert.Equal(t, "shot-on-goal", plays[2]["prevDescKey"])
	assert.Equal(t, float64(506), plays[2]["prevTypeCode"])
}

func TestAddPrevPlayName_UsesSortOrder(t *testing.T) {
	raw := model.RawGame{"plays": []any{
		play(20, "goal", 505),
		play(10, "hit", 503),
	}}
	plays := enrichedPlays(t, raw)

	// array positions are kept, predecessors follow sortOrder
	assert.Equal(t, "goal", plays[0]["typeDescKey"])
	assert.Equal(t, "hit", plays[0]["prevDescKey"])
	assert.Nil(t, plays[1]["prevDescKey"])
	assert.Equal(t, model.NoPrevTypeCode, plays[1]["prevTypeCode"])
}

func TestAddPrevPlayName_ArrayOrderWithoutSortOrder(t *testing.T) {
	raw := model.RawGame{"plays": []any{
		map[string]any{"typeDescKey": "faceoff", "typeCode": float64(502)},
		play(1, "shot-on-goal", 506),
	}}
	plays := enrichedPlays(t, raw)
	assert.Nil(t, plays[0]["prevDescKey"])
	assert.Equal(t, "faceoff", plays[1]["prevDescKey"])
}

func TestAddPrevPlayName_DoesNotMutateInput(t *testing.T) {
	first := play(1, "faceoff", 502)
	raw := model.RawGame{"id": float64(7), "plays": []any{first, play(2, "goal", 505)}}

	_, err := enrichment.AddPrevPlayName{}.Apply(raw)
	require.NoError(t, err)

	_, stamped := first["prevDescKey"]
	assert.False(t, stamped)
	assert.Len(t, raw["plays"], 2)
	assert.Equal(t, float64(7), raw["id"])
}

func TestAddPrevPlayName_EmptyAndMalformed(t *testing.T) {
	out, err := enrichment.AddPrevPlayName{}.Apply(model.RawGame{"id": "x"})
	require.NoError(t, err)
	assert.Equal(t, model.RawGame{"id": "x"}, out)

	out, err = enrichment.AddPrevPlayName{}.Apply(model.RawGame{"plays": []any{}})
	require.NoError(t, err)
	assert.Empty(t, out["plays"])

	_, err = enrichment.AddPrevPlayName{}.Apply(model.RawGame{"plays": 3})
	assert.Error(t, err)

	_, err = enrichment.AddPrevPlayName{}.Apply(model.RawGame{"plays": []any{"x"}})
	assert.Error(t, err)
}
