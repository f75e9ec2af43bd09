package shot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/shot"
)

func shotPlay(desc string, details map[string]any) model.Play {
	return model.Play{
		EventID:               ptr(int64(8)),
		HomeTeamDefendingSide: ptr("right"),
		PeriodDescriptor:      &model.PeriodDescriptor{Number: ptr(2), PeriodType: ptr("REG")},
		SortOrder:             ptr(int64(300)),
		TimeInPeriod:          ptr("18:02"),
		TimeRemaining:         ptr("01:58"),
		TypeCode:              ptr(506),
		TypeDescKey:           ptr(desc),
		PrevDescKey:           ptr("faceoff"),
		PrevTypeCode:          ptr(502),
		Other:                 map[string]any{"details": details, "situationCode": "1551"},
	}
}

func TestProject_FullShot(t *testing.T) {
	p := shotPlay("shot-on-goal", map[string]any{
		"xCoord":           float64(-61),
		"yCoord":           float64(14),
		"zoneCode":         "O",
		"shotType":         "wrist",
		"shootingPlayerId": float64(8478402),
		"goalieInNetId":    float64(8475883),
		"eventOwnerTeamId": float64(22),
	})

	got, err := shot.Project(p)
	require.NoError(t, err)

	assert.Equal(t, model.ShotOnGoal{
		EventID:               8,
		HomeTeamDefendingSide: "right",
		PeriodNumber:          2,
		PeriodType:            "REG",
		SortOrder:             300,
		TimeInPeriod:          1082,
		TimeRemaining:         118,
		IsGoal:                false,
		XCoord:                ptr(-61),
		YCoord:                ptr(14),
		ZoneCode:              ptr("O"),
		ShotType:              ptr("wrist"),
		ShootingPlayerID:      ptr(int64(8478402)),
		GoalieInNetID:         ptr(int64(8475883)),
		EventOwnerTeamID:      22,
		SituationCode:         ptr(1551),
		PrevDescKey:           ptr("faceoff"),
		PrevTypeCode:          ptr(502),
	}, got)
}

func TestProject_GoalFallsBackToScorer(t *testing.T) {
	got, err := shot.Project(shotPlay("goal", map[string]any{
		"scoringPlayerId":  float64(42),
		"eventOwnerTeamId": float64(22),
	}))
	require.NoError(t, err)

	assert.True(t, got.IsGoal)
	require.NotNil(t, got.ShootingPlayerID)
	assert.Equal(t, int64(42), *got.ShootingPlayerID)
	assert.Nil(t, got.GoalieInNetID, "empty net goal has no goalie")
	assert.Nil(t, got.XCoord)
	assert.Nil(t, got.ZoneCode)
}

func TestProject_ShooterIDZeroIsKept(t *testing.T) {
	got, err := shot.Project(shotPlay("shot-on-goal", map[string]any{
		"shootingPlayerId": float64(0),
		"scoringPlayerId":  float64(42),
		"eventOwnerTeamId": float64(22),
	}))
	require.NoError(t, err)
	require.NotNil(t, got.ShootingPlayerID)
	assert.Equal(t, int64(0), *got.ShootingPlayerID)
}

func TestProject_OptionalCoreFields(t *testing.T) {
	p := shotPlay("shot-on-goal", map[string]any{"eventOwnerTeamId": float64(22)})
	p.HomeTeamDefendingSide = nil
	p.PeriodDescriptor.PeriodType = nil
	p.PrevDescKey = nil
	p.PrevTypeCode = nil
	delete(p.Other, "situationCode")

	got, err := shot.Project(p)
	require.NoError(t, err)
	assert.Equal(t, "", got.HomeTeamDefendingSide)
	assert.Equal(t, "", got.PeriodType)
	assert.Nil(t, got.PrevDescKey)
	assert.Nil(t, got.PrevTypeCode)
	assert.Nil(t, got.SituationCode)
}

func TestProject_Errors(t *testing.T) {
	owner := map[string]any{"eventOwnerTeamId": float64(22)}
	cases := []struct {
		name   string
		mutate func(p *model.Play)
		want   error
	}{
		{"not eligible", func(p *model.Play) { p.TypeDescKey = ptr("faceoff") }, shot.ErrNotShotEligible},
		{"missing owner", func(p *model.Play) { p.Other = map[string]any{"details": map[string]any{}} }, shot.ErrMissingField},
		{"missing details", func(p *model.Play) { p.Other = nil }, shot.ErrMissingField},
		{"missing event id", func(p *model.Play) { p.EventID = nil }, shot.ErrMissingField},
		{"missing sort order", func(p *model.Play) { p.SortOrder = nil }, shot.ErrMissingField},
		{"missing period", func(p *model.Play) { p.PeriodDescriptor = nil }, shot.ErrMissingField},
		{"missing clock", func(p *model.Play) { p.TimeInPeriod = nil }, shot.ErrMissingField},
		{"bad clock", func(p *model.Play) { p.TimeRemaining = ptr("1:5:0") }, shot.ErrInvalidClock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := shotPlay("shot-on-goal", owner)
			tc.mutate(&p)
			_, err := shot.Project(p)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
