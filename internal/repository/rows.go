package repository

import (
	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

// ShotColumns lists the persisted shot columns after game_key, in bind order.
const ShotColumns = `event_id, home_team_defending_side, period_number, period_type, sort_order,
	time_in_period, time_remaining, is_goal, x_coord, y_coord, zone_code, shot_type,
	shooting_player_id, goalie_in_net_id, event_owner_team_id, situation_code,
	prev_desc_key, prev_type_code`

// ShotUpdateSet is the conflict update clause shared by both SQL dialects.
const ShotUpdateSet = `home_team_defending_side = excluded.home_team_defending_side,
	period_number = excluded.period_number,
	period_type = excluded.period_type,
	sort_order = excluded.sort_order,
	time_in_period = excluded.time_in_period,
	time_remaining = excluded.time_remaining,
	is_goal = excluded.is_goal,
	x_coord = excluded.x_coord,
	y_coord = excluded.y_coord,
	zone_code = excluded.zone_code,
	shot_type = excluded.shot_type,
	shooting_player_id = excluded.shooting_player_id,
	goalie_in_net_id = excluded.goalie_in_net_id,
	event_owner_team_id = excluded.event_owner_team_id,
	situation_code = excluded.situation_code,
	prev_desc_key = excluded.prev_desc_key,
	prev_type_code = excluded.prev_type_code,
	updated_at = CURRENT_TIMESTAMP`

// ShotArgs returns bind arguments: game key followed by ShotColumns.
func ShotArgs(r model.GameShot) []any {
	s := r.Shot
	return []any{
		r.GameKey,
		s.EventID, s.HomeTeamDefendingSide, s.PeriodNumber, s.PeriodType, s.SortOrder,
		s.TimeInPeriod, s.TimeRemaining, s.IsGoal, s.XCoord, s.YCoord, s.ZoneCode, s.ShotType,
		s.ShootingPlayerID, s.GoalieInNetID, s.EventOwnerTeamID, s.SituationCode,
		s.PrevDescKey, s.PrevTypeCode,
	}
}

// Scanner is implemented by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanShot reads ShotColumns followed by any extra destinations.
func ScanShot(sc Scanner, extra ...any) (model.ShotOnGoal, error) {
	var s model.ShotOnGoal
	dest := []any{
		&s.EventID, &s.HomeTeamDefendingSide, &s.PeriodNumber, &s.PeriodType, &s.SortOrder,
		&s.TimeInPeriod, &s.TimeRemaining, &s.IsGoal, &s.XCoord, &s.YCoord, &s.ZoneCode, &s.ShotType,
		&s.ShootingPlayerID, &s.GoalieInNetID, &s.EventOwnerTeamID, &s.SituationCode,
		&s.PrevDescKey, &s.PrevTypeCode,
	}
	if err := sc.Scan(append(dest, extra...)...); err != nil {
		return model.ShotOnGoal{}, err
	}
	return s, nil
}
