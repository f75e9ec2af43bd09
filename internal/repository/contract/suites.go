// Package contract holds behavior suites every repository implementation must pass.
package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
)

// ShotFactory builds a fresh, empty repository and its cleanup.
type ShotFactory func(t *testing.T) (repository.ShotRepository, func())

// TxFactory builds a transaction manager and a repository that honors its transactions.
type TxFactory func(t *testing.T) (repository.TxManager, repository.ShotRepository, func())

func ptr[T any](v T) *T { return &v }

func sampleShot(eventID, sortOrder int64, goal bool) model.ShotOnGoal {
	return model.ShotOnGoal{
		EventID:               eventID,
		HomeTeamDefendingSide: "left",
		PeriodNumber:          1,
		PeriodType:            "REG",
		SortOrder:             sortOrder,
		TimeInPeriod:          118,
		TimeRemaining:         1082,
		IsGoal:                goal,
		XCoord:                ptr(-61),
		YCoord:                ptr(12),
		ZoneCode:              ptr("O"),
		ShotType:              ptr("wrist"),
		ShootingPlayerID:      ptr(int64(8478402)),
		GoalieInNetID:         ptr(int64(8475883)),
		EventOwnerTeamID:      10,
		SituationCode:         ptr(1551),
		PrevDescKey:           ptr("faceoff"),
		PrevTypeCode:          ptr(502),
	}
}

func RunShotRepositoryContract(t *testing.T, makeRepo ShotFactory) {
	t.Helper()

	t.Run("save_and_list_in_sort_order", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		rows := []model.GameShot{
			{GameKey: "2023020001", Shot: sampleShot(12, 90, true)},
			{GameKey: "2023020001", Shot: sampleShot(7, 40, false)},
			{GameKey: "2023020002", Shot: sampleShot(7, 10, false)},
		}
		n, err := repo.SaveShots(ctx, rows)
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if n != 3 {
			t.Fatalf("expected 3 written, got %d", n)
		}
		res, err := repo.ListByGame(ctx, "2023020001", repository.Page{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 || len(res.Items) != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].SortOrder != 40 || res.Items[1].SortOrder != 90 {
			t.Fatalf("rows not ordered by sortOrder: %+v", res.Items)
		}
		if !res.Items[1].IsGoal || res.Items[0].IsGoal {
			t.Fatalf("isGoal not round-tripped: %+v", res.Items)
		}
	})

	t.Run("nullable_fields_round_trip", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s := sampleShot(3, 5, true)
		s.GoalieInNetID = nil
		s.XCoord = nil
		s.PrevDescKey = nil
		s.PrevTypeCode = ptr(model.NoPrevTypeCode)
		if _, err := repo.SaveShots(ctx, []model.GameShot{{GameKey: "g", Shot: s}}); err != nil {
			t.Fatalf("save: %v", err)
		}
		res, err := repo.ListByGame(ctx, "g", repository.Page{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		got := res.Items[0]
		if got.GoalieInNetID != nil || got.XCoord != nil || got.PrevDescKey != nil {
			t.Fatalf("expected nulls, got %+v", got)
		}
		if got.YCoord == nil || *got.YCoord != 12 || got.PrevTypeCode == nil || *got.PrevTypeCode != -1 {
			t.Fatalf("set values lost: %+v", got)
		}
	})

	t.Run("upsert_overwrites", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		first := sampleShot(5, 5, false)
		if _, err := repo.SaveShots(ctx, []model.GameShot{{GameKey: "g", Shot: first}}); err != nil {
			t.Fatalf("save: %v", err)
		}
		second := first
		second.ShotType = ptr("slap")
		if _, err := repo.SaveShots(ctx, []model.GameShot{{GameKey: "g", Shot: second}}); err != nil {
			t.Fatalf("resave: %v", err)
		}
		res, err := repo.ListByGame(ctx, "g", repository.Page{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || *res.Items[0].ShotType != "slap" {
			t.Fatalf("expected single overwritten row, got %+v", res)
		}
	})

	t.Run("list_unknown_game_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.ListByGame(context.Background(), "missing", repository.Page{})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var rows []model.GameShot
		for i := int64(1); i <= 7; i++ {
			rows = append(rows, model.GameShot{GameKey: "p", Shot: sampleShot(i, i*10, false)})
		}
		if _, err := repo.SaveShots(ctx, rows); err != nil {
			t.Fatalf("seed: %v", err)
		}
		res, err := repo.ListByGame(ctx, "p", repository.Page{Limit: 3, Offset: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].EventID != 4 {
			t.Fatalf("expected page to start at event 4, got %d", res.Items[0].EventID)
		}
	})

	t.Run("save_empty_is_noop", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		n, err := repo.SaveShots(context.Background(), nil)
		if err != nil || n != 0 {
			t.Fatalf("expected (0, nil), got (%d, %v)", n, err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_persists", func(t *testing.T) {
		tx, repo, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := repo.SaveShots(ctx, []model.GameShot{{GameKey: "tx", Shot: sampleShot(1, 1, false)}})
			return err
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}
		if _, err := repo.ListByGame(ctx, "tx", repository.Page{}); err != nil {
			t.Fatalf("expected committed row, got %v", err)
		}
	})

	t.Run("error_rolls_back", func(t *testing.T) {
		tx, repo, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		boom := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := repo.SaveShots(ctx, []model.GameShot{{GameKey: "rb", Shot: sampleShot(1, 1, false)}}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := repo.ListByGame(ctx, "rb", repository.Page{}); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected rollback, got %v", err)
		}
	})
}
