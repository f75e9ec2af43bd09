package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/config"
)

const rawGames = `{"2023020001": {"plays": [
  {"eventId": 1, "sortOrder": 1, "typeCode": 502, "typeDescKey": "faceoff",
   "periodDescriptor": {"number": 1, "periodType": "REG"}, "timeInPeriod": "00:00", "timeRemaining": "20:00"},
  {"eventId": 2, "sortOrder": 2, "typeCode": 506, "typeDescKey": "shot-on-goal",
   "periodDescriptor": {"number": 1, "periodType": "REG"}, "timeInPeriod": "00:30", "timeRemaining": "19:30",
   "details": {"eventOwnerTeamId": 10, "shootingPlayerId": 8}}
]}}`

func setup(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "pbp_raw.json")
	require.NoError(t, os.WriteFile(in, []byte(rawGames), 0o644))
	cfg := &config.Config{Pipeline: config.PipelineConfig{Separator: ";", Sink: config.SinkNone, Strict: true}}
	return cfg, in
}

func TestRun_Save(t *testing.T) {
	cfg, in := setup(t)
	out := filepath.Join(filepath.Dir(in), "shots.csv")
	opts := options{input: in, output: out, save: true, enrichments: multiFlag{"add_prev_play_name", "no_such_thing"}}

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, opts, zerolog.New(io.Discard), &stdout))
	assert.Contains(t, stdout.String(), "Data saved to")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "eventId", rows[0][0])
	assert.Equal(t, "faceoff", rows[1][16])
	assert.Equal(t, "502", rows[1][17])
}

func TestRun_Report(t *testing.T) {
	cfg, in := setup(t)
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, options{input: in}, zerolog.New(io.Discard), &stdout))

	out := stdout.String()
	assert.Contains(t, out, "[1 rows x 18 columns]")
	assert.Contains(t, out, "non-null")
	assert.True(t, strings.Contains(out, "prevTypeCode"))
}

func TestRun_SaveNeedsOutput(t *testing.T) {
	cfg, in := setup(t)
	err := run(context.Background(), cfg, options{input: in, save: true}, zerolog.New(io.Discard), io.Discard)
	assert.Error(t, err)
}

func TestUsableEnrichments(t *testing.T) {
	got := usableEnrichments([]string{"x", "add_prev_play_name", "y"}, zerolog.New(io.Discard))
	assert.Equal(t, []string{"add_prev_play_name"}, got)
}

func TestMultiFlag(t *testing.T) {
	var m multiFlag
	require.NoError(t, m.Set("a"))
	require.NoError(t, m.Set("b"))
	assert.Equal(t, "a,b", m.String())
}
