// Package table holds the flattened shot dataset and its tabular renderings.
package table

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

// DefaultSeparator matches the files the xG notebooks already read.
const DefaultSeparator = ';'

// Table is an ordered sequence of shot rows.
type Table struct {
	Rows []model.GameShot `json:"rows"`
}

// ColumnSummary is one line of Summary.
type ColumnSummary struct {
	Name    string `json:"name"`
	NonNull int    `json:"nonNull"`
	Unique  int    `json:"unique"`
	DType   string `json:"dtype"`
}

// Columns returns the column names in output order.
func Columns() []string {
	return lo.Map(columns, func(c Column, _ int) string { return c.Name })
}

// Append adds rows at the end of the table.
func (t *Table) Append(rows ...model.GameShot) { t.Rows = append(t.Rows, rows...) }

// Len is the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Shots returns the shot rows without their game keys.
func (t *Table) Shots() []model.ShotOnGoal {
	return lo.Map(t.Rows, func(r model.GameShot, _ int) model.ShotOnGoal { return r.Shot })
}

// Head returns a table holding at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Rows: t.Rows[:n]}
}

// Records renders every row as strings in column order. Nulls render as "".
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make([]string, len(columns))
		for i, c := range columns {
			rec[i], _ = c.cell(r.Shot)
		}
		out = append(out, rec)
	}
	return out
}

// WriteCSV writes a header line and every row using sep as the field delimiter.
func (t *Table) WriteCSV(w io.Writer, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// Summary reports, per column, how many values are set and how many distinct values there are.
func (t *Table) Summary() []ColumnSummary {
	out := make([]ColumnSummary, 0, len(columns))
	for _, c := range columns {
		values := make([]string, 0, len(t.Rows))
		for _, r := range t.Rows {
			if v, ok := c.cell(r.Shot); ok {
				values = append(values, v)
			}
		}
		out = append(out, ColumnSummary{
			Name:    c.Name,
			NonNull: len(values),
			Unique:  len(lo.Uniq(values)),
			DType:   c.DType,
		})
	}
	return out
}
