package store

import (
	"context"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
)

// Record runs an aggregate query and returns its first row as a single-row
// result. It fails with ErrEmptyResult when the query returns nothing.
func Record(ctx context.Context, exec Executor, query string) (*table.Result, error) {
	res, err := exec.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, wrap("record", ErrEmptyResult, nil)
	}
	return table.New(res.Columns, res.Rows[:1]), nil
}

// Scalar returns the first column of the first row. A missing row or a NULL
// value fails with ErrEmptyResult.
func Scalar(ctx context.Context, exec Executor, query string) (any, error) {
	rec, err := Record(ctx, exec, query)
	if err != nil {
		return nil, err
	}
	if len(rec.Columns) == 0 || len(rec.Rows[0]) == 0 || rec.Rows[0][0] == nil {
		return nil, wrap("scalar", ErrEmptyResult, nil)
	}
	return rec.Rows[0][0], nil
}
