package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/talentmatch/internal/domain/features"
)

const dirMode = 0o755

// WriteSplit writes the four tables under dir.
func WriteSplit(ctx context.Context, dir string, s Split) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, dir, err)
	}
	writes := []struct {
		name string
		fn   func(path string) error
	}{
		{FileXTrain, func(p string) error { return WriteMatrix(ctx, p, s.XTrain) }},
		{FileXTest, func(p string) error { return WriteMatrix(ctx, p, s.XTest) }},
		{FileYTrain, func(p string) error { return WriteLabels(ctx, p, s.YTrain) }},
		{FileYTest, func(p string) error { return WriteLabels(ctx, p, s.YTest) }},
	}
	for _, w := range writes {
		if err := w.fn(filepath.Join(dir, w.name)); err != nil {
			return err
		}
	}
	return nil
}

// ReadSplit reads the four tables under dir.
func ReadSplit(ctx context.Context, dir string) (Split, error) {
	var s Split
	var err error
	if s.XTrain, err = ReadMatrix(ctx, filepath.Join(dir, FileXTrain)); err != nil {
		return Split{}, err
	}
	if s.XTest, err = ReadMatrix(ctx, filepath.Join(dir, FileXTest)); err != nil {
		return Split{}, err
	}
	if s.YTrain, err = ReadLabels(ctx, filepath.Join(dir, FileYTrain)); err != nil {
		return Split{}, err
	}
	if s.YTest, err = ReadLabels(ctx, filepath.Join(dir, FileYTest)); err != nil {
		return Split{}, err
	}
	if s.XTrain.Len() != len(s.YTrain) || s.XTest.Len() != len(s.YTest) {
		return Split{}, fmt.Errorf("%w: feature and label row counts differ", ErrMalformed)
	}
	return s, nil
}

// WriteMatrix writes m as CSV with a header row.
func WriteMatrix(ctx context.Context, path string, m features.Matrix) error {
	records := make([][]string, 0, m.Len()+1)
	records = append(records, m.Columns)
	for _, row := range m.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		records = append(records, rec)
	}
	return writeCSV(ctx, path, records)
}

// ReadMatrix reads a CSV written by WriteMatrix.
func ReadMatrix(ctx context.Context, path string) (features.Matrix, error) {
	records, err := readCSV(ctx, path)
	if err != nil {
		return features.Matrix{}, err
	}
	m := features.Matrix{Columns: records[0], Rows: make([][]float64, 0, len(records)-1)}
	for i, rec := range records[1:] {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return features.Matrix{}, fmt.Errorf("%w: %s line %d column %q: %w", ErrMalformed, path, i+2, m.Columns[j], err)
			}
			row[j] = v
		}
		m.Rows = append(m.Rows, row)
	}
	return m, nil
}

// WriteLabels writes labels as a single 0/1 column.
func WriteLabels(ctx context.Context, path string, y []bool) error {
	records := make([][]string, 0, len(y)+1)
	records = append(records, []string{LabelColumn})
	for _, l := range y {
		v := "0"
		if l {
			v = "1"
		}
		records = append(records, []string{v})
	}
	return writeCSV(ctx, path, records)
}

// ReadLabels reads a label column. Accepts 0/1 and true/false.
func ReadLabels(ctx context.Context, path string) ([]bool, error) {
	records, err := readCSV(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(records[0]) != 1 {
		return nil, fmt.Errorf("%w: %s: want one label column, got %d", ErrMalformed, path, len(records[0]))
	}
	out := make([]bool, 0, len(records)-1)
	for i, rec := range records[1:] {
		switch rec[0] {
		case "1", "1.0", "true", "True":
			out = append(out, true)
		case "0", "0.0", "false", "False":
			out = append(out, false)
		default:
			return nil, fmt.Errorf("%w: %s line %d: label %q", ErrMalformed, path, i+2, rec[0])
		}
	}
	return out, nil
}

func writeCSV(ctx context.Context, path string, records [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

func readCSV(ctx context.Context, path string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrMalformed, path)
	}
	return records, nil
}
