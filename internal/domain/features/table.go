package features

// Table holds one Row per input pair, in input order.
type Table struct {
	Rows []Row
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Matrix is a dense projection of a Table onto an ordered column list.
type Matrix struct {
	Columns []string
	Rows    [][]float64
}

// Len returns the number of rows.
func (m Matrix) Len() int { return len(m.Rows) }

// Index maps column names to their position.
func (m Matrix) Index() map[string]int {
	idx := make(map[string]int, len(m.Columns))
	for i, c := range m.Columns {
		idx[c] = i
	}
	return idx
}

// Select projects the table onto columns in the given order. A column
// missing from any row is a transformation error.
func (t Table) Select(columns []string) (Matrix, error) {
	m := Matrix{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]float64, len(t.Rows)),
	}
	for i, row := range t.Rows {
		vals := make([]float64, len(columns))
		for j, c := range columns {
			v, ok := row[c]
			if !ok {
				return Matrix{}, Transformationf("select", "row %d: missing column %q", i, c)
			}
			vals[j] = v
		}
		m.Rows[i] = vals
	}
	return m, nil
}
