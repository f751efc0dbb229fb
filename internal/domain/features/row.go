package features

// Row is the feature vector of one pair keyed by column name.
type Row map[string]float64

// Transformer computes one feature family from a normalized record into row.
type Transformer func(Record, Row) error

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
