package classifier

import (
	"fmt"

	"github.com/okian/talentmatch/internal/domain/features"
)

// Leaf marks a node without children.
const Leaf = -1

// Node is one CART node. Feature indexes the forest columns. Value holds the
// class 0 and class 1 weights at the node.
type Node struct {
	Feature   int        `json:"feature"`
	Threshold float64    `json:"threshold"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
	Value     [2]float64 `json:"value"`
}

// Tree is a flattened decision tree rooted at node 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest averages the leaf class-1 share over its trees.
type Forest struct {
	columns []string
	trees   []Tree
}

// NewForest validates and builds a forest. Children must come after their
// parent so every walk terminates.
func NewForest(columns []string, trees []Tree) (*Forest, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: random forest has no columns", ErrInvalidModel)
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: random forest has no trees", ErrInvalidModel)
	}
	for ti, t := range trees {
		if len(t.Nodes) == 0 {
			return nil, fmt.Errorf("%w: tree %d is empty", ErrInvalidModel, ti)
		}
		for ni, n := range t.Nodes {
			if n.Left == Leaf && n.Right == Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= len(columns) {
				return nil, fmt.Errorf("%w: tree %d node %d: feature %d out of range", ErrInvalidModel, ti, ni, n.Feature)
			}
			for _, child := range []int{n.Left, n.Right} {
				if child <= ni || child >= len(t.Nodes) {
					return nil, fmt.Errorf("%w: tree %d node %d: bad child %d", ErrInvalidModel, ti, ni, child)
				}
			}
		}
	}
	return &Forest{
		columns: append([]string(nil), columns...),
		trees:   append([]Tree(nil), trees...),
	}, nil
}

// Kind implements Classifier.
func (f *Forest) Kind() Kind { return KindRandomForest }

// Columns implements Classifier.
func (f *Forest) Columns() []string { return append([]string(nil), f.columns...) }

// Trees returns the trees.
func (f *Forest) Trees() []Tree { return append([]Tree(nil), f.trees...) }

// PredictProba implements Classifier.
func (f *Forest) PredictProba(m features.Matrix) ([]float64, error) {
	pos, err := bind(f.columns, m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, m.Len())
	buf := make([]float64, 0, len(pos))
	for i, row := range m.Rows {
		x := gather(row, pos, buf)
		sum := 0.0
		for _, t := range f.trees {
			sum += t.positiveShare(x)
		}
		out[i] = sum / float64(len(f.trees))
	}
	return out, nil
}

// Predict implements Classifier.
func (f *Forest) Predict(m features.Matrix) ([]bool, error) {
	probs, err := f.PredictProba(m)
	if err != nil {
		return nil, err
	}
	return labelsFrom(probs), nil
}

func (t Tree) positiveShare(x []float64) float64 {
	n := t.Nodes[0]
	for n.Left != Leaf || n.Right != Leaf {
		if x[n.Feature] <= n.Threshold {
			n = t.Nodes[n.Left]
		} else {
			n = t.Nodes[n.Right]
		}
	}
	total := n.Value[0] + n.Value[1]
	if total == 0 {
		return 0
	}
	return n.Value[1] / total
}
