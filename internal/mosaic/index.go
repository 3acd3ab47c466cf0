package mosaic

import (
	"sort"

	"github.com/kyroy/kdtree"
	"github.com/kyroy/kdtree/points"
)

// Candidate pairs a library record index with its squared Euclidean
// distance to the queried color.
type Candidate struct {
	Index    int
	Distance float64
}

// ColorIndex is a build-once nearest-neighbor index over RGB points.
// Implementations must be safe for concurrent queries and must never be
// mutated after construction. Entry i always corresponds to the i-th color
// passed to the constructor.
type ColorIndex interface {
	// Nearest returns up to k candidates ordered by ascending squared
	// distance, ties broken by lowest index. If k exceeds the point count,
	// every point is returned.
	Nearest(color [3]float64, k int) []Candidate

	// Len returns the number of indexed points.
	Len() int
}

// kdIndex implements ColorIndex on a KD-tree.
type kdIndex struct {
	tree   *kdtree.KDTree
	colors [][3]float64
}

// NewColorIndex builds an immutable KD-tree index over the given colors.
func NewColorIndex(colors [][3]float64) ColorIndex {
	pts := make([]kdtree.Point, len(colors))
	for i, c := range colors {
		pts[i] = points.NewPoint([]float64{c[0], c[1], c[2]}, i)
	}

	owned := make([][3]float64, len(colors))
	copy(owned, colors)

	return &kdIndex{
		tree:   kdtree.New(pts),
		colors: owned,
	}
}

func (ix *kdIndex) Len() int {
	return len(ix.colors)
}

func (ix *kdIndex) Nearest(color [3]float64, k int) []Candidate {
	if k > len(ix.colors) {
		k = len(ix.colors)
	}
	if k <= 0 {
		return nil
	}

	query := points.NewPoint([]float64{color[0], color[1], color[2]}, nil)
	nearest := ix.tree.KNN(query, k)

	candidates := make([]Candidate, 0, len(nearest))
	for _, p := range nearest {
		idx := p.(*points.Point).Data.(int)
		candidates = append(candidates, Candidate{
			Index:    idx,
			Distance: squaredDistance(color, ix.colors[idx]),
		})
	}

	// The tree does not guarantee a tie order, so re-sort for determinism.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].Index < candidates[j].Index
	})

	return candidates
}

func squaredDistance(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}
