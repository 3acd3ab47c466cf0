package mosaic

import "testing"

// testLibrary builds a library straight from colors, without touching the
// filesystem. Tile images stay nil; the selector never reads them.
func testLibrary(tileSize int, colors ...[3]float64) *Library {
	tiles := make([]Tile, len(colors))
	for i, c := range colors {
		tiles[i] = Tile{Color: c}
	}
	return &Library{
		Dir:      "/test/tiles",
		TileSize: tileSize,
		Tiles:    tiles,
		Index:    NewColorIndex(colors),
	}
}

func TestAdaptiveK(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{1, 1},
		{3, 3},
		{9, 9},
		{10, 10},
		{50, 10},
		{100, 10},
		{500, 50},
		{1000, 100},
		{5000, 100},
	}
	for _, c := range cases {
		if got := adaptiveK(c.n); got != c.want {
			t.Errorf("adaptiveK(%d): expected %d, got %d", c.n, c.want, got)
		}
	}
}

func TestPickChoosesNearestWithoutPenalty(t *testing.T) {
	lib := testLibrary(16,
		[3]float64{0, 0, 0},
		[3]float64{100, 100, 100},
		[3]float64{200, 200, 200},
	)
	sel := NewSelector(lib, 0)

	if got := sel.Pick([3]float64{90, 90, 90}); got != 1 {
		t.Errorf("Expected tile 1, got %d", got)
	}
}

func TestPickZeroPenaltyRepeats(t *testing.T) {
	lib := testLibrary(16,
		[3]float64{0, 0, 0},
		[3]float64{100, 100, 100},
	)
	sel := NewSelector(lib, 0)

	for i := 0; i < 5; i++ {
		if got := sel.Pick([3]float64{0, 0, 0}); got != 0 {
			t.Fatalf("Pick %d: expected tile 0 with zero penalty, got %d", i, got)
		}
	}
}

func TestPickPenaltyRotatesTiles(t *testing.T) {
	// Tile 0 matches exactly, tile 1 is sqrt(300) away. With penalty 10
	// each use of tile 0 costs 10*50 = 500, more than tile 1's squared
	// distance of 300, so the picks alternate.
	lib := testLibrary(16,
		[3]float64{0, 0, 0},
		[3]float64{10, 10, 10},
	)
	sel := NewSelector(lib, 10)

	want := []int{0, 1, 0, 1}
	for i, w := range want {
		if got := sel.Pick([3]float64{0, 0, 0}); got != w {
			t.Errorf("Pick %d: expected tile %d, got %d", i, w, got)
		}
	}
}

func TestPickTieBreaksByLowestIndex(t *testing.T) {
	lib := testLibrary(16,
		[3]float64{5, 5, 5},
		[3]float64{5, 5, 5},
		[3]float64{5, 5, 5},
	)
	sel := NewSelector(lib, 0)

	if got := sel.Pick([3]float64{5, 5, 5}); got != 0 {
		t.Errorf("Expected the lowest index on a tie, got %d", got)
	}
}

func TestPickStaysWithinIndexCandidates(t *testing.T) {
	colors := make([][3]float64, 50)
	for i := range colors {
		v := float64(i * 5)
		colors[i] = [3]float64{v, v, v}
	}
	lib := testLibrary(16, colors...)
	sel := NewSelector(lib, 25)

	query := [3]float64{42, 42, 42}
	candidates := lib.Index.Nearest(query, adaptiveK(len(lib.Tiles)))

	for i := 0; i < 20; i++ {
		got := sel.Pick(query)
		found := false
		for _, cand := range candidates {
			if cand.Index == got {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Pick %d returned tile %d, which the index never surfaced", i, got)
		}
	}
}

func TestUsageSumMatchesPicks(t *testing.T) {
	lib := testLibrary(16,
		[3]float64{0, 0, 0},
		[3]float64{80, 80, 80},
		[3]float64{160, 160, 160},
	)
	sel := NewSelector(lib, 5)

	const m = 30
	for i := 0; i < m; i++ {
		sel.Pick([3]float64{float64(i * 8), 0, 0})
	}

	sum := 0
	for _, u := range sel.Usage() {
		sum += u
	}
	if sum != m {
		t.Errorf("Expected usage sum %d after %d picks, got %d", m, m, sum)
	}
	if sel.Picks() != m {
		t.Errorf("Expected Picks() == %d, got %d", m, sel.Picks())
	}
}

func TestSmallLibraryAllTilesAreCandidates(t *testing.T) {
	// A 3-tile library must surface all 3 tiles for every query.
	lib := testLibrary(16,
		[3]float64{0, 0, 0},
		[3]float64{128, 128, 128},
		[3]float64{255, 255, 255},
	)

	k := adaptiveK(len(lib.Tiles))
	if k != 3 {
		t.Fatalf("Expected adaptive k of 3 for a 3-tile library, got %d", k)
	}
	for _, q := range [][3]float64{{0, 0, 0}, {64, 0, 200}, {255, 255, 255}} {
		if got := lib.Index.Nearest(q, k); len(got) != 3 {
			t.Errorf("Query %v: expected all 3 tiles as candidates, got %d", q, len(got))
		}
	}
}
