package world

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

// snapshot captures the items on every grown cell of the index.
func snapshot(idx *ItemIndex) map[Cell][]*Item {
	out := make(map[Cell][]*Item)
	for _, layer := range idx.grid.Layers() {
		w, h := idx.grid.Size(layer)
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				c := C(x, y, layer)
				if items := idx.ItemsAt(c); len(items) > 0 {
					out[c] = items
				}
			}
		}
	}
	return out
}

func sameSnapshot(a, b map[Cell][]*Item) bool {
	if len(a) != len(b) {
		return false
	}
	for c, items := range a {
		if !slices.Equal(items, b[c]) {
			return false
		}
	}
	return true
}

// checkItemsCoherent verifies that footprints, placement order and cell
// sets agree in both directions.
func checkItemsCoherent(t *testing.T, idx *ItemIndex) {
	t.Helper()

	if len(idx.order) != len(idx.footprints) || len(idx.seq) != len(idx.footprints) {
		t.Fatalf("order %d, seq %d, footprints %d disagree", len(idx.order), len(idx.seq), len(idx.footprints))
	}

	owned := 0
	for _, it := range idx.Items() {
		if it.index != idx {
			t.Errorf("%s listed but owned by another index", it.Kind)
		}
		cells, err := idx.Footprint(it)
		if err != nil {
			t.Fatalf("Footprint of placed %s failed: %v", it.Kind, err)
		}
		for _, c := range cells {
			if !slices.Contains(idx.ItemsAt(c), it) {
				t.Errorf("footprint cell %v of %s does not hold it", c, it.Kind)
			}
		}
		owned += len(cells)
	}

	held := 0
	for c, items := range snapshot(idx) {
		for _, it := range items {
			held++
			cells, err := idx.Footprint(it)
			if err != nil || !slices.Contains(cells, c) {
				t.Errorf("cell %v holds %s outside its footprint", c, it.Kind)
			}
		}
	}
	if owned != held {
		t.Errorf("footprints cover %d cells, grid holds %d entries", owned, held)
	}
}

func newBench() *Item {
	return &Item{
		Kind:  "bench",
		Name:  "Bench",
		Shape: []Offset{{0, 0}, {1, 0}},
		Uses:  UsesLower,
	}
}

func TestRotateShape(t *testing.T) {
	shape := []Offset{{0, 0}, {1, 0}, {2, 0}, {0, 1}}

	tests := []struct {
		rot  Rotation
		want []Offset
	}{
		{Rot0, []Offset{{0, 0}, {1, 0}, {2, 0}, {0, 1}}},
		{Rot90, []Offset{{1, 0}, {1, 1}, {1, 2}, {0, 0}}},
		{Rot180, []Offset{{2, 1}, {1, 1}, {0, 1}, {2, 0}}},
		{Rot270, []Offset{{0, 2}, {0, 1}, {0, 0}, {1, 2}}},
		{Rotation(5), []Offset{{1, 0}, {1, 1}, {1, 2}, {0, 0}}},
	}

	for _, tt := range tests {
		got := RotateShape(shape, tt.rot)
		if !slices.Equal(got, tt.want) {
			t.Errorf("RotateShape(rot=%d) = %v, want %v", tt.rot, got, tt.want)
		}
	}
}

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name  string
		shape []Offset
		valid bool
	}{
		{"single", []Offset{{0, 0}}, true},
		{"ell", []Offset{{0, 1}, {1, 1}, {1, 0}}, true},
		{"empty", nil, false},
		{"negative", []Offset{{0, 0}, {-1, 0}}, false},
		{"floating", []Offset{{1, 1}}, false},
		{"no zero y", []Offset{{0, 1}, {0, 2}}, false},
		{"duplicate", []Offset{{0, 0}, {0, 0}}, false},
	}

	for _, tt := range tests {
		err := ValidateShape(tt.shape)
		if tt.valid && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.valid && !errors.Is(err, ErrBadShape) {
			t.Errorf("%s: err = %v, want ErrBadShape", tt.name, err)
		}
	}
}

func TestPlaceRecordsFootprint(t *testing.T) {
	idx := NewItemIndex()
	bench := newBench()

	if err := idx.Place(C(3, 4, 0), Rot90, bench); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	cells, err := idx.Footprint(bench)
	if err != nil {
		t.Fatalf("Footprint failed: %v", err)
	}
	want := []Cell{C(3, 4, 0), C(3, 5, 0)}
	if !slices.Equal(cells, want) {
		t.Errorf("footprint = %v, want %v", cells, want)
	}
	if bench.Origin != C(3, 4, 0) || bench.Rotation != Rot90 || !bench.Placed() {
		t.Errorf("item state = origin %v rot %d placed %v", bench.Origin, bench.Rotation, bench.Placed())
	}
	if bench.Rotation.Degrees() != 90 {
		t.Errorf("Degrees = %v, want 90", bench.Rotation.Degrees())
	}
}

func TestReplaceLeavesNoResidue(t *testing.T) {
	idx := NewItemIndex()
	bench := newBench()

	if err := idx.Place(C(0, 0, 0), Rot0, bench); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := idx.Place(C(5, 5, 0), Rot0, bench); err != nil {
		t.Fatalf("re-Place failed: %v", err)
	}

	for _, c := range []Cell{C(0, 0, 0), C(1, 0, 0)} {
		if items := idx.ItemsAt(c); len(items) != 0 {
			t.Errorf("old cell %v still holds %v", c, items)
		}
	}
	if items := idx.ItemsAt(C(6, 5, 0)); len(items) != 1 || items[0] != bench {
		t.Errorf("new cell holds %v, want the bench", items)
	}
	if idx.Len() != 1 {
		t.Errorf("Len = %d, want 1", idx.Len())
	}
}

func TestPlaceRemoveRoundTrip(t *testing.T) {
	idx := NewItemIndex()
	rug := &Item{Kind: "rug", Shape: []Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, Uses: UsesFloor}
	if err := idx.Place(C(1, 1, 0), Rot0, rug); err != nil {
		t.Fatalf("Place rug failed: %v", err)
	}

	before := snapshot(idx)

	bench := newBench()
	if err := idx.Place(C(1, 1, 0), Rot0, bench); err != nil {
		t.Fatalf("Place bench failed: %v", err)
	}
	if err := idx.Remove(bench); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if after := snapshot(idx); !sameSnapshot(before, after) {
		t.Errorf("grid after place+remove = %v, want %v", after, before)
	}
	if bench.Placed() {
		t.Error("bench still marked placed")
	}
}

func TestSharedTiles(t *testing.T) {
	idx := NewItemIndex()
	rug := &Item{Kind: "rug", Shape: []Offset{{0, 0}, {1, 0}}, Uses: UsesFloor}
	bench := newBench()
	lamp := &Item{Kind: "lamp", Shape: []Offset{{0, 0}}, Uses: UsesUpper}

	for _, it := range []*Item{rug, bench, lamp} {
		if err := idx.Place(C(2, 2, 0), Rot0, it); err != nil {
			t.Fatalf("Place %s failed: %v", it.Kind, err)
		}
	}

	items := idx.ItemsAt(C(2, 2, 0))
	want := []*Item{rug, bench, lamp}
	if !slices.Equal(items, want) {
		t.Errorf("ItemsAt = %v, want rug, bench, lamp in placement order", items)
	}
	if got := idx.UsesAt(C(2, 2, 0)); got != UsesAll {
		t.Errorf("UsesAt = %v, want %v", got, UsesAll)
	}
}

func TestPlaceCollision(t *testing.T) {
	idx := NewItemIndex()
	bench := newBench()
	if err := idx.Place(C(0, 0, 0), Rot0, bench); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	tower := NewItem("tower")
	err := idx.Place(C(1, 0, 0), Rot0, tower)
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("Place over bench: err = %v, want ErrOccupied", err)
	}
	if tower.Placed() || idx.Len() != 1 {
		t.Error("failed placement changed the index")
	}

	// A failed move leaves the item where it was
	other := newBench()
	if err := idx.Place(C(0, 3, 0), Rot0, other); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := idx.Place(C(0, 0, 0), Rot90, other); !errors.Is(err, ErrOccupied) {
		t.Fatalf("moving onto bench: err = %v, want ErrOccupied", err)
	}
	if other.Origin != C(0, 3, 0) {
		t.Errorf("origin = %v after failed move, want (0,3,0)", other.Origin)
	}
	if items := idx.ItemsAt(C(1, 3, 0)); len(items) != 1 {
		t.Errorf("failed move disturbed old footprint: %v", items)
	}
}

func TestRemoveUnplaced(t *testing.T) {
	idx := NewItemIndex()
	if err := idx.Remove(newBench()); !errors.Is(err, ErrNotPlaced) {
		t.Errorf("Remove unplaced: err = %v, want ErrNotPlaced", err)
	}
	if _, err := idx.Footprint(newBench()); !errors.Is(err, ErrNotPlaced) {
		t.Errorf("Footprint unplaced: err = %v, want ErrNotPlaced", err)
	}
}

func TestUses(t *testing.T) {
	if UsesNonFloor != UsesLower|UsesUpper {
		t.Errorf("UsesNonFloor = %d, want lower|upper", UsesNonFloor)
	}
	if UsesAll != 7 {
		t.Errorf("UsesAll = %d, want 7", UsesAll)
	}

	u, err := ParseUses([]string{"floor", "upper"})
	if err != nil || u != UsesFloor|UsesUpper {
		t.Errorf("ParseUses = %v, %v", u, err)
	}
	if _, err := ParseUses([]string{"ceiling"}); err == nil {
		t.Error("ParseUses accepted unknown band")
	}
	if s := (UsesFloor | UsesUpper).String(); s != "floor|upper" {
		t.Errorf("String = %q", s)
	}
}

func TestPlaceHeldByAnotherIndex(t *testing.T) {
	a, b := NewItemIndex(), NewItemIndex()
	bench := newBench()

	if err := a.Place(C(0, 0, 0), Rot0, bench); err != nil {
		t.Fatalf("Place in a failed: %v", err)
	}
	if err := b.Place(C(3, 3, 0), Rot0, bench); !errors.Is(err, ErrForeignItem) {
		t.Fatalf("Place in b: err = %v, want ErrForeignItem", err)
	}
	if b.Len() != 0 || len(b.ItemsAt(C(3, 3, 0))) != 0 {
		t.Error("rejected placement left the bench in b")
	}
	if err := b.Remove(bench); !errors.Is(err, ErrNotPlaced) {
		t.Errorf("Remove from b: err = %v, want ErrNotPlaced", err)
	}
	if bench.Origin != C(0, 0, 0) {
		t.Errorf("origin = %v, want (0,0,0)", bench.Origin)
	}
	checkItemsCoherent(t, a)
	checkItemsCoherent(t, b)

	// Once a lets go, b may take it
	if err := a.Remove(bench); err != nil {
		t.Fatalf("Remove from a failed: %v", err)
	}
	if err := b.Place(C(3, 3, 0), Rot0, bench); err != nil {
		t.Fatalf("Place in b after removal failed: %v", err)
	}
	if a.Len() != 0 || len(a.ItemsAt(C(0, 0, 0))) != 0 {
		t.Error("a still holds the bench")
	}
	if b.Len() != 1 || len(b.ItemsAt(C(4, 3, 0))) != 1 {
		t.Error("b does not hold the bench")
	}
	checkItemsCoherent(t, a)
	checkItemsCoherent(t, b)
}

func TestItemIndexCoherenceRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(6789))
	idx := NewItemIndex()
	items := []*Item{
		newBench(),
		newBench(),
		{Kind: "rug", Shape: []Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, Uses: UsesFloor},
		{Kind: "lamp", Shape: []Offset{{0, 0}}, Uses: UsesUpper},
		{Kind: "shelf", Shape: []Offset{{0, 0}, {0, 1}}, Uses: UsesNonFloor},
	}

	for i := 0; i < 500; i++ {
		it := items[rng.Intn(len(items))]
		if rng.Intn(3) == 0 {
			err := idx.Remove(it)
			if it.Placed() || (err != nil && !errors.Is(err, ErrNotPlaced)) {
				t.Fatalf("step %d: Remove %s: placed=%v err=%v", i, it.Kind, it.Placed(), err)
			}
		} else {
			origin := C(rng.Intn(6), rng.Intn(6), rng.Intn(2))
			err := idx.Place(origin, Rotation(rng.Intn(4)), it)
			if err != nil && !errors.Is(err, ErrOccupied) {
				t.Fatalf("step %d: Place %s: %v", i, it.Kind, err)
			}
		}
		checkItemsCoherent(t, idx)
	}
}
