package world

import (
	"errors"
	"slices"
	"testing"
)

// buildTestWorld lays out a small floor: a lounge on the left, a corridor
// on the right, and a door between them.
func buildTestWorld(t *testing.T) *World {
	t.Helper()

	w := New(16, 16)
	if err := w.AddExpanse(&Expanse{Name: "ground", Floor: 0}, Rect(1, 1, 9, 9, 0)); err != nil {
		t.Fatalf("AddExpanse failed: %v", err)
	}
	if err := w.AddRoom(NewRoom("corridor", "corridor", 0), Rect(3, 1, 9, 9, 0)); err != nil {
		t.Fatalf("AddRoom failed: %v", err)
	}
	if err := w.AddRoom(NewRoom("lounge", "lounge", 0), Rect(1, 1, 3, 9, 0)); err != nil {
		t.Fatalf("AddRoom failed: %v", err)
	}
	if _, err := w.AddDoor(3, 2, 3, 3, 0); err != nil {
		t.Fatalf("AddDoor failed: %v", err)
	}
	return w
}

func TestBuildTestWorld(t *testing.T) {
	w := buildTestWorld(t)

	if w.Rooms.Len() != 2 {
		t.Fatalf("room count = %d, want 2", w.Rooms.Len())
	}
	if r := w.RoomAt(C(2, 5, 0)); r == nil || r.Type != "lounge" {
		t.Errorf("RoomAt(2,5,0) = %v, want lounge", r)
	}
	if r := w.RoomAt(C(0, 0, 0)); r != nil {
		t.Errorf("RoomAt(0,0,0) = %v, want nil", r)
	}
	if !w.Doors.Contains(3, 3, 3, 2, 0) {
		t.Error("door between rooms missing")
	}
	checkCoherent(t, w.Rooms)
	checkCoherent(t, w.Expanses)
}

func TestFloorMismatch(t *testing.T) {
	w := New(8, 8)
	err := w.AddRoom(NewRoom("attic", "lounge", 1), []Cell{C(0, 0, 1), C(1, 0, 0)})
	if !errors.Is(err, ErrFloorMismatch) {
		t.Errorf("AddRoom across floors: err = %v, want ErrFloorMismatch", err)
	}
	if w.Rooms.Len() != 0 {
		t.Error("rejected room was indexed")
	}
}

func TestRoomOutsideExpanse(t *testing.T) {
	w := buildTestWorld(t)
	err := w.AddRoom(NewRoom("porch", "lounge", 0), Rect(8, 8, 10, 9, 0))
	if !errors.Is(err, ErrOutsideExpanse) {
		t.Errorf("AddRoom past the expanse: err = %v, want ErrOutsideExpanse", err)
	}
	if w.Rooms.Len() != 2 || w.RoomAt(C(8, 8, 0)).Name != "corridor" {
		t.Error("rejected room changed the index")
	}

	// Floor 1 has no expanse at all
	err = w.AddRoom(NewRoom("attic", "lounge", 1), Rect(1, 1, 2, 2, 1))
	if !errors.Is(err, ErrOutsideExpanse) {
		t.Errorf("AddRoom on bare floor: err = %v, want ErrOutsideExpanse", err)
	}
	checkCoherent(t, w.Rooms)
}

func TestFloors(t *testing.T) {
	w := buildTestWorld(t)
	if err := w.AddExpanse(&Expanse{Name: "upstairs", Floor: 2}, Rect(1, 1, 3, 3, 2)); err != nil {
		t.Fatalf("AddExpanse failed: %v", err)
	}
	if err := w.AddRoom(NewRoom("attic", "lounge", 2), Rect(1, 1, 3, 3, 2)); err != nil {
		t.Fatalf("AddRoom failed: %v", err)
	}

	if got := w.Floors(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Floors() = %v, want [0 2]", got)
	}
}

func TestWorldPlaceItem(t *testing.T) {
	w := buildTestWorld(t)
	bench := newBench()

	if err := w.PlaceItem(bench, C(4, 4, 0), Rot0); err != nil {
		t.Fatalf("PlaceItem failed: %v", err)
	}
	if items := w.Items.ItemsAt(C(5, 4, 0)); len(items) != 1 {
		t.Errorf("ItemsAt(5,4,0) = %v, want the bench", items)
	}
}
