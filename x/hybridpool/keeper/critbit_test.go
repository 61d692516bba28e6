package keeper

import (
	"testing"

	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

func tickWith(qty uint64) *types.Tick {
	t := types.NewTick()
	t.Place(1, "owner", qty, 0)
	return t
}

func TestCritbitTreeInsertSingleLeafBecomesRoot(t *testing.T) {
	tree := NewCritbitTree()
	slot, err := tree.Insert(100, tickWith(1))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if slot != 0 {
		t.Errorf("expected first leaf at slot 0, got %d", slot)
	}
	key, _, ok := tree.Min()
	if !ok || key != 100 {
		t.Errorf("expected min key 100, got %d (ok=%v)", key, ok)
	}
}

func TestCritbitTreeInsertOrdersByKey(t *testing.T) {
	tree := NewCritbitTree()
	keys := []uint64{500, 100, 900, 300, 700}
	for _, k := range keys {
		if _, err := tree.Insert(k, tickWith(1)); err != nil {
			t.Fatalf("insert(%d): %v", k, err)
		}
	}

	minKey, _, ok := tree.Min()
	if !ok || minKey != 100 {
		t.Fatalf("expected min 100, got %d", minKey)
	}
	maxKey, _, ok := tree.Max()
	if !ok || maxKey != 900 {
		t.Fatalf("expected max 900, got %d", maxKey)
	}

	var walked []uint64
	key, _, ok := tree.Min()
	for ok {
		walked = append(walked, key)
		var nextOK bool
		key, _, nextOK, _ = tree.Next(key)
		ok = nextOK
	}
	want := []uint64{100, 300, 500, 700, 900}
	if len(walked) != len(want) {
		t.Fatalf("walked %v, want %v", walked, want)
	}
	for i := range want {
		if walked[i] != want[i] {
			t.Errorf("walked[%d] = %d, want %d", i, walked[i], want[i])
		}
	}
}

func TestCritbitTreeDuplicateKeyRejected(t *testing.T) {
	tree := NewCritbitTree()
	if _, err := tree.Insert(42, tickWith(1)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := tree.Insert(42, tickWith(1)); err != types.ErrAlreadyExist {
		t.Errorf("expected ErrAlreadyExist, got %v", err)
	}
}

func TestCritbitTreeFind(t *testing.T) {
	tree := NewCritbitTree()
	tree.Insert(10, tickWith(1))
	tree.Insert(20, tickWith(1))

	if _, found, err := tree.Find(20); err != nil || !found {
		t.Errorf("expected to find key 20, found=%v err=%v", found, err)
	}
	if _, found, err := tree.Find(30); err != nil || found {
		t.Errorf("expected not to find key 30, found=%v err=%v", found, err)
	}
}

func TestCritbitTreeRemoveMiddleKeepsOrder(t *testing.T) {
	tree := NewCritbitTree()
	keys := []uint64{10, 20, 30, 40, 50}
	for _, k := range keys {
		tree.Insert(k, tickWith(1))
	}

	slot, found, err := tree.Find(30)
	if err != nil || !found {
		t.Fatalf("expected to find 30 before removal")
	}
	if _, err := tree.Remove(slot); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var walked []uint64
	key, _, ok := tree.Min()
	for ok {
		walked = append(walked, key)
		var nextOK bool
		key, _, nextOK, _ = tree.Next(key)
		ok = nextOK
	}
	want := []uint64{10, 20, 40, 50}
	if len(walked) != len(want) {
		t.Fatalf("walked %v, want %v", walked, want)
	}
	for i := range want {
		if walked[i] != want[i] {
			t.Errorf("walked[%d] = %d, want %d", i, walked[i], want[i])
		}
	}
}

func TestCritbitTreeRemoveLastLeafEmptiesTree(t *testing.T) {
	tree := NewCritbitTree()
	slot, err := tree.Insert(777, tickWith(1))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := tree.Remove(slot); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !tree.IsEmpty() {
		t.Errorf("expected tree to be empty after removing its only leaf")
	}
	// a fresh insert after emptying must succeed and become the new root.
	if _, err := tree.Insert(1, tickWith(1)); err != nil {
		t.Errorf("insert after empty: %v", err)
	}
}

func TestCritbitTreeRemoveAllKeysInRandomOrder(t *testing.T) {
	tree := NewCritbitTree()
	keys := []uint64{64, 1, 1000, 33, 512, 7, 901, 256}
	for _, k := range keys {
		if _, err := tree.Insert(k, tickWith(1)); err != nil {
			t.Fatalf("insert(%d): %v", k, err)
		}
	}
	removeOrder := []uint64{33, 1000, 64, 7, 256, 1, 512, 901}
	for _, k := range removeOrder {
		slot, found, err := tree.Find(k)
		if err != nil || !found {
			t.Fatalf("expected to find %d before removal, found=%v err=%v", k, found, err)
		}
		if _, err := tree.Remove(slot); err != nil {
			t.Fatalf("remove(%d): %v", k, err)
		}
	}
	if !tree.IsEmpty() {
		t.Errorf("expected tree empty after removing every key, size=%d", tree.Size())
	}
}

func TestCritbitTreePrevNext(t *testing.T) {
	tree := NewCritbitTree()
	keys := []uint64{10, 20, 30}
	for _, k := range keys {
		tree.Insert(k, tickWith(1))
	}
	if key, _, ok, err := tree.Next(10); err != nil || !ok || key != 20 {
		t.Errorf("Next(10) = %d, %v, %v; want 20, true, nil", key, ok, err)
	}
	if _, _, ok, err := tree.Next(30); err != nil || ok {
		t.Errorf("Next(30) should report no successor, got ok=%v err=%v", ok, err)
	}
	if key, _, ok, err := tree.Prev(30); err != nil || !ok || key != 20 {
		t.Errorf("Prev(30) = %d, %v, %v; want 20, true, nil", key, ok, err)
	}
	if _, _, ok, err := tree.Prev(10); err != nil || ok {
		t.Errorf("Prev(10) should report no predecessor, got ok=%v err=%v", ok, err)
	}
}

func TestCritbitTreeCloneIsIndependent(t *testing.T) {
	tree := NewCritbitTree()
	slot, _ := tree.Insert(100, tickWith(5))

	clone := tree.Clone()
	tick, _ := clone.ValueAt(slot)
	tick.Fill(5)

	origTick, _ := tree.ValueAt(slot)
	if origTick.TotalQuantity() != 5 {
		t.Errorf("mutating a clone's tick must not affect the original, got qty=%d", origTick.TotalQuantity())
	}
	cloneTick, _ := clone.ValueAt(slot)
	if cloneTick.TotalQuantity() != 0 {
		t.Errorf("expected clone's tick to be drained, got qty=%d", cloneTick.TotalQuantity())
	}
}
