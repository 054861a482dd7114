package ring

import "testing"

func TestRingTryPopEmpty(t *testing.T) {
	r := New[int](4)

	_, ok := r.TryPop()
	if ok {
		t.Fatalf("TryPop() ok = true, want false")
	}
}

func TestRingTryPushFull(t *testing.T) {
	const slots = 4
	r := New[int](slots)

	for i := 0; i < slots; i++ {
		if ok := r.TryPush(i); !ok {
			t.Fatalf("TryPush() ok = false at slot %d, want true", i)
		}
	}
	if ok := r.TryPush(99); ok {
		t.Fatalf("TryPush() ok = true when full, want false")
	}

	for i := 0; i < slots; i++ {
		v, ok := r.TryPop()
		if !ok {
			t.Fatalf("TryPop() ok = false at slot %d, want true", i)
		}
		if v != i {
			t.Fatalf("TryPop() = %d, want %d", v, i)
		}
	}
}

func TestRingWrapsAround(t *testing.T) {
	r := New[int](3)
	next := 0
	for round := 0; round < 10; round++ {
		if !r.TryPush(round) {
			t.Fatalf("TryPush(%d) failed", round)
		}
		if round%2 == 1 {
			for r.Len() > 0 {
				v, _ := r.TryPop()
				if v != next {
					t.Fatalf("TryPop() = %d, want %d", v, next)
				}
				next++
			}
		}
	}
}

func TestRingCapacityFloor(t *testing.T) {
	r := New[string](0)
	if r.Cap() != 1 {
		t.Fatalf("Cap() = %d, want 1", r.Cap())
	}
	if !r.TryPush("a") {
		t.Fatal("TryPush() on capacity-1 ring failed")
	}
	if r.TryPush("b") {
		t.Fatal("TryPush() succeeded past capacity")
	}
}

func TestRingDelete(t *testing.T) {
	r := New[int](2)
	r.TryPush(1)
	r.Delete()

	if _, ok := r.TryPop(); ok {
		t.Fatal("TryPop() ok = true after Delete")
	}
	if r.TryPush(2) {
		t.Fatal("TryPush() ok = true after Delete")
	}
	if r.Cap() != 0 {
		t.Fatalf("Cap() = %d after Delete, want 0", r.Cap())
	}
}
