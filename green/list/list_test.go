package list

import "testing"

func TestListFIFO(t *testing.T) {
	l := New[int]()
	for i := 1; i <= 3; i++ {
		l.Enqueue(i)
	}
	if got := l.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	for want := 1; want <= 3; want++ {
		got, ok := l.Dequeue()
		if !ok || got != want {
			t.Fatalf("Dequeue() = %d, %v, want %d, true", got, ok, want)
		}
	}
	if _, ok := l.Dequeue(); ok {
		t.Fatal("Dequeue() ok = true on empty list, want false")
	}
}

func TestListRemoveByIdentity(t *testing.T) {
	type item struct{ n int }
	a, b, c := &item{1}, &item{1}, &item{1}

	l := New[*item]()
	l.Enqueue(a)
	l.Enqueue(b)
	l.Enqueue(c)

	if !l.Remove(b) {
		t.Fatal("Remove(b) = false, want true")
	}
	if l.Contains(b) {
		t.Fatal("Contains(b) = true after Remove")
	}
	if l.Remove(b) {
		t.Fatal("second Remove(b) = true, want false")
	}

	if got, _ := l.Dequeue(); got != a {
		t.Fatal("expected a at head")
	}
	if got, _ := l.Dequeue(); got != c {
		t.Fatal("expected c after a")
	}
	if l.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", l.Len())
	}
}

func TestListRemoveHeadAndTail(t *testing.T) {
	var l List[string]
	l.Enqueue("x")
	l.Enqueue("y")
	l.Enqueue("z")

	l.Remove("x")
	l.Remove("z")
	l.Enqueue("w")

	var got []string
	for {
		v, ok := l.Dequeue()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 2 || got[0] != "y" || got[1] != "w" {
		t.Fatalf("drained %v, want [y w]", got)
	}
}

func TestListFreeResets(t *testing.T) {
	l := New[int]()
	l.Enqueue(1)
	l.Enqueue(2)
	l.Free()

	if l.Len() != 0 {
		t.Fatalf("Len() = %d after Free, want 0", l.Len())
	}
	l.Enqueue(7)
	if v, ok := l.Dequeue(); !ok || v != 7 {
		t.Fatalf("Dequeue() = %d, %v, want 7, true", v, ok)
	}
}
