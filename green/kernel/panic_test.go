package kernel

import "testing"

func TestThreadPanicBecomesReturnValue(t *testing.T) {
	handled := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { handled <- info })
	defer SetPanicHandler(nil)

	runRoot(t, func(root *Context) {
		h := root.Create(func(*Context, any, *Channel) any {
			panic("boom")
		}, nil, Flags{}, nil)
		id, _ := root.ID(h)

		v, err := root.Join(h)
		if err != nil {
			t.Errorf("Join() error = %v", err)
			return
		}
		info, ok := v.(*PanicInfo)
		if !ok {
			t.Errorf("Join() = %T, want *PanicInfo", v)
			return
		}
		if info.Value != "boom" || info.ThreadID != id || len(info.Stack) == 0 {
			t.Errorf("PanicInfo = {%d %v %d bytes}, want {%d boom stack}", info.ThreadID, info.Value, len(info.Stack), id)
		}

		// The universe keeps scheduling.
		h = root.Create(func(*Context, any, *Channel) any { return "ok" }, nil, Flags{}, nil)
		if v, _ := root.Join(h); v != "ok" {
			t.Errorf("Join() after panic = %v, want ok", v)
		}
	})

	if !InPanicMode() {
		t.Fatal("InPanicMode() = false after a thread panicked")
	}
	select {
	case info := <-handled:
		if info.Value != "boom" {
			t.Fatalf("handler got %v, want boom", info.Value)
		}
	default:
		t.Fatal("panic handler not invoked")
	}
}
