package report

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRegistryAddRemove(t *testing.T) {
	var sizes []int
	reg := NewRegistry(1, func(n int) { sizes = append(sizes, n) })

	a := reg.Add()
	b := reg.Add()
	if a.ID == b.ID {
		t.Fatal("expected distinct subscription ids")
	}
	if got := reg.IDs(); len(got) != 2 || got[0] != a.ID || got[1] != b.ID {
		t.Errorf("IDs() = %v, want registration order", got)
	}

	if !reg.Remove(a.ID) {
		t.Error("expected first Remove to report true")
	}
	if reg.Remove(a.ID) {
		t.Error("expected second Remove to report false")
	}
	if _, ok := <-a.C(); ok {
		t.Error("expected removed subscription channel to be closed")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}

	want := []int{1, 2, 1}
	if len(sizes) != len(want) {
		t.Fatalf("size callbacks = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("sizes[%d] = %d, want %d", i, sizes[i], want[i])
		}
	}
}

func TestRegistrySizeCallbackFollowsLen(t *testing.T) {
	var last atomic.Int64
	var added chan struct{}
	reg := NewRegistry(1, func(n int) {
		if n == 1 && added != nil {
			close(added)
			added = nil
			time.Sleep(20 * time.Millisecond)
		}
		last.Store(int64(n))
	})

	for range 5 {
		added = make(chan struct{})
		signal := added
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Add()
		}()
		go func() {
			defer wg.Done()
			<-signal
			for _, id := range reg.IDs() {
				reg.Remove(id)
			}
		}()
		wg.Wait()

		if got := last.Load(); got != int64(reg.Len()) {
			t.Fatalf("last size callback = %d, Len() = %d", got, reg.Len())
		}
	}
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	reg := NewRegistry(1, nil)
	sub := reg.Add()
	sub.Close()
	sub.Close()
	reg.CloseAll()
	sub.Close()
	if reg.Len() != 0 {
		t.Errorf("Len() = %d, want 0", reg.Len())
	}
}

func TestBroadcastCoalesces(t *testing.T) {
	reg := NewRegistry(1, nil)
	sub := reg.Add()

	d, c := reg.Broadcast(UpdateEvent)
	if d != 1 || c != 0 {
		t.Fatalf("first broadcast delivered=%d coalesced=%d", d, c)
	}
	d, c = reg.Broadcast(UpdateEvent)
	if d != 0 || c != 1 {
		t.Fatalf("second broadcast delivered=%d coalesced=%d", d, c)
	}

	ev := <-sub.C()
	if ev.Type != EventUpdate {
		t.Errorf("event type = %q", ev.Type)
	}
	select {
	case ev := <-sub.C():
		t.Errorf("unexpected second event %v", ev)
	default:
	}
}

func TestBroadcastReachesEverySubscriber(t *testing.T) {
	reg := NewRegistry(4, nil)
	subs := make([]*Subscription, 5)
	for i := range subs {
		subs[i] = reg.Add()
	}
	if d, _ := reg.Broadcast(UpdateEvent); d != len(subs) {
		t.Fatalf("delivered = %d, want %d", d, len(subs))
	}
	for i, s := range subs {
		select {
		case <-s.C():
		default:
			t.Errorf("subscriber %d got nothing", i)
		}
	}
}

func TestRegistryConcurrentChurn(t *testing.T) {
	reg := NewRegistry(1, nil)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s := reg.Add()
			reg.Broadcast(UpdateEvent)
			s.Close()
		}()
		go func() {
			defer wg.Done()
			reg.Broadcast(UpdateEvent)
		}()
	}
	wg.Wait()
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after churn, want 0", reg.Len())
	}
}
