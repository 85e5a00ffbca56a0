package report

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ziadkadry99/archmap/internal/logging"
)

const scenarioA = `{"projectName":"x","dependencies":{"nodes":[{"id":"a"}],"links":[]}}`

func setupService(t *testing.T) (*Service, *Metrics) {
	t.Helper()
	m := NewMetrics(prometheus.NewRegistry())
	svc := NewService(logging.Discard(), m, Options{SubscriberBuffer: 1})
	t.Cleanup(svc.Close)
	return svc, m
}

func TestSubmitStoresAndNotifiesOnce(t *testing.T) {
	svc, m := setupService(t)
	sub := svc.Subscribe()
	defer sub.Close()

	if _, err := svc.Submit([]byte(scenarioA)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	cur := svc.Current()
	if cur == nil || string(cur.Raw()) != scenarioA {
		t.Fatalf("Current() = %v, want submitted report", cur)
	}

	select {
	case ev := <-sub.C():
		if ev.Type != EventUpdate {
			t.Errorf("event type = %q", ev.Type)
		}
	default:
		t.Fatal("expected one notification")
	}
	select {
	case ev := <-sub.C():
		t.Errorf("unexpected extra notification %v", ev)
	default:
	}

	if got := testutil.ToFloat64(m.submissions.WithLabelValues("accepted")); got != 1 {
		t.Errorf("accepted submissions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.broadcasts); got != 1 {
		t.Errorf("broadcasts = %v, want 1", got)
	}
}

func TestSubmitInvalidKeepsPrior(t *testing.T) {
	svc, m := setupService(t)

	if _, err := svc.Submit([]byte(`{"dependencies":{}}`)); err == nil {
		t.Fatal("expected rejection")
	}
	if svc.Current() != nil {
		t.Fatal("expected empty store after rejected first submission")
	}

	if _, err := svc.Submit([]byte(scenarioA)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	sub := svc.Subscribe()
	defer sub.Close()

	if _, err := svc.Submit([]byte(`{"dependencies":{}}`)); err == nil {
		t.Fatal("expected rejection")
	}
	if cur := svc.Current(); cur == nil || cur.ProjectName != "x" {
		t.Fatalf("Current() = %v, want prior report", cur)
	}
	select {
	case ev := <-sub.C():
		t.Errorf("rejected submission notified: %v", ev)
	default:
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues("rejected")); got != 2 {
		t.Errorf("rejected submissions = %v, want 2", got)
	}
}

func TestClearThenRead(t *testing.T) {
	svc, m := setupService(t)
	sub := svc.Subscribe()
	defer sub.Close()

	if _, err := svc.Submit([]byte(scenarioA)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-sub.C()

	svc.Clear()
	svc.Clear()
	if svc.Current() != nil {
		t.Fatal("expected no report after clear")
	}
	select {
	case ev := <-sub.C():
		t.Errorf("clear notified: %v", ev)
	default:
	}
	if got := testutil.ToFloat64(m.clears); got != 2 {
		t.Errorf("clears = %v, want 2", got)
	}
}

func TestSubscriberGauge(t *testing.T) {
	svc, m := setupService(t)
	a := svc.Subscribe()
	b := svc.Subscribe()
	if got := testutil.ToFloat64(m.subscribers); got != 2 {
		t.Errorf("subscribers = %v, want 2", got)
	}
	a.Close()
	b.Close()
	if got := testutil.ToFloat64(m.subscribers); got != 0 {
		t.Errorf("subscribers = %v, want 0", got)
	}
}

func TestCloseDisconnectsSubscribers(t *testing.T) {
	svc, _ := setupService(t)
	sub := svc.Subscribe()
	svc.Close()
	if _, ok := <-sub.C(); ok {
		t.Fatal("expected closed channel")
	}
	sub.Close()
}

// A subscriber that sees a notification must observe the report that
// caused it or a later one, never an older one.
func TestNotificationFollowsCommit(t *testing.T) {
	svc, _ := setupService(t)
	sub := svc.Subscribe()
	defer sub.Close()

	const writers = 8
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload := fmt.Sprintf(`{"projectName":"p%d","dependencies":{}}`, i)
			if _, err := svc.Submit([]byte(payload)); err != nil {
				t.Errorf("submit %d: %v", i, err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		select {
		case <-sub.C():
			if svc.Current() == nil {
				t.Fatal("notified before any report was stored")
			}
		case <-done:
			if svc.Current() == nil {
				t.Fatal("expected a report after all submissions")
			}
			return
		}
	}
}
