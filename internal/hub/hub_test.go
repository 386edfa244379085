package hub

import (
	"context"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the test times out.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func TestRegisterAndUnregister(t *testing.T) {
	h := startHub(t)

	a := h.Register("ana")
	b := h.Register("beto")
	if a.ID == b.ID {
		t.Fatal("handles should get distinct ids")
	}
	waitFor(t, func() bool { return h.Stats().Online == 2 })

	h.Unregister(a.ID)
	waitFor(t, func() bool { return h.Stats().Online == 1 })

	if _, ok := <-a.Events; ok {
		t.Fatal("unregistered handle should have a closed channel")
	}
	if got := h.Stats().Visitors; got != 2 {
		t.Fatalf("Visitors = %d, want 2", got)
	}
}

func TestCompletionBroadcastsToOthers(t *testing.T) {
	h := startHub(t)

	a := h.Register("ana")
	b := h.Register("beto")
	waitFor(t, func() bool { return h.Stats().Online == 2 })

	h.RecordCompletion(a.ID)
	waitFor(t, func() bool { return h.Stats().Completed == 1 })

	select {
	case ev := <-b.Events:
		if ev.Type != EventSecretFound || ev.Username != "ana" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("other session was not notified")
	}

	select {
	case ev := <-a.Events:
		t.Fatalf("finisher should not be notified, got %+v", ev)
	default:
	}
}

func TestShutdownWaitsForSessions(t *testing.T) {
	h := startHub(t)
	handle := h.Register("ana")
	waitFor(t, func() bool { return h.Stats().Online == 1 })

	go func() {
		ev := <-handle.Events
		if ev.Type == EventServerShutdown {
			h.Unregister(handle.ID)
		}
	}()

	start := time.Now()
	h.Shutdown(5 * time.Second)
	if time.Since(start) > 2*time.Second {
		t.Fatal("Shutdown should return once sessions leave")
	}
	waitFor(t, func() bool { return h.Stats().Online == 0 })
}

func TestShutdownTimesOut(t *testing.T) {
	h := startHub(t)
	h.Register("terca")
	waitFor(t, func() bool { return h.Stats().Online == 1 })

	start := time.Now()
	h.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Fatalf("Shutdown returned after %v, before the timeout", elapsed)
	}
}

func TestUnregisterQueuedBeforeRun(t *testing.T) {
	for i := 0; i < 100; i++ {
		h := New(nil)
		handle := h.Register("fugaz")
		h.Unregister(handle.ID)

		ctx, cancel := context.WithCancel(context.Background())
		go h.Run(ctx)

		select {
		case _, ok := <-handle.Events:
			if ok {
				t.Fatal("unexpected event on a session that left")
			}
		case <-time.After(time.Second):
			cancel()
			t.Fatalf("run %d: session stayed registered after Unregister", i)
		}
		waitFor(t, func() bool {
			s := h.Stats()
			return s.Online == 0 && s.Visitors == 1
		})
		cancel()
	}
}

func TestCompletionsAreNeverDropped(t *testing.T) {
	h := New(nil)
	const n = 40 // more than the channel buffer

	sent := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			h.RecordCompletion(1)
		}
		close(sent)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)

	<-sent
	waitFor(t, func() bool { return h.Stats().Completed == n })
}

func TestCallsAfterRunStopDoNotBlock(t *testing.T) {
	h := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()
	<-h.done

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 40; i++ {
			handle := h.Register("tarde")
			if _, ok := <-handle.Events; ok {
				t.Error("handle from a stopped hub should be closed")
			}
			h.RecordCompletion(handle.ID)
			h.Unregister(handle.ID)
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("hub calls blocked after Run stopped")
	}
}
