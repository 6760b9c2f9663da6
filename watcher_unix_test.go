//go:build unix

package visibility

import (
	"sync"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestOnSignal_PostsHandler(t *testing.T) {
	eventQueue := make(chan func(), 10)
	stopCh := make(chan struct{})
	defer close(stopCh)

	var mu sync.Mutex
	var resized int
	OnSignal(func() {
		mu.Lock()
		resized++
		mu.Unlock()
	}, ResizeSignals()...).Start(eventQueue, stopCh)

	if err := unix.Kill(unix.Getpid(), unix.SIGWINCH); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case fn := <-eventQueue:
		fn()
	case <-time.After(time.Second):
		t.Fatal("resize signal was not forwarded")
	}

	mu.Lock()
	defer mu.Unlock()
	if resized != 1 {
		t.Errorf("resized = %d, want 1", resized)
	}
}
