package main

import (
	"context"
	"os"
	osSignal "os/signal"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestCancelOnSignal(t *testing.T) {
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	signalNotify = func(ch chan<- os.Signal, sig ...os.Signal) {
		go func() {
			ch <- syscall.SIGTERM
		}()
	}

	ctx, cancel := cancelOnSignal(context.Background(), zaptest.NewLogger(t))
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("expected signal to cancel the context")
	}
}

func TestCancelOnSignalStop(t *testing.T) {
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	signalNotify = func(chan<- os.Signal, ...os.Signal) {}

	ctx, cancel := cancelOnSignal(context.Background(), zaptest.NewLogger(t))
	if ctx.Err() != nil {
		t.Fatalf("context cancelled before any signal: %v", ctx.Err())
	}
	cancel()
	if ctx.Err() == nil {
		t.Fatalf("expected cancel to end the context")
	}
}
