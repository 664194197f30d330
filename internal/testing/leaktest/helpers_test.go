package leaktest

import (
	"testing"
	"time"
)

func TestGoroutineCheckerNoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineCheckerTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() {
		<-done
	}()
	time.Sleep(20 * time.Millisecond)

	// One parked goroutine is within a tolerance of 2
	checker.Check(2)

	close(done)
}

func TestCheckNoGoroutineLeak(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			time.Sleep(time.Millisecond)
		}()
		<-done
	})
}
