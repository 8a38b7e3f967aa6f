package leaktest

import (
	"testing"
	"time"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() {
		close(done)
	}()
	<-done

	checker.Check(0)
}

func TestCheckNoGoroutineLeak(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		ch := make(chan int, 1)
		ch <- 1
		<-ch
	})
}

func TestWaitForGoroutines_Completes(t *testing.T) {
	done := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(done)
	}()
	<-done

	WaitForGoroutines(t, 1000, time.Second)
}
