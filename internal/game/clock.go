package game

import (
	"sync"
	"time"
)

// countdown is a 1 Hz tick source with synchronous cancellation.
// Stop blocks until the goroutine has exited, so a stopped countdown
// can never tick again afterwards.
type countdown struct {
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// startCountdown calls onTick once per second until onTick returns
// false or Stop is called.
func startCountdown(onTick func() bool) *countdown {
	that := &countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(that.done)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-that.stop:
				return
			case <-ticker.C:
				if !onTick() {
					return
				}
			}
		}
	}()

	return that
}

// Stop cancels the countdown and waits for the goroutine to exit.
// Must not be called while holding a lock that onTick acquires.
func (that *countdown) Stop() {
	that.stopOnce.Do(func() { close(that.stop) })
	<-that.done
}

func stopClocks(clocks []*countdown) {
	for _, clock := range clocks {
		clock.Stop()
	}
}
