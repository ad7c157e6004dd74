package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown(t *testing.T) {
	t.Run("Ticks roughly once per second until stopped", func(t *testing.T) {
		// Given: a running countdown feeding a channel
		ticks := make(chan struct{}, 8)
		clock := startCountdown(func() bool {
			ticks <- struct{}{}
			return true
		})

		// When: waiting for the first tick
		select {
		case <-ticks:
		case <-time.After(3 * time.Second):
			t.Fatal("no tick within 3 seconds")
		}

		// Then: after Stop returns no further tick arrives
		clock.Stop()
		drain(ticks)

		select {
		case <-ticks:
			t.Fatal("tick after Stop returned")
		case <-time.After(1500 * time.Millisecond):
		}
	})

	t.Run("Stops itself when onTick returns false", func(t *testing.T) {
		// Given: a countdown whose callback quits on the first tick
		var count atomic.Int32
		clock := startCountdown(func() bool {
			count.Add(1)
			return false
		})

		// When: waiting past two tick periods
		require.Eventually(t, func() bool {
			select {
			case <-clock.done:
				return true
			default:
				return false
			}
		}, 3*time.Second, 50*time.Millisecond)

		time.Sleep(1200 * time.Millisecond)

		// Then: the callback ran exactly once
		assert.Equal(t, int32(1), count.Load())
	})

	t.Run("Stop is idempotent", func(t *testing.T) {
		// Given: a running countdown
		clock := startCountdown(func() bool { return true })

		// When: stopping it twice
		clock.Stop()
		clock.Stop()

		// Then: the goroutine has exited
		select {
		case <-clock.done:
		default:
			t.Fatal("countdown goroutine still running")
		}
	})
}

func drain(ch chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
