package room

import (
	"sync"
	"time"

	"github.com/pocha-games/partyroom/internal/model"
)

// roundTimer drives the countdown for one running room. The handle is
// owned by the Room record and stopped on every phase exit, so a stale
// loop can never keep ticking a finished or deleted room.
type roundTimer struct {
	stop chan struct{}
	once sync.Once
}

var _ model.TimerHandle = (*roundTimer)(nil)

// Stop cancels the timer; safe to call more than once
func (t *roundTimer) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// startTimer spawns the per-room tick loop. Ticks funnel through
// Engine.Tick, which takes the engine lock, so a tick that loses the
// race with Stop finds the room no longer running and does nothing.
func (e *Engine) startTimer(code model.RoomCode) model.TimerHandle {
	t := &roundTimer{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(e.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				e.Tick(code)
			}
		}
	}()

	return t
}
