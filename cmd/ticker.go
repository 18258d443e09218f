package cmd

import (
	"time"

	"github.com/robfig/cron/v3"
)

// startTicker advances the session one day every interval, on its own
// goroutine, until the returned stop function is called.
//
// Intervals are rounded down to the second, with a minimum of one second.
func startTicker(s *Session, every time.Duration) (stop func()) {
	c := cron.New()
	c.Schedule(cron.Every(every), cron.FuncJob(s.Tick))
	c.Start()
	s.log.Infow("ticker started", "every", every.String())
	return func() {
		<-c.Stop().Done()
		s.log.Infow("ticker stopped")
	}
}
