package cron

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StartCron schedules every registered job and starts the scheduler.
// CRON_<NAME> overrides a job's registered schedule. A job still running
// when its next tick fires is skipped.
func StartCron() (*cron.Cron, error) {
	logger := cron.PrintfLogger(slogPrintf{})
	c := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	jobs := Jobs()
	for _, name := range Names() {
		j := jobs[name]
		sched := j.EffectiveSchedule()
		if _, err := c.AddFunc(sched, func() { j.Run() }); err != nil {
			return nil, fmt.Errorf("register job %s (%q): %w", name, sched, err)
		}
		slog.Info("cron: job scheduled", "job", name, "schedule", sched)
	}
	c.Start()
	return c, nil
}

// slogPrintf adapts the default slog logger to cron's Printf logger.
type slogPrintf struct{}

func (slogPrintf) Printf(format string, args ...interface{}) {
	slog.Info(fmt.Sprintf(format, args...), "component", "cron")
}
