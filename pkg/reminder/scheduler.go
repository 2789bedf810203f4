package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const DefaultSchedule = "@every 1m"

type Scheduler struct {
	cron     *cron.Cron
	service  IReminder
	log      *logrus.Logger
	timeout  time.Duration
	schedule string
	observe  func(delivered int)
}

func NewScheduler(service IReminder, log *logrus.Logger, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		service:  service,
		log:      log,
		timeout:  30 * time.Second,
		schedule: schedule,
	}
}

// OnDelivered registers a callback invoked with the count of each run.
func (s *Scheduler) OnDelivered(fn func(delivered int)) *Scheduler {
	s.observe = fn
	return s
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("Reminder scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running delivery to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.service.DeliverDue(ctx)
	if err != nil {
		s.log.WithError(err).Warn("Reminder delivery finished with errors")
	}
	if s.observe != nil {
		s.observe(n)
	}
	if n > 0 {
		s.log.WithField("delivered", n).Info("Delivered reminders")
	}
}
