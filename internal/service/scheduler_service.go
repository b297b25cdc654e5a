package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SchedulerService runs the digest jobs on a cron clock.
type SchedulerService struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewSchedulerService(loc *time.Location, log *zap.Logger) *SchedulerService {
	cronLog := cron.PrintfLogger(zap.NewStdLog(log.Named("cron")))
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		log: log,
	}
}

// ScheduleDaily registers job at a daily HH:MM time. A full six-field cron
// expression or an @-descriptor is accepted as well, e.g. "0 0 8 * * 1-5"
// for weekdays only.
func (s *SchedulerService) ScheduleDaily(name, when string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(when)
	if err != nil {
		return 0, err
	}
	id, err := s.cron.AddFunc(spec, s.named(name, job))
	if err != nil {
		return 0, fmt.Errorf("schedule %s: %w", name, err)
	}
	return id, nil
}

// ScheduleInterval registers job every interval, rounded down to whole seconds.
func (s *SchedulerService) ScheduleInterval(name string, interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("schedule %s: interval must be positive", name)
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), s.named(name, job))
}

// Next returns the next activation of a registered job, zero before Start.
func (s *SchedulerService) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SchedulerService) named(name string, job func()) func() {
	return func() {
		start := time.Now()
		job()
		s.log.Debug("scheduled job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}

func dailySpec(when string) (string, error) {
	when = strings.TrimSpace(when)
	// Descriptors and full expressions are validated by cron itself.
	if strings.HasPrefix(when, "@") || len(strings.Fields(when)) == 6 {
		return when, nil
	}

	parts := strings.Split(when, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM or a cron expression", when)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", when)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", when)
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
