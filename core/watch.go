package core

import (
	"context"
	"fmt"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// scheduleParser accepts 5-field specs, 6-field specs with seconds and descriptors
// such as "@every 15m".
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// dashboardJob recomputes the dashboard and records it in history.
type dashboardJob struct {
	ctx context.Context
	cfg *contract.Config
	mgr contract.CacheManager
	log zerolog.Logger
}

// Name returns the job name used in logs.
func (j *dashboardJob) Name() string {
	return "dashboard"
}

// Run loads the feed and computes the dashboard once.
func (j *dashboardJob) Run() error {
	m, err := GetDashboardResults(WithSuppressHeader(j.ctx), j.cfg, j.mgr)
	if err != nil {
		return err
	}
	j.log.Info().
		Str("health", string(m.Health.Status)).
		Str("countdown", m.Countdown.Label).
		Int("day_index", m.Planned.DayIndex).
		Int("delta_executed", m.Planned.DeltaExecuted).
		Int("delta_pass", m.Planned.DeltaPass).
		Int("blocker_critical", m.KPIs.BlockerCritical).
		Msg("Dashboard recomputed")
	return nil
}

// ValidateSchedule reports whether spec is a usable watch schedule.
func ValidateSchedule(spec string) error {
	if _, err := scheduleParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// ExecuteWatch recomputes the dashboard on cfg.WatchSchedule until ctx is done.
// The first computation runs immediately.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if err := ValidateSchedule(cfg.WatchSchedule); err != nil {
		return err
	}

	logger := contract.Logger("watch")
	job := &dashboardJob{ctx: ctx, cfg: cfg, mgr: mgr, log: logger}

	c := cron.New(
		cron.WithParser(scheduleParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(cfg.WatchSchedule, func() { runJob(job, logger) }); err != nil {
		return fmt.Errorf("cannot schedule %s job: %w", job.Name(), err)
	}

	logger.Info().Str("schedule", cfg.WatchSchedule).Str("feed", cfg.FeedPath).Msg("Watch started")
	runJob(job, logger)

	c.Start()
	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()

	logger.Info().Msg("Watch stopped")
	return nil
}

func runJob(job *dashboardJob, logger zerolog.Logger) {
	logger.Debug().Str("job", job.Name()).Msg("Running job")
	if err := job.Run(); err != nil {
		logger.Error().Err(err).Str("job", job.Name()).Msg("Job failed")
	}
}
