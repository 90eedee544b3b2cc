// Package scheduler runs recurring background jobs on cron schedules.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// JobInfo describes a registered job for status reporting
type JobInfo struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	NextRun  string `json:"next_run,omitempty"`
}

type registeredJob struct {
	job      Job
	schedule string
	entryID  cron.EntryID
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	jobs []registeredJob
	log  zerolog.Logger
}

// New creates a new scheduler
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.jobs)).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers a new job with a cron schedule
// Schedule examples:
//   - "0 */5 * * * *"      - Every 5 minutes
//   - "@hourly"            - Every hour
//   - "0 0 18 * * *"       - 6 PM daily
//   - "@every 30s"         - Every 30 seconds
func (s *Scheduler) AddJob(schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		s.log.Debug().Str("job", job.Name()).Msg("Running job")

		if err := job.Run(); err != nil {
			s.log.Error().
				Err(err).
				Str("job", job.Name()).
				Msg("Job failed")
		} else {
			s.log.Debug().Str("job", job.Name()).Msg("Job completed")
		}
	})

	if err != nil {
		return err
	}

	s.jobs = append(s.jobs, registeredJob{job: job, schedule: schedule, entryID: entryID})

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")
	return job.Run()
}

// Jobs returns status information for all registered jobs
func (s *Scheduler) Jobs() []JobInfo {
	infos := make([]JobInfo, 0, len(s.jobs))
	for _, reg := range s.jobs {
		info := JobInfo{
			Name:     reg.job.Name(),
			Schedule: reg.schedule,
		}
		if entry := s.cron.Entry(reg.entryID); !entry.Next.IsZero() {
			info.NextRun = entry.Next.Format(time.RFC3339)
		}
		infos = append(infos, info)
	}
	return infos
}
