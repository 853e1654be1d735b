package scheduler

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Job is a named unit of periodic work.
type Job struct {
	Name string
	Spec string
	Run  func()
}

// Scheduler runs jobs on cron specs. Descriptors such as "@every 1s" are accepted.
type Scheduler struct {
	c    *cron.Cron
	jobs []Job
}

// New registers jobs on a fresh cron. A job still running when its next tick is due
// is skipped rather than run twice.
func New(jobs ...Job) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	for _, job := range jobs {
		if _, err := c.AddFunc(job.Spec, job.Run); err != nil {
			return nil, fmt.Errorf("invalid schedule %q for job %s: %w", job.Spec, job.Name, err)
		}
	}
	return &Scheduler{c: c, jobs: jobs}, nil
}

func (s *Scheduler) Start() {
	for _, job := range s.jobs {
		log.Info("Starting scheduled job", "job", job.Name, "spec", job.Spec)
	}
	s.c.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
	log.Info("Scheduler stopped")
}
