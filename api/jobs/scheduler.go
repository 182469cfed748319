package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Tasks is the work the scheduler runs. Nil fields are skipped.
type Tasks struct {
	SweepSessions     func(now time.Time) int
	WarmScoreboard    func(ctx context.Context) error
	RefreshLiveScores func(ctx context.Context) error
}

type Scheduler struct {
	cron  *cron.Cron
	tasks Tasks
}

func NewScheduler(tasks Tasks) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))
	return &Scheduler{cron: c, tasks: tasks}
}

// Start registers every job and starts the cron loop.
func (s *Scheduler) Start() error {
	log.Println("[jobs] starting scheduler")

	specs := []struct {
		spec string
		run  func()
	}{
		{"0 */5 * * * *", s.sweepSessions},
		{"30 */2 * * * *", s.warmScoreboard},
		{"0 * * * * *", s.refreshLiveScores},
	}
	for _, j := range specs {
		if _, err := s.cron.AddFunc(j.spec, j.run); err != nil {
			log.Printf("[jobs] cannot schedule %q: %v", j.spec, err)
			return err
		}
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[jobs] scheduler stopped")
}

// RunNow runs every job once, synchronously.
func (s *Scheduler) RunNow() {
	s.sweepSessions()
	s.warmScoreboard()
	s.refreshLiveScores()
}

func (s *Scheduler) sweepSessions() {
	if s.tasks.SweepSessions == nil {
		return
	}
	if n := s.tasks.SweepSessions(time.Now()); n > 0 {
		log.Printf("[jobs] dropped %d idle picking sessions", n)
	}
}

func (s *Scheduler) warmScoreboard() {
	if s.tasks.WarmScoreboard == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.tasks.WarmScoreboard(ctx); err != nil {
		log.Printf("[jobs] scoreboard warm failed: %v", err)
	}
}

func (s *Scheduler) refreshLiveScores() {
	if s.tasks.RefreshLiveScores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := s.tasks.RefreshLiveScores(ctx); err != nil {
		log.Printf("[jobs] live score refresh failed: %v", err)
	}
}
