package scheduler

import (
	"context"
	"log"
	"time"

	database "hatatakip_backend/internals/databases"
	statsDTO "hatatakip_backend/internals/features/stats/dto"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Snapshotter is satisfied by the stats service.
type Snapshotter interface {
	Snapshot(ctx context.Context) (statsDTO.StatsDTO, error)
}

// KeepAlive pings the database on a schedule so the hosted instance is not
// paused for inactivity, and logs a stats line each run.
type KeepAlive struct {
	DB      *gorm.DB
	Stats   Snapshotter
	Timeout time.Duration
}

// Run performs a single tick.
func (k *KeepAlive) Run(ctx context.Context) error {
	timeout := k.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := database.Ping(ctx, k.DB); err != nil {
		return errors.Wrap(err, "keep-alive ping")
	}
	if k.Stats == nil {
		return nil
	}
	s, err := k.Stats.Snapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "keep-alive stats")
	}
	log.Printf("[KEEPALIVE] ok öğrenci=%d hata=%d çözülmüş=%d çözülmemiş=%d",
		s.TotalStudents, s.TotalErrors, s.ResolvedErrors, s.UnresolvedErrors)
	return nil
}

// Start registers k on schedule and starts the cron runner. An empty
// schedule disables it and returns nil.
func Start(schedule string, k *KeepAlive) (*cron.Cron, error) {
	if schedule == "" {
		log.Println("[KEEPALIVE] schedule boş, devre dışı")
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() {
		if err := k.Run(context.Background()); err != nil {
			log.Printf("[KEEPALIVE] error: %v", err)
		}
	}); err != nil {
		return nil, errors.Wrapf(err, "keep-alive schedule %q", schedule)
	}
	log.Printf("[KEEPALIVE] started schedule=%q", schedule)
	c.Start()
	return c, nil
}
