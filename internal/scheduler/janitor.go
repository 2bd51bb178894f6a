package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/Dawichi/hexastats/internal/platform/logging"
)

const pruneTimeout = time.Minute

// Pruner is satisfied by *cache.FrontDoor.
type Pruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type JanitorConfig struct {
	Interval  time.Duration
	Retention time.Duration
	Logger    *logging.Logger
}

// Janitor periodically drops cache entries older than the retention window.
type Janitor struct {
	s         gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
	retention time.Duration
	logger    *logging.Logger
}

func NewJanitor(pruner Pruner, cfg JanitorConfig) (*Janitor, error) {
	if pruner == nil {
		return nil, fmt.Errorf("janitor needs a pruner")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("janitor interval must be > 0")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Janitor{
		s:         s,
		pruner:    pruner,
		interval:  cfg.Interval,
		retention: cfg.Retention,
		logger:    cfg.Logger.Named("cache-janitor"),
	}, nil
}

func (j *Janitor) Start() error {
	_, err := j.s.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(j.prune),
		gocron.WithName("cache-prune"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("create cache prune job: %w", err)
	}

	j.s.Start()
	j.logger.Info("cache janitor started", "interval", j.interval.String(), "retention", j.retention.String())
	return nil
}

func (j *Janitor) Stop() error {
	return j.s.Shutdown()
}

func (j *Janitor) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	removed, err := j.pruner.Prune(ctx, j.retention)
	if err != nil {
		j.logger.WarnContext(ctx, "cache prune failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "cache pruned", "removed", removed)
	}
}
