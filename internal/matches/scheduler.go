package matches

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	service Service
}

func NewScheduler(service Service) *Scheduler {
	return &Scheduler{service: service}
}

func (s *Scheduler) Start(ctx context.Context) {
	// Warm discovery caches before the morning traffic spike
	go s.runDaily(ctx, 7, 0, s.service.WarmDiscoverCache)

	// Cleanup dissolved matches daily at 3 AM
	go s.runDaily(ctx, 3, 0, s.service.CleanupInactiveMatches)
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, task func(context.Context) error) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			if err := task(ctx); err != nil {
				log.Printf("Scheduled task failed: %v", err)
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
