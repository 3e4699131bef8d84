package service

import (
	"context"
	"errors"
	"time"

	"stationwatch/internal/logger"
)

// PollerService drives the availability cycle on a fixed tick. One
// cycle runs immediately at startup so a restart does not wait a full
// interval to notice an outage.
type PollerService struct {
	availability Availability
	log          *logger.Logger
}

func NewPollerService(availability Availability, log *logger.Logger) *PollerService {
	return &PollerService{availability: availability, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (p *PollerService) Run(ctx context.Context, tick time.Duration) {
	p.runOnce(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.runOnce(ctx)
		}
	}
}

func (p *PollerService) runOnce(ctx context.Context) {
	if _, err := p.availability.RunCycle(ctx); err != nil {
		if errors.Is(err, ErrAllSourcesFailed) {
			p.log.Errorw("availability cycle failed", "err", err)
			return
		}
		p.log.Warnw("availability cycle completed with errors", "err", err)
	}
}
