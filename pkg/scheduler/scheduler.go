// Package scheduler drives a Sampler on a fixed cadence.
package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sampler takes one sample. monitor.Monitor implements it.
type Sampler interface {
	Sample() error
}

// Scheduler calls Sample once immediately and then on every tick. All
// calls happen on the goroutine running Run, so they never overlap.
type Scheduler struct {
	interval time.Duration
	sampler  Sampler
	log      *logrus.Logger

	// OnSample is called after each successful sample.
	OnSample func()
	// OnError is called after each failed sample.
	OnError func(error)
	// Limit stops Run after this many attempts when positive.
	Limit int
}

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 2 * time.Second

// New creates a Scheduler. A nil logger discards output below warn level.
func New(interval time.Duration, sampler Sampler, log *logrus.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Scheduler{
		interval: interval,
		sampler:  sampler,
		log:      log,
	}
}

// Run samples until ctx is done or Limit attempts have been made.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	attempts := 0
	for {
		s.tick()
		attempts++
		if s.Limit > 0 && attempts >= s.Limit {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Scheduler) tick() {
	start := time.Now()
	err := s.sampler.Sample()
	entry := s.log.WithField("duration", time.Since(start))

	if err != nil {
		entry.WithError(err).Warn("Sample failed")
		if s.OnError != nil {
			s.OnError(err)
		}
		return
	}

	entry.Debug("Sample complete")
	if s.OnSample != nil {
		s.OnSample()
	}
}
