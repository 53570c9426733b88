// Package scheduler runs the nightly accounting export.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/beaverpumice/scalehouse-api/internal/application/service"
	"github.com/beaverpumice/scalehouse-api/internal/config"
)

// runTimeout bounds one export run; a hung store call must not pin the
// scheduler past the next day's slot.
const runTimeout = 15 * time.Minute

// Scheduler owns the background job scheduler.
type Scheduler struct {
	inner  *gocron.Scheduler
	export *service.ExportService
}

// New builds the scheduler in the configured timezone.
func New(cfg config.ExportConfig, export *service.ExportService) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load export timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		inner:  gocron.NewScheduler(location),
		export: export,
	}

	if cfg.Enabled {
		if _, err := s.inner.Every(1).Day().At(cfg.Schedule).Do(s.runExport); err != nil {
			return nil, fmt.Errorf("failed to schedule export job: %w", err)
		}
		log.Printf("scheduled export: daily at %s %s", cfg.Schedule, cfg.Timezone)
	} else {
		log.Printf("scheduled export: disabled")
	}

	return s, nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.inner.StartAsync()
}

// Stop waits for a running job to finish and shuts the scheduler down.
func (s *Scheduler) Stop() {
	s.inner.Stop()
}

func (s *Scheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// Errors are already logged and mailed inside the run.
	_ = s.export.RunScheduledExport(ctx)
}
