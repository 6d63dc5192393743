package services

import (
	"context"
	"fmt"
	"time"

	"carrental/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Autosave periodically persists the current company on a cron schedule.
type Autosave struct {
	cron    *cron.Cron
	service RentalService
	timeout time.Duration
	logger  *logger.Logger
}

func NewAutosave(spec string, service RentalService, timeout time.Duration, logger *logger.Logger) (*Autosave, error) {
	a := &Autosave{
		cron:    cron.New(),
		service: service,
		timeout: timeout,
		logger:  logger,
	}
	if _, err := a.cron.AddFunc(spec, a.Run); err != nil {
		return nil, fmt.Errorf("failed to schedule autosave %q: %w", spec, err)
	}
	return a, nil
}

func (a *Autosave) Start() {
	a.logger.WithField("entries", len(a.cron.Entries())).Info("Autosave scheduled")
	a.cron.Start()
}

// Stop waits for a running save to finish or ctx to expire.
func (a *Autosave) Stop(ctx context.Context) {
	select {
	case <-a.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (a *Autosave) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.service.Persist(ctx); err != nil {
		a.logger.WithError(err).Error("Autosave failed")
		return
	}
	a.logger.Debug("Autosave completed")
}
