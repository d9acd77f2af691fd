package internal

import (
	"kgsite/internal/analytics"
	"kgsite/internal/providers"
	"kgsite/internal/storage/interfaces"
	"kgsite/internal/structures"
)

// Toolkit is the component set the CLI works with outside the server.
type Toolkit struct {
	Conf      *structures.Config
	Logger    providers.Logger
	Seeds     *analytics.SeedStore
	Consent   *providers.ConsentFactory
	Scheduler interfaces.SchedulerInterface
}

func NewToolkit(conf *structures.Config, logger providers.Logger, seeds *analytics.SeedStore, consent *providers.ConsentFactory, scheduler interfaces.SchedulerInterface) (*Toolkit, error) {
	if err := scheduler.Restore(); err != nil {
		return nil, err
	}
	return &Toolkit{
		Conf:      conf,
		Logger:    logger,
		Seeds:     seeds,
		Consent:   consent,
		Scheduler: scheduler,
	}, nil
}

// Close waits for consent notifications and flushes snapshot storage.
func (t *Toolkit) Close() error {
	t.Consent.Wait()
	return t.Scheduler.Persist()
}
