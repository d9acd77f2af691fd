package persistence

import (
	"github.com/roylee0704/gron"
	"kgsite/internal/providers"
	"kgsite/internal/storage"
	"kgsite/internal/storage/interfaces"
	"kgsite/internal/structures"
	"sync"
	"time"
)

// Scheduler flushes a snapshot-backed store on a fixed interval and on
// shutdown. Stores that write through (memory, sqlite) make it a no-op.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	persister interfaces.Persister
	cron      *gron.Cron
	opsMu     sync.Mutex
}

func (s *Scheduler) Init() {
	if s.persister == nil {
		return
	}
	s.cron = gron.New()
	interval := s.config.Storage.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if !s.persister.Dirty() {
			return
		}
		if err := s.flush(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted data to file %s", s.config.Storage.Path)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Restore()
}

func (s *Scheduler) Persist() error {
	if s.persister == nil {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting storage to file...")
	if err := s.flush(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) flush() error {
	start := time.Now()
	err := s.persister.Persist()
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return err
}

// NewScheduler builds a scheduler for store. Only stores implementing
// interfaces.Persister get a flush job.
func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store storage.Store) interfaces.SchedulerInterface {
	s := &Scheduler{
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
	if p, ok := store.(interfaces.Persister); ok {
		s.persister = p
	}
	return s
}
