// Package maintenance runs the scheduled background jobs: the closed-incident
// retention sweep and optional periodic tool rediscovery.
package maintenance

import (
	"log"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"

	"github.com/stellarlinkco/deskmcp/internal/config"
	"github.com/stellarlinkco/deskmcp/internal/discovery"
	"github.com/stellarlinkco/deskmcp/internal/incident"
)

// Service schedules maintenance jobs with robfig/cron. All schedule
// expressions include a seconds field.
type Service struct {
	cfg        config.MaintenanceConfig
	store      *incident.Store
	discoverer *discovery.Discoverer

	mu       sync.Mutex
	cron     *rcron.Cron
	entryMap map[string]rcron.EntryID // job name -> cron entry ID
}

func NewService(cfg config.MaintenanceConfig, store *incident.Store, d *discovery.Discoverer) *Service {
	return &Service{
		cfg:        cfg,
		store:      store,
		discoverer: d,
		entryMap:   make(map[string]rcron.EntryID),
	}
}

// Start registers the configured jobs and starts the scheduler. With
// maintenance disabled it is a no-op.
func (s *Service) Start() error {
	if !s.cfg.Enabled {
		log.Printf("[maintenance] disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron = rcron.New(rcron.WithSeconds())

	if err := s.registerJob("retention-sweep", s.cfg.SweepSchedule, s.RunSweep); err != nil {
		return err
	}
	if s.cfg.RediscoverSchedule != "" && s.discoverer != nil {
		if err := s.registerJob("rediscover", s.cfg.RediscoverSchedule, s.runRediscover); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.Printf("[maintenance] started with %d jobs", len(s.entryMap))
	return nil
}

func (s *Service) registerJob(name, spec string, fn func()) error {
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		log.Printf("[maintenance] failed to register job %s (%s): %v", name, spec, err)
		return err
	}
	s.entryMap[name] = id
	return nil
}

// Stop halts the scheduler, waiting briefly for running jobs.
func (s *Service) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		log.Printf("[maintenance] stop timeout waiting for running jobs")
	}
	log.Printf("[maintenance] stopped")
}

// RunSweep deletes Closed/Resolved incidents older than the retention window.
// Exposed so the CLI can trigger a sweep on demand.
func (s *Service) RunSweep() {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	removed := s.store.PruneClosed(cutoff)
	if len(removed) == 0 {
		log.Printf("[maintenance] retention sweep: nothing to remove")
		return
	}
	log.Printf("[maintenance] retention sweep removed %d incidents: %v", len(removed), removed)
}

func (s *Service) runRediscover() {
	count := s.discoverer.Rediscover()
	log.Printf("[maintenance] rediscovery registered %d tools", count)
}

// JobNames lists the registered job names, for status output.
func (s *Service) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entryMap))
	for name := range s.entryMap {
		names = append(names, name)
	}
	return names
}
