package maintenance

import (
	"testing"
	"time"

	"github.com/stellarlinkco/deskmcp/internal/config"
	"github.com/stellarlinkco/deskmcp/internal/incident"
)

func TestStartDisabledIsNoop(t *testing.T) {
	s := NewService(config.MaintenanceConfig{Enabled: false}, incident.NewStore(nil), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(s.JobNames()) != 0 {
		t.Fatalf("jobs = %v, want none", s.JobNames())
	}
	s.Stop()
}

func TestStartRegistersJobs(t *testing.T) {
	s := NewService(config.MaintenanceConfig{
		Enabled:       true,
		RetentionDays: 30,
		SweepSchedule: "0 0 3 * * *",
	}, incident.NewStore(nil), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	names := s.JobNames()
	if len(names) != 1 || names[0] != "retention-sweep" {
		t.Fatalf("jobs = %v", names)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewService(config.MaintenanceConfig{
		Enabled:       true,
		RetentionDays: 30,
		SweepSchedule: "not a schedule",
	}, incident.NewStore(nil), nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("invalid cron expression must fail Start")
	}
}

func TestRunSweepRemovesExpiredClosedIncidents(t *testing.T) {
	store := incident.NewStore(nil)

	stale := store.Create("Old outage", "alice@example.com", "", "")
	staleID := stale["incident_id"].(string)
	store.Update(staleID, map[string]any{
		"status":     "Closed",
		"created_at": time.Now().AddDate(0, 0, -45).UTC().Format(time.RFC3339),
	})

	fresh := store.Create("Recent outage", "bob@example.com", "", "")
	freshID := fresh["incident_id"].(string)
	store.Update(freshID, map[string]any{"status": "Closed"})

	open := store.Create("Live outage", "carol@example.com", "", "")
	openID := open["incident_id"].(string)

	s := NewService(config.MaintenanceConfig{
		Enabled:       true,
		RetentionDays: 30,
		SweepSchedule: "0 0 3 * * *",
	}, store, nil)
	s.RunSweep()

	if store.Exists(staleID) {
		t.Fatal("stale closed incident must be swept")
	}
	if !store.Exists(freshID) {
		t.Fatal("recently closed incident must survive")
	}
	if !store.Exists(openID) {
		t.Fatal("open incident must survive")
	}
}
