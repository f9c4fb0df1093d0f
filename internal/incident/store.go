// Package incident provides the in-memory incident store backing the demo
// incident management tools, plus the field catalogs those tools describe.
package incident

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stellarlinkco/deskmcp/internal/bus"
)

// IDPattern is the canonical incident ID shape: INC- followed by eight
// uppercase hex digits.
const IDPattern = `^INC-[A-F0-9]{8}$`

var idRegexp = regexp.MustCompile(IDPattern)

const (
	DefaultPriority = "Medium"
	DefaultStatus   = "Open"
)

var (
	ValidPriorities = []string{"Low", "Medium", "High", "Critical"}
	ValidStatuses   = []string{"Open", "In Progress", "Resolved", "Closed"}
)

// ValidID reports whether id matches the canonical incident ID format.
func ValidID(id string) bool {
	return idRegexp.MatchString(id)
}

// ValidPriority reports whether p is an accepted priority value.
func ValidPriority(p string) bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is an accepted status value.
func ValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Store is a thread-safe in-memory incident store. Incidents are free-form
// field maps keyed by incident ID; callers always receive copies.
type Store struct {
	mu        sync.RWMutex
	incidents map[string]map[string]any
	events    *bus.Bus
}

// NewStore creates an empty store. A nil bus disables event publication.
func NewStore(events *bus.Bus) *Store {
	return &Store{
		incidents: make(map[string]map[string]any),
		events:    events,
	}
}

// GenerateID produces a unique incident ID in the INC-XXXXXXXX format.
func GenerateID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "INC-" + strings.ToUpper(raw[:8])
}

// Create stores a new incident from the standard fields. Empty priority
// defaults to Medium; status always starts Open.
func (s *Store) Create(title, requester, description, priority string) map[string]any {
	if priority == "" {
		priority = DefaultPriority
	}
	incident := map[string]any{
		"incident_id": GenerateID(),
		"title":       title,
		"requester":   requester,
		"description": description,
		"priority":    priority,
		"status":      DefaultStatus,
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}
	return s.insert(incident)
}

// CreateWithFields stores a new incident from free-form field data. The store
// supplies the ID, creation time, and default status.
func (s *Store) CreateWithFields(fields map[string]any) map[string]any {
	incident := map[string]any{
		"incident_id": GenerateID(),
		"status":      DefaultStatus,
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range fields {
		incident[k] = v
	}
	return s.insert(incident)
}

func (s *Store) insert(incident map[string]any) map[string]any {
	id := incident["incident_id"].(string)

	s.mu.Lock()
	s.incidents[id] = incident
	total := len(s.incidents)
	s.mu.Unlock()

	log.Printf("[incident] created %s (total=%d)", id, total)
	s.publish(bus.IncidentCreated, id, incident)
	return copyIncident(incident)
}

// Get returns a copy of the incident, or false when it does not exist.
func (s *Store) Get(id string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	incident, ok := s.incidents[id]
	if !ok {
		return nil, false
	}
	return copyIncident(incident), true
}

// Update applies field updates to an existing incident and stamps updated_at.
// Unknown fields are accepted; last write wins. Returns the updated copy, or
// false when the incident does not exist.
func (s *Store) Update(id string, updates map[string]any) (map[string]any, bool) {
	s.mu.Lock()
	incident, ok := s.incidents[id]
	if !ok {
		s.mu.Unlock()
		log.Printf("[incident] update failed: %s not found", id)
		return nil, false
	}
	for field, value := range updates {
		incident[field] = value
	}
	incident["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	updated := copyIncident(incident)
	s.mu.Unlock()

	log.Printf("[incident] updated %s (%d fields)", id, len(updates))
	s.publish(bus.IncidentUpdated, id, updated)
	return updated, true
}

// Delete removes an incident and returns a copy of what was deleted, or false
// when the incident does not exist.
func (s *Store) Delete(id string) (map[string]any, bool) {
	s.mu.Lock()
	incident, ok := s.incidents[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	deleted := copyIncident(incident)
	delete(s.incidents, id)
	remaining := len(s.incidents)
	s.mu.Unlock()

	log.Printf("[incident] deleted %s (remaining=%d)", id, remaining)
	s.publish(bus.IncidentDeleted, id, deleted)
	return deleted, true
}

// Exists reports whether an incident is stored under id.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.incidents[id]
	return ok
}

// All returns a deep copy of every stored incident.
func (s *Store) All() map[string]map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]map[string]any, len(s.incidents))
	for id, incident := range s.incidents {
		out[id] = copyIncident(incident)
	}
	return out
}

// IDs returns all stored incident IDs, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.incidents))
	for id := range s.incidents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of stored incidents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.incidents)
}

// PruneClosed removes incidents in a terminal status created before cutoff.
// It returns the IDs of removed incidents. Used by the retention sweep.
func (s *Store) PruneClosed(cutoff time.Time) []string {
	s.mu.Lock()
	var removed []string
	var copies []map[string]any
	for id, incident := range s.incidents {
		status, _ := incident["status"].(string)
		if status != "Closed" && status != "Resolved" {
			continue
		}
		createdAt, _ := incident["created_at"].(string)
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil || !ts.Before(cutoff) {
			continue
		}
		removed = append(removed, id)
		copies = append(copies, copyIncident(incident))
		delete(s.incidents, id)
	}
	s.mu.Unlock()

	if len(removed) > 0 {
		log.Printf("[incident] retention sweep removed %d incidents", len(removed))
		for i, id := range removed {
			s.publish(bus.IncidentDeleted, id, copies[i])
		}
	}
	return removed
}

func (s *Store) publish(t bus.EventType, id string, incident map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Publish(bus.Event{Type: t, IncidentID: id, Incident: incident})
}

func copyIncident(incident map[string]any) map[string]any {
	out := make(map[string]any, len(incident))
	for k, v := range incident {
		out[k] = v
	}
	return out
}

// NotFoundMessage is the shared wording for missing incidents.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Incident with ID '%s' was not found", id)
}
