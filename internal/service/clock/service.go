package clock

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/oshokin/alarm-clock/internal/csvimport"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// ErrAlarmNotFound is returned when no alarm has the requested id.
var ErrAlarmNotFound = errors.New("alarm not found")

// Service is the application state controller for the alarm collection.
type Service struct {
	// repo persists the full collection after each mutation.
	repo repo.Repository
	// newID assigns ids to created and imported alarms.
	newID csvimport.IDGenerator
	// alarms is the current collection in insertion order.
	alarms []domain.Alarm
	// mu serialises mutations.
	mu sync.RWMutex
}

// ImportResult summarises a CSV import merge.
type ImportResult struct {
	// Imported holds alarms appended to the collection.
	Imported []domain.Alarm
	// Skipped counts parsed alarms whose name and time already existed.
	Skipped int
}

// Message is the user-facing import summary.
func (r *ImportResult) Message() string {
	return fmt.Sprintf("Successfully imported %d alarms", len(r.Imported))
}

// New loads the collection. Missing or corrupted stored data starts an empty collection.
func New(ctx context.Context, repository repo.Repository, newID csvimport.IDGenerator) (*Service, error) {
	if newID == nil {
		newID = csvimport.NewID
	}

	s := &Service{
		repo:   repository,
		newID:  newID,
		alarms: []domain.Alarm{},
	}

	alarms, err := repository.Load(ctx)

	switch {
	case err == nil:
		if alarms != nil {
			s.alarms = alarms
		}
	case errors.Is(err, repo.ErrNotFound):
		// Nothing saved yet.
	case errors.Is(err, repo.ErrCorrupted):
		logger.Warnf(ctx, "Error loading saved alarms, starting empty: %v", err)
	default:
		return nil, fmt.Errorf("load alarms: %w", err)
	}

	return s, nil
}

// All returns a copy of the collection.
func (s *Service) All() []domain.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CloneAll(s.alarms)
}

// List returns alarms passing the filter, in collection order.
func (s *Service) List(filter domain.Filter) []domain.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter.Apply(s.alarms)
}

// Categories returns distinct categories in first-seen order.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Categories(s.alarms)
}

// Get returns a copy of the alarm with the id.
func (s *Service) Get(id string) (*domain.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}

	return s.alarms[i].Clone(), nil
}

// Add validates the alarm, assigns a fresh id and appends it.
func (s *Service) Add(ctx context.Context, a *domain.Alarm) (*domain.Alarm, error) {
	created := prepare(a)

	if err := created.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created.ID = s.newID()

	next := append(domain.CloneAll(s.alarms), *created)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm added", "id", created.ID, "time", created.Time, "name", created.Name)

	return created.Clone(), nil
}

// Update replaces the alarm with the same id, keeping its position.
func (s *Service) Update(ctx context.Context, a *domain.Alarm) (*domain.Alarm, error) {
	updated := prepare(a)

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(updated.ID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlarmNotFound, updated.ID)
	}

	next := domain.CloneAll(s.alarms)
	next[i] = *updated

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm updated", "id", updated.ID, "time", updated.Time)

	return updated.Clone(), nil
}

// Toggle flips the enabled flag.
func (s *Service) Toggle(ctx context.Context, id string) (*domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}

	next := domain.CloneAll(s.alarms)
	next[i].Enabled = !next[i].Enabled

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm toggled", "id", id, "enabled", next[i].Enabled)

	return next[i].Clone(), nil
}

// Delete removes the alarm.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}

	next := slices.Delete(domain.CloneAll(s.alarms), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Alarm deleted", "id", id)

	return nil
}

// Import parses a CSV upload and appends alarms whose name and time are not yet present.
func (s *Service) Import(ctx context.Context, filename, mediaType string, content []byte) (*ImportResult, error) {
	parsed, err := csvimport.Import(filename, mediaType, content, s.newID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &ImportResult{
		Imported: make([]domain.Alarm, 0, len(parsed)),
	}

	next := domain.CloneAll(s.alarms)

	for i := range parsed {
		if s.exists(parsed[i].Name, parsed[i].Time) {
			result.Skipped++

			continue
		}

		next = append(next, parsed[i])
		result.Imported = append(result.Imported, *parsed[i].Clone())
	}

	if len(result.Imported) == 0 {
		return result, nil
	}

	if err = s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarms imported", "file", filename, "imported", len(result.Imported), "skipped", result.Skipped)

	return result, nil
}

// commit persists next and makes it current. Caller holds mu.
func (s *Service) commit(ctx context.Context, next []domain.Alarm) error {
	if err := s.repo.Save(ctx, next); err != nil {
		logger.Errorf(ctx, "Failed to persist alarms: %v", err)

		return fmt.Errorf("persist alarms: %w", err)
	}

	s.alarms = next

	return nil
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.alarms, func(a domain.Alarm) bool {
		return a.ID == id
	})
}

// exists reports whether the stored collection has an alarm with the name and time.
func (s *Service) exists(name, clock string) bool {
	return slices.ContainsFunc(s.alarms, func(a domain.Alarm) bool {
		return a.Name == name && a.Time == clock
	})
}

// prepare copies a submitted alarm into its stored shape.
func prepare(a *domain.Alarm) *domain.Alarm {
	result := a.Clone()
	result.Time = normalizeTime(result.Time)

	if result.Days == nil {
		result.Days = []string{}
	}

	return result
}

// normalizeTime zero-pads a single-digit hour so stored times compare equal to the tick minute.
func normalizeTime(clock string) string {
	clock = strings.TrimSpace(clock)
	if !domain.ValidTime(clock) {
		return clock
	}

	if hour, _, _ := strings.Cut(clock, ":"); len(hour) == 1 {
		return "0" + clock
	}

	return clock
}
