package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"ovation/contexts/event-voting/contestant-service/domain/entities"
	domainerrors "ovation/contexts/event-voting/contestant-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	contestants map[string]entities.Contestant
	now         time.Time
}

func NewStore(seed []entities.Contestant) *Store {
	contestants := make(map[string]entities.Contestant, len(seed))
	for _, contestant := range seed {
		contestants[contestant.ContestantID] = contestant
	}
	return &Store{contestants: contestants}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) CreateContestant(_ context.Context, contestant entities.Contestant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.contestants {
		if strings.EqualFold(existing.Name, contestant.Name) {
			return domainerrors.ErrNameTaken
		}
	}
	s.contestants[contestant.ContestantID] = contestant
	return nil
}

func (s *Store) UpdateContestant(_ context.Context, contestant entities.Contestant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contestants[contestant.ContestantID]; !ok {
		return domainerrors.ErrContestantNotFound
	}
	for id, existing := range s.contestants {
		if id != contestant.ContestantID && strings.EqualFold(existing.Name, contestant.Name) {
			return domainerrors.ErrNameTaken
		}
	}
	s.contestants[contestant.ContestantID] = contestant
	return nil
}

func (s *Store) GetContestant(_ context.Context, contestantID string) (entities.Contestant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contestant, ok := s.contestants[strings.TrimSpace(contestantID)]
	if !ok {
		return entities.Contestant{}, domainerrors.ErrContestantNotFound
	}
	return contestant, nil
}

func (s *Store) ListActive(_ context.Context) ([]entities.Contestant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Contestant, 0, len(s.contestants))
	for _, contestant := range s.contestants {
		if contestant.IsActive {
			items = append(items, contestant)
		}
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
