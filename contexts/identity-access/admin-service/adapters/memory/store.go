package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"ovation/contexts/identity-access/admin-service/domain/entities"
	domainerrors "ovation/contexts/identity-access/admin-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	admins map[string]entities.Admin
	now    time.Time
}

func NewStore(seed []entities.Admin) *Store {
	admins := make(map[string]entities.Admin, len(seed))
	for _, admin := range seed {
		admins[admin.AdminID] = admin
	}
	return &Store{admins: admins}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) CreateAdmin(_ context.Context, admin entities.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.admins {
		if strings.EqualFold(existing.Email, admin.Email) {
			return domainerrors.ErrEmailTaken
		}
	}
	s.admins[admin.AdminID] = admin
	return nil
}

func (s *Store) GetActiveByEmail(_ context.Context, email string) (entities.Admin, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, admin := range s.admins {
		if admin.IsActive && strings.ToLower(admin.Email) == needle {
			return admin, true, nil
		}
	}
	return entities.Admin{}, false, nil
}

func (s *Store) GetByID(_ context.Context, adminID string) (entities.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[strings.TrimSpace(adminID)]
	if !ok {
		return entities.Admin{}, domainerrors.ErrAdminNotFound
	}
	return admin, nil
}

func (s *Store) RecordLogin(_ context.Context, adminID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[strings.TrimSpace(adminID)]
	if !ok {
		return domainerrors.ErrAdminNotFound
	}
	login := at
	admin.LastLogin = &login
	admin.UpdatedAt = at
	s.admins[admin.AdminID] = admin
	return nil
}

func (s *Store) UpdateVoteWeight(_ context.Context, adminID string, voteWeight int, at time.Time) (entities.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[strings.TrimSpace(adminID)]
	if !ok {
		return entities.Admin{}, domainerrors.ErrAdminNotFound
	}
	admin.VoteWeight = voteWeight
	admin.UpdatedAt = at
	s.admins[admin.AdminID] = admin
	return admin, nil
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
