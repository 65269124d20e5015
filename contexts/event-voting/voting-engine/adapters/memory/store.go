package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ovation/contexts/event-voting/voting-engine/domain/entities"
	domainerrors "ovation/contexts/event-voting/voting-engine/domain/errors"
	"ovation/contexts/event-voting/voting-engine/ports"

	"github.com/google/uuid"
)

type tally struct {
	projection entities.ContestantProjection
	voters     []entities.VoterEntry
}

// Store is the in-memory adapter behind every voting-engine port. One mutex
// guards all state so the flip and the tally stay consistent under concurrent
// submitters.
type Store struct {
	mu sync.RWMutex

	records     map[string]entities.VerificationRecord
	contestants map[string]*tally
	weights     map[string]ports.WeightGrant

	sent     []SentCode
	now      time.Time
	codeSeq  int
	failSend bool
}

// SentCode captures what the delivery port was asked to send, for assertions.
type SentCode struct {
	Email          string
	Code           string
	ContestantName string
}

func NewStore(seed []entities.VerificationRecord) *Store {
	records := make(map[string]entities.VerificationRecord, len(seed))
	for _, record := range seed {
		records[record.RecordID] = record
	}
	return &Store{
		records:     records,
		contestants: make(map[string]*tally),
		weights:     make(map[string]ports.WeightGrant),
	}
}

func (s *Store) SetContestant(projection entities.ContestantProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contestants[strings.TrimSpace(projection.ContestantID)] = &tally{
		projection: entities.ContestantProjection{
			ContestantID: strings.TrimSpace(projection.ContestantID),
			Name:         strings.TrimSpace(projection.Name),
			Votes:        projection.Votes,
			IsActive:     projection.IsActive,
		},
	}
}

func (s *Store) SetAdminWeight(email string, weight int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights[strings.ToLower(strings.TrimSpace(email))] = ports.WeightGrant{IsAdmin: true, Weight: weight}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailDelivery makes subsequent SendVerificationCode calls return an error.
func (s *Store) FailDelivery(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSend = fail
}

func (s *Store) SentCodes() []SentCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SentCode(nil), s.sent...)
}

func (s *Store) Voters(contestantID string) []entities.VoterEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.contestants[strings.TrimSpace(contestantID)]; ok {
		return append([]entities.VoterEntry(nil), item.voters...)
	}
	return nil
}

func (s *Store) CreateRecord(_ context.Context, record entities.VerificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.records {
		if existing.ContestantID != record.ContestantID || existing.VoterEmail != record.VoterEmail {
			continue
		}
		if existing.IsVerified {
			return domainerrors.ErrConflict
		}
		// Supersede the earlier unverified code for the pair.
		delete(s.records, id)
	}
	s.records[record.RecordID] = record
	return nil
}

func (s *Store) HasVerifiedRecord(_ context.Context, voterEmail string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email := strings.ToLower(strings.TrimSpace(voterEmail))
	for _, record := range s.records {
		if record.IsVerified && record.VoterEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Consume(
	_ context.Context,
	voterEmail string,
	contestantID string,
	code string,
	now time.Time,
) (entities.VerificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(voterEmail))
	for id, record := range s.records {
		if record.VoterEmail != email ||
			record.ContestantID != strings.TrimSpace(contestantID) ||
			record.Code != strings.TrimSpace(code) {
			continue
		}
		if record.IsVerified || record.Expired(now) {
			return entities.VerificationRecord{}, domainerrors.ErrInvalidOrUsedCode
		}
		verifiedAt := now
		record.IsVerified = true
		record.VerifiedAt = &verifiedAt
		s.records[id] = record
		return record, nil
	}
	return entities.VerificationRecord{}, domainerrors.ErrInvalidOrUsedCode
}

func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, record := range s.records {
		if record.Expired(now) {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]entities.VerificationRecord)
	return nil
}

func (s *Store) StatisticsByContestant(_ context.Context) ([]entities.ContestantStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byContestant := make(map[string]*entities.ContestantStatistics)
	for _, record := range s.records {
		if !record.IsVerified {
			continue
		}
		stats, ok := byContestant[record.ContestantID]
		if !ok {
			stats = &entities.ContestantStatistics{ContestantID: record.ContestantID}
			byContestant[record.ContestantID] = stats
		}
		stats.TotalVotes += record.VoteWeight
		stats.VoterCount++
		if record.IsAdmin {
			stats.AdminVotes += record.VoteWeight
		}
	}
	items := make([]entities.ContestantStatistics, 0, len(byContestant))
	for _, stats := range byContestant {
		items = append(items, *stats)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ContestantID < items[j].ContestantID
	})
	return items, nil
}

func (s *Store) CountVerified(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, record := range s.records {
		if record.IsVerified {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountDistinctVerifiedVoters(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emails := make(map[string]struct{})
	for _, record := range s.records {
		if record.IsVerified {
			emails[record.VoterEmail] = struct{}{}
		}
	}
	return len(emails), nil
}

func (s *Store) ListRecentVerified(_ context.Context, limit int) ([]entities.RecentVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.RecentVote, 0)
	for _, record := range s.records {
		if !record.IsVerified || record.VerifiedAt == nil {
			continue
		}
		name := ""
		if item, ok := s.contestants[record.ContestantID]; ok {
			name = item.projection.Name
		}
		items = append(items, entities.RecentVote{
			VoterEmail:     record.VoterEmail,
			ContestantID:   record.ContestantID,
			ContestantName: name,
			VoteWeight:     record.VoteWeight,
			IsAdmin:        record.IsAdmin,
			VerifiedAt:     *record.VerifiedAt,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].VerifiedAt.After(items[j].VerifiedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) ApplyVote(
	_ context.Context,
	contestantID string,
	weight int,
	voter entities.VoterEntry,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.contestants[strings.TrimSpace(contestantID)]
	if !ok || !item.projection.IsActive {
		return 0, domainerrors.ErrContestantNotFound
	}
	item.projection.Votes += weight
	item.voters = append(item.voters, voter)
	return item.projection.Votes, nil
}

func (s *Store) ResetTallies(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.contestants {
		if !item.projection.IsActive {
			continue
		}
		item.projection.Votes = 0
		item.voters = nil
	}
	return nil
}

func (s *Store) GetContestant(_ context.Context, contestantID string) (entities.ContestantProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.contestants[strings.TrimSpace(contestantID)]
	if !ok {
		return entities.ContestantProjection{}, domainerrors.ErrContestantNotFound
	}
	return item.projection, nil
}

func (s *Store) ListActiveByVotes(_ context.Context) ([]entities.ContestantProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.ContestantProjection, 0, len(s.contestants))
	for _, item := range s.contestants {
		if item.projection.IsActive {
			items = append(items, item.projection)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Votes != items[j].Votes {
			return items[i].Votes > items[j].Votes
		}
		return items[i].ContestantID < items[j].ContestantID
	})
	return items, nil
}

func (s *Store) Resolve(_ context.Context, email string) (ports.WeightGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if grant, ok := s.weights[strings.ToLower(strings.TrimSpace(email))]; ok {
		return grant, nil
	}
	return ports.WeightGrant{IsAdmin: false, Weight: 1}, nil
}

func (s *Store) SendVerificationCode(_ context.Context, email string, code string, contestantName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSend {
		return domainerrors.ErrDeliveryFailure
	}
	s.sent = append(s.sent, SentCode{Email: email, Code: code, ContestantName: contestantName})
	return nil
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

// NewCode hands out deterministic six-digit codes so tests can submit what
// was issued.
func (s *Store) NewCode(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codeSeq++
	return fmt.Sprintf("%06d", 100000+s.codeSeq), nil
}
