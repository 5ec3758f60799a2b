package lotteryservice

import (
	"context"
	"maps"
	"sync"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

type inTx struct{}

// memStore serialises whole transactions behind one mutex and restores a
// snapshot when the transaction function fails.
type memStore struct {
	mu         sync.Mutex
	users      map[int64]domain.User
	history    []domain.HistoryEntry
	counter    int64
	lastWinner int64
}

type snapshot struct {
	users      map[int64]domain.User
	history    int
	counter    int64
	lastWinner int64
}

func newMemStore(balances map[int64]int64, counter int64) *memStore {
	s := &memStore{users: make(map[int64]domain.User), counter: counter}
	for id, points := range balances {
		s.users[id] = domain.User{ID: id, Name: "user", Points: points}
		if points != 0 {
			s.history = append(s.history, domain.HistoryEntry{UserID: id, Delta: points, Reason: "seed"})
		}
	}
	return s
}

var _ pg.TXManager = (*memStore)(nil)

func (s *memStore) Begin(ctx context.Context, fn pg.TransactionalFn) error {
	if ctx.Value(inTx{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{users: maps.Clone(s.users), history: len(s.history), counter: s.counter, lastWinner: s.lastWinner}
	if err := fn(context.WithValue(ctx, inTx{}, true)); err != nil {
		s.users, s.history, s.counter, s.lastWinner = snap.users, s.history[:snap.history], snap.counter, snap.lastWinner
		return err
	}
	return nil
}

func (s *memStore) GetForUpdate(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *memStore) ApplyDelta(_ context.Context, userID, amount int64, reason string) (int64, error) {
	u, ok := s.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Points += amount
	s.users[userID] = u
	s.history = append(s.history, domain.HistoryEntry{ID: int64(len(s.history) + 1), UserID: userID, Delta: amount, Reason: reason})
	return u.Points, nil
}

func (s *memStore) Increment(context.Context) (int64, error) {
	s.counter++
	return s.counter, nil
}

func (s *memStore) Current(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter, nil
}

func (s *memStore) Assign(_ context.Context, userID int64) (int64, error) {
	u := s.users[userID]
	if u.WinnerNumber != nil {
		return 0, domain.ErrAlreadyWinner
	}
	s.lastWinner++
	n := s.lastWinner
	u.WinnerNumber, u.JackpotWon = &n, true
	s.users[userID] = u
	return n, nil
}

func (s *memStore) List(_ context.Context, limit int) ([]domain.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	winners := make([]domain.Winner, s.lastWinner)
	for _, u := range s.users {
		if u.WinnerNumber != nil {
			winners[*u.WinnerNumber-1] = domain.Winner{WinnerNumber: *u.WinnerNumber, UserID: u.ID, Name: u.Name}
		}
	}
	if len(winners) > limit {
		winners = winners[:limit]
	}
	return winners, nil
}

func (s *memStore) historySum(userID int64) int64 {
	var sum int64
	for _, h := range s.history {
		if h.UserID == userID {
			sum += h.Delta
		}
	}
	return sum
}

func (s *memStore) entries(userID int64) []domain.HistoryEntry {
	var out []domain.HistoryEntry
	for _, h := range s.history {
		if h.UserID == userID && h.Reason != "seed" {
			out = append(out, h)
		}
	}
	return out
}
