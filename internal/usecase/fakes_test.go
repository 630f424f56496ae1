package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

// memoryPlayerRepo is an in-memory IPlayerRepository enforcing the same unique keys as the Mongo indexes.
type memoryPlayerRepo struct {
	mu        sync.Mutex
	players   map[string]*entity.Player
	createErr error
	usedIDs   map[string]bool
	logins    int
}

var _ contract.IPlayerRepository = (*memoryPlayerRepo)(nil)

func newMemoryPlayerRepo() *memoryPlayerRepo {
	return &memoryPlayerRepo{players: map[string]*entity.Player{}, usedIDs: map[string]bool{}}
}

func (r *memoryPlayerRepo) CreatePlayer(ctx context.Context, p *entity.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.players {
		switch {
		case existing.PlayerID == p.PlayerID:
			return &entity.DuplicateKeyError{Field: "playerId"}
		case existing.UserID == p.UserID:
			return &entity.DuplicateKeyError{Field: "userId"}
		case existing.SequenceNumber == p.SequenceNumber:
			return &entity.DuplicateKeyError{Field: "sequenceNumber"}
		case existing.Email == p.Email:
			return &entity.DuplicateKeyError{Field: "email"}
		case existing.Username == p.Username:
			return &entity.DuplicateKeyError{Field: "username"}
		case existing.Phone == p.Phone:
			return &entity.DuplicateKeyError{Field: "phone"}
		}
	}
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r *memoryPlayerRepo) find(match func(*entity.Player) bool) (*entity.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, entity.ErrPlayerNotFound
}

func (r *memoryPlayerRepo) FindByAnyID(ctx context.Context, id string) (*entity.Player, error) {
	matchers := []func(*entity.Player) bool{
		func(p *entity.Player) bool { return p.PlayerID == strings.ToUpper(id) },
		func(p *entity.Player) bool { return p.UserID == id },
		func(p *entity.Player) bool { return p.ID == id },
		func(p *entity.Player) bool { return p.Username == id },
	}
	for _, match := range matchers {
		if p, err := r.find(match); err == nil {
			return p, nil
		}
	}
	return nil, entity.ErrPlayerNotFound
}

func (r *memoryPlayerRepo) GetPlayerByEmail(ctx context.Context, email string) (*entity.Player, error) {
	return r.find(func(p *entity.Player) bool { return p.Email == email })
}

func (r *memoryPlayerRepo) GetPlayerByUsername(ctx context.Context, username string) (*entity.Player, error) {
	return r.find(func(p *entity.Player) bool { return p.Username == username })
}

func (r *memoryPlayerRepo) GetPlayerByPhone(ctx context.Context, phone string) (*entity.Player, error) {
	return r.find(func(p *entity.Player) bool { return p.Phone == phone })
}

func (r *memoryPlayerRepo) UserIDExists(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usedIDs[userID] {
		return true, nil
	}
	for _, p := range r.players {
		if p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPlayerRepo) ListPlayers(ctx context.Context, f entity.PlayerFilter) ([]*entity.Player, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Player
	for _, p := range r.players {
		if f.Role != "" && string(p.Role) != f.Role {
			continue
		}
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SequenceNumber > all[j].SequenceNumber })
	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []*entity.Player{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memoryPlayerRepo) AggregateStats(ctx context.Context, now time.Time) (*entity.PlayerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &entity.PlayerStats{TotalPlayers: int64(len(r.players))}, nil
}

func (r *memoryPlayerRepo) RecordLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return entity.ErrPlayerNotFound
	}
	p.LastLogin = &at
	p.LoginCount++
	r.logins++
	return nil
}

func (r *memoryPlayerRepo) Ping(ctx context.Context) error { return nil }

func (r *memoryPlayerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// memorySequenceRepo is an atomic in-memory counter.
type memorySequenceRepo struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func newMemorySequenceRepo() *memorySequenceRepo {
	return &memorySequenceRepo{values: map[string]int64{}}
}

func (s *memorySequenceRepo) NextSequence(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.values[key]++
	return s.values[key], nil
}

func (s *memorySequenceRepo) CurrentSequence(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return s.values[key], nil
}

// scriptedRandom returns the queued tokens in order, then repeats the last one.
type scriptedRandom struct {
	mu     sync.Mutex
	tokens []string
	calls  int
}

func (r *scriptedRandom) GenerateRandomToken(n int) (string, error) {
	return strings.Repeat("a", n), nil
}

func (r *scriptedRandom) GenerateRandomString(length int, alphabet string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tokens) == 0 {
		return "", errors.New("no tokens queued")
	}
	i := r.calls
	if i >= len(r.tokens) {
		i = len(r.tokens) - 1
	}
	r.calls++
	return r.tokens[i], nil
}

// memoryStatsCache counts hits so tests can observe cache-aside behavior.
type memoryStatsCache struct {
	stats       *entity.PlayerStats
	hits        int
	invalidated int
	getErr      error
}

func (c *memoryStatsCache) GetStats(ctx context.Context) (*entity.PlayerStats, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.stats == nil {
		return nil, false, nil
	}
	c.hits++
	cp := *c.stats
	return &cp, true, nil
}

func (c *memoryStatsCache) SetStats(ctx context.Context, stats *entity.PlayerStats) error {
	cp := *stats
	c.stats = &cp
	return nil
}

func (c *memoryStatsCache) InvalidateStats(ctx context.Context) error {
	c.stats = nil
	c.invalidated++
	return nil
}

type staticConfig struct {
	prefix      string
	maxAttempts int
}

func (c staticConfig) GetPlayerIDPrefix() string { return c.prefix }
func (c staticConfig) GetUserIDMaxAttempts() int { return c.maxAttempts }
