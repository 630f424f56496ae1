package contract

import (
	"context"
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

// IPlayerRepository persists and queries registered players.
type IPlayerRepository interface {
	// CreatePlayer inserts a new player. Unique index violations surface as *entity.DuplicateKeyError.
	CreatePlayer(ctx context.Context, player *entity.Player) error
	// FindByAnyID looks a player up by player id, user id, internal key or username.
	FindByAnyID(ctx context.Context, id string) (*entity.Player, error)
	GetPlayerByEmail(ctx context.Context, email string) (*entity.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*entity.Player, error)
	GetPlayerByPhone(ctx context.Context, phone string) (*entity.Player, error)
	// UserIDExists reports whether a user id has already been issued.
	UserIDExists(ctx context.Context, userID string) (bool, error)
	ListPlayers(ctx context.Context, filter entity.PlayerFilter) ([]*entity.Player, int64, error)
	AggregateStats(ctx context.Context, now time.Time) (*entity.PlayerStats, error)
	// RecordLogin stamps last login and bumps the login counter.
	RecordLogin(ctx context.Context, id string, at time.Time) error
	Ping(ctx context.Context) error
}
