package contract

import (
	"context"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

// IStatsCache caches registration statistics.
type IStatsCache interface {
	GetStats(ctx context.Context) (*entity.PlayerStats, bool, error)
	SetStats(ctx context.Context, stats *entity.PlayerStats) error
	InvalidateStats(ctx context.Context) error
}
