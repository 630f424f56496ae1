package usecase

import (
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

// JWTService defines the interface for JWT operations.
type JWTService interface {
	GenerateAccessToken(player *entity.Player) (string, error)
	ParseAccessToken(token string) (*entity.Claims, error)
}
