package jwt

import (
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	"github.com/Prakash9019/my-cricket-reg-app/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateAccessToken issues an access token for a player.
func (a *JWTServiceAdapter) GenerateAccessToken(player *entity.Player) (string, error) {
	return a.mgr.GenerateAccessToken(player.ID, player.PlayerID, player.Username)
}

// ParseAccessToken validates an access token and returns Claims.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	return a.mgr.VerifyToken(tokenStr)
}
