package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Prakash9019/my-cricket-reg-app/internal/handler/http/dto"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	playerUsecase usecasecontract.IPlayerUseCase
	startedAt     time.Time
}

func NewHealthHandler(playerUsecase usecasecontract.IPlayerUseCase, startedAt time.Time) *HealthHandler {
	return &HealthHandler{playerUsecase: playerUsecase, startedAt: startedAt}
}

// Health handles GET /health. It answers 200 even when the database is down so
// that the process itself can be probed separately.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	database := "Connected"
	if err := h.playerUsecase.CheckStorage(ctx); err != nil {
		database = "Disconnected"
	}
	now := h.playerUsecase.Now()
	SuccessHandler(c, http.StatusOK, dto.HealthResponse{
		Status:    "OK",
		Timestamp: now,
		Uptime:    now.Sub(h.startedAt).Seconds(),
		Database:  database,
	})
}
