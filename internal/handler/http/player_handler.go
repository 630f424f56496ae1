package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	"github.com/Prakash9019/my-cricket-reg-app/internal/handler/http/dto"
	"github.com/Prakash9019/my-cricket-reg-app/internal/handler/http/middleware"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

// PlayerHandlerInterface defines the methods for player handler to allow interface-based dependency injection (for testing/mocking)
type PlayerHandlerInterface interface {
	RegisterPlayer(*gin.Context)
	ListPlayers(*gin.Context)
	GetPlayer(*gin.Context)
	ExportPlayer(*gin.Context)
	Login(*gin.Context)
	GetCurrentPlayer(*gin.Context)
	GetStats(*gin.Context)
	GetSequence(*gin.Context)
}

// Ensure PlayerHandler implements PlayerHandlerInterface
var _ PlayerHandlerInterface = (*PlayerHandler)(nil)

type PlayerHandler struct {
	playerUsecase usecasecontract.IPlayerUseCase
}

func NewPlayerHandler(playerUsecase usecasecontract.IPlayerUseCase) *PlayerHandler {
	return &PlayerHandler{
		playerUsecase: playerUsecase,
	}
}

// RegisterPlayer handles POST /api/players/register
func (h *PlayerHandler) RegisterPlayer(c *gin.Context) {
	var req dto.RegisterPlayerRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	player, err := h.playerUsecase.Register(c.Request.Context(), req.ToInput(c.ClientIP(), c.Request.UserAgent()))
	if err != nil {
		UsecaseErrorHandler(c, err, genericFailureMessage)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToRegisterPlayerResponse(player))
}

// ListPlayers handles GET /api/players
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	var query dto.ListPlayersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	filter := query.ToFilter()
	players, total, err := h.playerUsecase.ListPlayers(c.Request.Context(), filter)
	if err != nil {
		UsecaseErrorHandler(c, err, "Failed to fetch players")
		return
	}

	now := h.playerUsecase.Now()
	resp := make([]dto.PlayerResponse, 0, len(players))
	for _, p := range players {
		resp = append(resp, dto.ToPlayerResponse(p, now))
	}
	SuccessHandler(c, http.StatusOK, dto.PaginatedPlayersResponse{
		Success:    true,
		Players:    resp,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetPlayer handles GET /api/players/:id
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	player, err := h.playerUsecase.GetPlayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		UsecaseErrorHandler(c, err, "Failed to fetch player")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PlayerDetailResponse{
		Success: true,
		Player:  dto.ToPlayerResponse(player, h.playerUsecase.Now()),
	})
}

// ExportPlayer handles GET /api/players/:id/export, returning the registration card as text.
func (h *PlayerHandler) ExportPlayer(c *gin.Context) {
	player, err := h.playerUsecase.GetPlayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		UsecaseErrorHandler(c, err, "Failed to export player")
		return
	}
	filename := fmt.Sprintf("registration-%s.txt", player.PlayerID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.String(http.StatusOK, registrationCard(player))
}

func registrationCard(p *entity.Player) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%-26s %s\n", label+":", value)
	}
	b.WriteString("CRICKET PLAYER REGISTRATION\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	line("Player ID", p.PlayerID)
	line("User ID", p.UserID)
	line("Sequence Number", fmt.Sprintf("%d", p.SequenceNumber))
	line("Full Name", p.FullName())
	line("Date of Birth", p.DateOfBirth.Format(entity.DateOfBirthLayout))
	line("Gender", string(p.Gender))
	line("Email", p.Email)
	line("Phone", p.Phone)
	line("Address", fmt.Sprintf("%s, %s, %s %s, %s", p.StreetAddress, p.City, p.State, p.PostalCode, p.Country))
	line("Primary Sport", p.PrimarySport)
	line("Role", string(p.Role))
	line("Batting Order Preference", string(p.BattingOrderPreference))
	line("Batting Style", string(p.BattingStyle))
	line("Bowling Style", string(p.BowlingStyle))
	if p.BowlingArm != nil {
		line("Bowling Arm", string(*p.BowlingArm))
	}
	line("Username", p.Username)
	line("Status", string(p.Status))
	line("Registration Date", p.RegistrationDate.Format("02 Jan 2006 15:04"))
	return b.String()
}

// Login handles POST /api/players/login
func (h *PlayerHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	player, token, err := h.playerUsecase.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		UsecaseErrorHandler(c, err, "Login failed")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.LoginResponse{
		Success:     true,
		AccessToken: token,
		Player:      dto.ToPlayerResponse(player, h.playerUsecase.Now()),
	})
}

// GetCurrentPlayer handles GET /api/players/me for an authenticated player
func (h *PlayerHandler) GetCurrentPlayer(c *gin.Context) {
	key := c.GetString(middleware.ContextPlayerKey)
	if key == "" {
		ErrorHandler(c, http.StatusUnauthorized, "Player not authenticated")
		return
	}
	player, err := h.playerUsecase.GetPlayer(c.Request.Context(), key)
	if err != nil {
		UsecaseErrorHandler(c, err, "Failed to fetch player")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PlayerDetailResponse{
		Success: true,
		Player:  dto.ToPlayerResponse(player, h.playerUsecase.Now()),
	})
}

// GetStats handles GET /api/stats
func (h *PlayerHandler) GetStats(c *gin.Context) {
	stats, err := h.playerUsecase.GetStats(c.Request.Context())
	if err != nil {
		UsecaseErrorHandler(c, err, "Failed to fetch statistics")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.StatsResponse{Success: true, PlayerStats: *stats})
}

// GetSequence handles GET /api/sequence. It never allocates.
func (h *PlayerHandler) GetSequence(c *gin.Context) {
	preview, err := h.playerUsecase.PreviewSequence(c.Request.Context())
	if err != nil {
		UsecaseErrorHandler(c, err, "Failed to read sequence")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.SequenceResponse{
		Success:         true,
		CurrentSequence: preview.CurrentSequence,
		NextPlayerID:    preview.NextPlayerID,
	})
}
