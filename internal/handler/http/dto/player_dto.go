package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

// Request DTOs for Player Handlers

// RegisterPlayerRequest mirrors the registration form. Field rules are enforced
// by the usecase validator so that every problem is reported at once.
type RegisterPlayerRequest struct {
	FirstName              string `json:"firstName"`
	MiddleName             string `json:"middleName"`
	LastName               string `json:"lastName"`
	DateOfBirth            string `json:"dateOfBirth"`
	Gender                 string `json:"gender"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	StreetAddress          string `json:"streetAddress"`
	City                   string `json:"city"`
	State                  string `json:"state"`
	PostalCode             string `json:"postalCode"`
	Country                string `json:"country"`
	PrimarySport           string `json:"primarySport"`
	Role                   string `json:"role"`
	BattingOrderPreference string `json:"battingOrderPreference"`
	BowlingStyle           string `json:"bowlingStyle"`
	BattingStyle           string `json:"battingStyle"`
	BowlingArm             string `json:"bowlingArm"`
	Username               string `json:"username"`
	Password               string `json:"password"`

	// Client metadata may arrive as a JSON number or string.
	ClientTimestamp json.RawMessage `json:"clientTimestamp"`
	ClientRandom    json.RawMessage `json:"clientRandom"`
}

// ToInput converts the request into usecase input, attaching request metadata.
func (r RegisterPlayerRequest) ToInput(ip, userAgent string) usecasecontract.RegisterPlayerInput {
	return usecasecontract.RegisterPlayerInput{
		FirstName:              r.FirstName,
		MiddleName:             r.MiddleName,
		LastName:               r.LastName,
		DateOfBirth:            r.DateOfBirth,
		Gender:                 r.Gender,
		Email:                  r.Email,
		Phone:                  r.Phone,
		StreetAddress:          r.StreetAddress,
		City:                   r.City,
		State:                  r.State,
		PostalCode:             r.PostalCode,
		Country:                r.Country,
		PrimarySport:           r.PrimarySport,
		Role:                   r.Role,
		BattingOrderPreference: r.BattingOrderPreference,
		BowlingStyle:           r.BowlingStyle,
		BattingStyle:           r.BattingStyle,
		BowlingArm:             r.BowlingArm,
		Username:               r.Username,
		Password:               r.Password,
		ClientTimestamp:        parseClientTimestamp(r.ClientTimestamp),
		ClientRandom:           parseClientRandom(r.ClientRandom),
		IPAddress:              ip,
		UserAgent:              userAgent,
	}
}

// parseClientTimestamp accepts unix milliseconds as a number or string, or an
// RFC 3339 string; anything else is dropped.
func parseClientTimestamp(raw json.RawMessage) *time.Time {
	s, ok := rawScalar(raw)
	if !ok || s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(ms, 0) && !math.IsNaN(ms) {
		t := time.UnixMilli(int64(ms)).UTC()
		return &t
	}
	return nil
}

// parseClientRandom keeps a string or number nonce verbatim; other shapes are dropped.
func parseClientRandom(raw json.RawMessage) string {
	s, _ := rawScalar(raw)
	return s
}

// rawScalar returns the text of a JSON string or number.
func rawScalar(raw json.RawMessage) (string, bool) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if len(bytes.TrimSpace(raw)) == 0 || dec.Decode(&v) != nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), true
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}

// ListPlayersQuery binds the listing query string.
type ListPlayersQuery struct {
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,playerrole"`
	State  string `form:"state"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// DefaultPageLimit is used when the query does not specify a limit.
const DefaultPageLimit = 10

func (q ListPlayersQuery) ToFilter() entity.PlayerFilter {
	f := entity.PlayerFilter{Search: q.Search, Role: q.Role, State: q.State, Page: q.Page, Limit: q.Limit}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	return f
}

// LoginRequest carries credentials; identifier is a username, email, player id or user id.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Response DTOs

// RegisterPlayerResponse echoes the generated identifiers and selected fields.
type RegisterPlayerResponse struct {
	Success          bool      `json:"success"`
	PlayerID         string    `json:"playerId"`
	UserID           string    `json:"userId"`
	SequenceNumber   int64     `json:"sequenceNumber"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Role             string    `json:"role"`
	RegistrationDate time.Time `json:"registrationDate"`
	Status           string    `json:"status"`
}

func ToRegisterPlayerResponse(p *entity.Player) RegisterPlayerResponse {
	return RegisterPlayerResponse{
		Success:          true,
		PlayerID:         p.PlayerID,
		UserID:           p.UserID,
		SequenceNumber:   p.SequenceNumber,
		FullName:         p.FullName(),
		Email:            p.Email,
		Phone:            p.Phone,
		City:             p.City,
		State:            p.State,
		Role:             string(p.Role),
		RegistrationDate: p.RegistrationDate,
		Status:           string(p.Status),
	}
}

// PlayerResponse is the public view of a player; no password or request metadata.
type PlayerResponse struct {
	ID                     string     `json:"id"`
	PlayerID               string     `json:"playerId"`
	UserID                 string     `json:"userId"`
	SequenceNumber         int64      `json:"sequenceNumber"`
	FirstName              string     `json:"firstName"`
	MiddleName             *string    `json:"middleName,omitempty"`
	LastName               string     `json:"lastName"`
	FullName               string     `json:"fullName"`
	DateOfBirth            string     `json:"dateOfBirth"`
	Age                    int        `json:"age"`
	Gender                 string     `json:"gender"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone"`
	StreetAddress          string     `json:"streetAddress"`
	City                   string     `json:"city"`
	State                  string     `json:"state"`
	PostalCode             string     `json:"postalCode"`
	Country                string     `json:"country"`
	PrimarySport           string     `json:"primarySport"`
	Role                   string     `json:"role"`
	BattingOrderPreference string     `json:"battingOrderPreference"`
	BowlingStyle           string     `json:"bowlingStyle"`
	BattingStyle           string     `json:"battingStyle"`
	BowlingArm             *string    `json:"bowlingArm,omitempty"`
	Username               string     `json:"username"`
	RegistrationDate       time.Time  `json:"registrationDate"`
	Status                 string     `json:"status"`
	LastLogin              *time.Time `json:"lastLogin,omitempty"`
	LoginCount             int        `json:"loginCount"`
	EmailVerified          bool       `json:"emailVerified"`
	PhoneVerified          bool       `json:"phoneVerified"`
	ProfileVerified        bool       `json:"profileVerified"`
}

// ToPlayerResponse maps a player, computing derived fields at now.
func ToPlayerResponse(p *entity.Player, now time.Time) PlayerResponse {
	var arm *string
	if p.BowlingArm != nil {
		a := string(*p.BowlingArm)
		arm = &a
	}
	return PlayerResponse{
		ID:                     p.ID,
		PlayerID:               p.PlayerID,
		UserID:                 p.UserID,
		SequenceNumber:         p.SequenceNumber,
		FirstName:              p.FirstName,
		MiddleName:             p.MiddleName,
		LastName:               p.LastName,
		FullName:               p.FullName(),
		DateOfBirth:            p.DateOfBirth.Format(entity.DateOfBirthLayout),
		Age:                    p.Age(now),
		Gender:                 string(p.Gender),
		Email:                  p.Email,
		Phone:                  p.Phone,
		StreetAddress:          p.StreetAddress,
		City:                   p.City,
		State:                  p.State,
		PostalCode:             p.PostalCode,
		Country:                p.Country,
		PrimarySport:           p.PrimarySport,
		Role:                   string(p.Role),
		BattingOrderPreference: string(p.BattingOrderPreference),
		BowlingStyle:           string(p.BowlingStyle),
		BattingStyle:           string(p.BattingStyle),
		BowlingArm:             arm,
		Username:               p.Username,
		RegistrationDate:       p.RegistrationDate,
		Status:                 string(p.Status),
		LastLogin:              p.LastLogin,
		LoginCount:             p.LoginCount,
		EmailVerified:          p.EmailVerified,
		PhoneVerified:          p.PhoneVerified,
		ProfileVerified:        p.ProfileVerified,
	}
}

// PlayerDetailResponse wraps a single player.
type PlayerDetailResponse struct {
	Success bool           `json:"success"`
	Player  PlayerResponse `json:"player"`
}

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// PaginatedPlayersResponse defines the structure for a paginated list of players.
type PaginatedPlayersResponse struct {
	Success    bool             `json:"success"`
	Players    []PlayerResponse `json:"players"`
	Pagination Pagination       `json:"pagination"`
}

func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// SequenceResponse previews the next player id.
type SequenceResponse struct {
	Success         bool   `json:"success"`
	CurrentSequence int64  `json:"currentSequence"`
	NextPlayerID    string `json:"nextPlayerId"`
}

// StatsResponse carries aggregate registration counts.
type StatsResponse struct {
	Success bool `json:"success"`
	entity.PlayerStats
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	Success     bool           `json:"success"`
	AccessToken string         `json:"accessToken"`
	Player      PlayerResponse `json:"player"`
}

// HealthResponse reports process and database health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	Database  string    `json:"database"`
}
