package usecasecontract

import (
	"context"
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

// RegisterPlayerInput carries the raw registration fields as submitted.
type RegisterPlayerInput struct {
	FirstName              string `json:"firstName" validate:"required,max=50"`
	MiddleName             string `json:"middleName" validate:"omitempty,max=50"`
	LastName               string `json:"lastName" validate:"required,max=50"`
	DateOfBirth            string `json:"dateOfBirth" validate:"required,dob,playerage"`
	Gender                 string `json:"gender" validate:"required,gender"`
	Email                  string `json:"email" validate:"required,max=254,lightemail"`
	Phone                  string `json:"phone" validate:"required,phone"`
	StreetAddress          string `json:"streetAddress" validate:"required,max=200"`
	City                   string `json:"city" validate:"required,max=50"`
	State                  string `json:"state" validate:"required,max=50"`
	PostalCode             string `json:"postalCode" validate:"required,postalcode"`
	Country                string `json:"country" validate:"required,max=50"`
	PrimarySport           string `json:"primarySport" validate:"required,max=30"`
	Role                   string `json:"role" validate:"required,playerrole"`
	BattingOrderPreference string `json:"battingOrderPreference" validate:"required,battingorder"`
	BowlingStyle           string `json:"bowlingStyle" validate:"required,bowlingstyle"`
	BattingStyle           string `json:"battingStyle" validate:"required,battingstyle"`
	BowlingArm             string `json:"bowlingArm" validate:"omitempty,bowlingarm"`
	Username               string `json:"username" validate:"required,min=3,max=30,username"`
	Password               string `json:"password" validate:"required,min=6,max=128"`

	ClientTimestamp *time.Time `json:"clientTimestamp" validate:"-"`
	ClientRandom    string     `json:"clientRandom" validate:"-"`
	IPAddress       string     `json:"-" validate:"-"`
	UserAgent       string     `json:"-" validate:"-"`
}

// SequencePreview shows the last allocated number and the id the next registration would get.
type SequencePreview struct {
	CurrentSequence int64
	NextPlayerID    string
}

// IPlayerUseCase defines player registration and lookup operations.
type IPlayerUseCase interface {
	Register(ctx context.Context, input RegisterPlayerInput) (*entity.Player, error)
	GetPlayer(ctx context.Context, id string) (*entity.Player, error)
	ListPlayers(ctx context.Context, filter entity.PlayerFilter) ([]*entity.Player, int64, error)
	GetStats(ctx context.Context) (*entity.PlayerStats, error)
	PreviewSequence(ctx context.Context) (*SequencePreview, error)
	Login(ctx context.Context, identifier, password string) (*entity.Player, string, error)
	CheckStorage(ctx context.Context) error
	Now() time.Time
}
