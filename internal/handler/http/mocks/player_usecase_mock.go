package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

// MockPlayerUsecase is a mock implementation of the PlayerUsecase interface
type MockPlayerUsecase struct {
	// Control mock behavior
	RegisterErr      error
	GetPlayerErr     error
	ListErr          error
	StatsErr         error
	SequenceErr      error
	LoginErr         error
	StorageErr       error
	ShouldFailLookup bool

	// Return values
	MockPlayer    entity.Player
	MockStats     entity.PlayerStats
	MockToken     string
	MockTotal     int64
	MockNow       time.Time
	MockCurrent   int64
	MockNextID    string
	LastInput     usecasecontract.RegisterPlayerInput
	LastFilter    entity.PlayerFilter
	LastLookupID  string
	RegisterCalls int
}

// Ensure MockPlayerUsecase implements the correct interface for handler.NewPlayerHandler
var _ usecasecontract.IPlayerUseCase = (*MockPlayerUsecase)(nil)

func NewMockPlayerUsecase() *MockPlayerUsecase {
	now := time.Date(2025, 10, 4, 10, 0, 0, 0, time.UTC)
	return &MockPlayerUsecase{
		MockPlayer: entity.Player{
			ID:                     "mock-key",
			PlayerID:               "IDSC0104102025",
			UserID:                 "USRMOCK123456",
			SequenceNumber:         1,
			FirstName:              "Anil",
			LastName:               "Kumble",
			DateOfBirth:            time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:                 entity.GenderMale,
			Email:                  "a@b.com",
			Phone:                  "9876543210",
			StreetAddress:          "1 MG Road",
			City:                   "Bengaluru",
			State:                  "Karnataka",
			PostalCode:             "560001",
			Country:                entity.DefaultCountry,
			PrimarySport:           entity.DefaultPrimarySport,
			Role:                   entity.RoleBowler,
			BattingOrderPreference: entity.BattingOrderLower,
			BowlingStyle:           entity.BowlingStyleNone,
			BattingStyle:           entity.BattingStyleRight,
			Username:               "anilk",
			PasswordHash:           "$2a$10$hashed",
			RegistrationDate:       now,
			Status:                 entity.StatusActive,
		},
		MockStats: entity.PlayerStats{
			TotalPlayers: 1,
			ByRole:       []entity.GroupCount{{Key: "Bowler", Count: 1}},
			ByState:      []entity.GroupCount{{Key: "Karnataka", Count: 1}},
			ByDay:        []entity.GroupCount{{Key: "2025-10-04", Count: 1}},
		},
		MockToken:   "mock_access_token",
		MockTotal:   1,
		MockNow:     now,
		MockCurrent: 1,
		MockNextID:  "IDSC0204102025",
	}
}

func (m *MockPlayerUsecase) Register(ctx context.Context, input usecasecontract.RegisterPlayerInput) (*entity.Player, error) {
	m.RegisterCalls++
	m.LastInput = input
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	p := m.MockPlayer
	return &p, nil
}

func (m *MockPlayerUsecase) GetPlayer(ctx context.Context, id string) (*entity.Player, error) {
	m.LastLookupID = id
	if m.GetPlayerErr != nil {
		return nil, m.GetPlayerErr
	}
	if m.ShouldFailLookup {
		return nil, entity.ErrPlayerNotFound
	}
	p := m.MockPlayer
	return &p, nil
}

func (m *MockPlayerUsecase) ListPlayers(ctx context.Context, filter entity.PlayerFilter) ([]*entity.Player, int64, error) {
	m.LastFilter = filter
	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}
	p := m.MockPlayer
	return []*entity.Player{&p}, m.MockTotal, nil
}

func (m *MockPlayerUsecase) GetStats(ctx context.Context) (*entity.PlayerStats, error) {
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	s := m.MockStats
	return &s, nil
}

func (m *MockPlayerUsecase) PreviewSequence(ctx context.Context) (*usecasecontract.SequencePreview, error) {
	if m.SequenceErr != nil {
		return nil, m.SequenceErr
	}
	return &usecasecontract.SequencePreview{CurrentSequence: m.MockCurrent, NextPlayerID: m.MockNextID}, nil
}

func (m *MockPlayerUsecase) Login(ctx context.Context, identifier, password string) (*entity.Player, string, error) {
	if m.LoginErr != nil {
		return nil, "", m.LoginErr
	}
	if password != "secret1" {
		return nil, "", errors.New("unexpected password in mock")
	}
	p := m.MockPlayer
	return &p, m.MockToken, nil
}

func (m *MockPlayerUsecase) CheckStorage(ctx context.Context) error {
	return m.StorageErr
}

func (m *MockPlayerUsecase) Now() time.Time {
	return m.MockNow
}
