package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Registration outcomes reported to metrics.
const (
	OutcomeSuccess       = "success"
	OutcomeMissingFields = "missing_fields"
	OutcomeInvalid       = "invalid"
	OutcomeDuplicate     = "duplicate"
	OutcomeError         = "error"
)

// PlayerUsecase implements IPlayerUseCase.
type PlayerUsecase struct {
	playerRepo    contract.IPlayerRepository
	identifiers   *IdentifierService
	hasher        contract.IHasher
	uuidGenerator contract.IUUIDGenerator
	clock         contract.IClock
	jwtService    JWTService
	validator     usecasecontract.IValidator
	logger        usecasecontract.IAppLogger
	metrics       usecasecontract.IMetrics
	statsCache    contract.IStatsCache
}

// NewPlayerUsecase creates a new PlayerUsecase instance.
func NewPlayerUsecase(
	playerRepo contract.IPlayerRepository,
	identifiers *IdentifierService,
	hasher contract.IHasher,
	uuidGenerator contract.IUUIDGenerator,
	clock contract.IClock,
	jwtService JWTService,
	validator usecasecontract.IValidator,
	logger usecasecontract.IAppLogger,
	metrics usecasecontract.IMetrics,
) *PlayerUsecase {
	return &PlayerUsecase{
		playerRepo:    playerRepo,
		identifiers:   identifiers,
		hasher:        hasher,
		uuidGenerator: uuidGenerator,
		clock:         clock,
		jwtService:    jwtService,
		validator:     validator,
		logger:        logger,
		metrics:       metrics,
	}
}

// check if PlayerUsecase implements the IPlayerUseCase
var _ usecasecontract.IPlayerUseCase = (*PlayerUsecase)(nil)

// SetStatsCache enables caching of aggregate statistics.
func (uc *PlayerUsecase) SetStatsCache(cache contract.IStatsCache) {
	uc.statsCache = cache
}

// Now returns the usecase clock's current time.
func (uc *PlayerUsecase) Now() time.Time {
	return uc.clock.Now()
}

// Register validates the input, allocates identifiers and persists a new player.
// A sequence number consumed by a failed insert is not returned to the counter.
func (uc *PlayerUsecase) Register(ctx context.Context, input usecasecontract.RegisterPlayerInput) (player *entity.Player, err error) {
	defer func() { uc.metrics.ObserveRegistration(registrationOutcome(err)) }()

	normalizeRegistration(&input)
	if err := uc.validator.ValidateRegistration(&input); err != nil {
		return nil, err
	}

	if err := uc.checkDuplicates(ctx, &input); err != nil {
		return nil, err
	}

	dob, err := entity.ParseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return nil, &entity.SchemaValidationError{Violations: []entity.FieldViolation{
			{Field: "dateOfBirth", Message: "dateOfBirth must be a valid date"},
		}}
	}

	now := uc.clock.Now()
	seq, playerID, err := uc.identifiers.NextPlayerIdentity(ctx, now)
	if err != nil {
		uc.logger.Errorf("failed to allocate player sequence: %v", err)
		return nil, err
	}
	uc.metrics.ObserveSequenceAllocation()

	userID, err := uc.identifiers.NewUserID(ctx, now)
	if err != nil {
		uc.logger.Errorf("failed to generate user id for sequence %d: %v", seq, err)
		return nil, err
	}

	hashedPassword, err := uc.hasher.HashPassword(input.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	player = buildPlayer(&input, dob, now)
	player.ID = uc.uuidGenerator.NewUUID()
	player.PlayerID = playerID
	player.UserID = userID
	player.SequenceNumber = seq
	player.PasswordHash = hashedPassword

	if err := uc.playerRepo.CreatePlayer(ctx, player); err != nil {
		uc.logger.Errorf("failed to persist player %s (sequence %d consumed): %v", playerID, seq, err)
		return nil, err
	}

	if uc.statsCache != nil {
		if err := uc.statsCache.InvalidateStats(ctx); err != nil {
			uc.logger.Warnf("failed to invalidate stats cache: %v", err)
		}
	}
	uc.logger.Infof("registered player %s (sequence %d)", player.PlayerID, player.SequenceNumber)
	return player, nil
}

func (uc *PlayerUsecase) checkDuplicates(ctx context.Context, input *usecasecontract.RegisterPlayerInput) error {
	lookups := []struct {
		field string
		find  func(context.Context, string) (*entity.Player, error)
		value string
	}{
		{"email", uc.playerRepo.GetPlayerByEmail, input.Email},
		{"username", uc.playerRepo.GetPlayerByUsername, input.Username},
		{"phone", uc.playerRepo.GetPlayerByPhone, input.Phone},
	}
	for _, l := range lookups {
		existing, err := l.find(ctx, l.value)
		if err != nil && !errors.Is(err, entity.ErrPlayerNotFound) {
			uc.logger.Errorf("failed to check for existing player by %s: %v", l.field, err)
			return err
		}
		if existing != nil {
			return &entity.DuplicateKeyError{Field: l.field}
		}
	}
	return nil
}

// GetPlayer fetches a player by player id, user id, internal key or username.
func (uc *PlayerUsecase) GetPlayer(ctx context.Context, id string) (*entity.Player, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entity.ErrPlayerNotFound
	}
	return uc.playerRepo.FindByAnyID(ctx, id)
}

// ListPlayers returns a page of players and the total number matching the filter.
func (uc *PlayerUsecase) ListPlayers(ctx context.Context, filter entity.PlayerFilter) ([]*entity.Player, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return uc.playerRepo.ListPlayers(ctx, filter)
}

// GetStats returns aggregate registration counts, served from cache when possible.
func (uc *PlayerUsecase) GetStats(ctx context.Context) (*entity.PlayerStats, error) {
	if uc.statsCache != nil {
		cached, ok, err := uc.statsCache.GetStats(ctx)
		if err != nil {
			uc.logger.Warnf("stats cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	stats, err := uc.playerRepo.AggregateStats(ctx, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if uc.statsCache != nil {
		if err := uc.statsCache.SetStats(ctx, stats); err != nil {
			uc.logger.Warnf("stats cache write failed: %v", err)
		}
	}
	return stats, nil
}

// PreviewSequence reports the current counter value without allocating.
func (uc *PlayerUsecase) PreviewSequence(ctx context.Context) (*usecasecontract.SequencePreview, error) {
	current, next, err := uc.identifiers.Preview(ctx, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	return &usecasecontract.SequencePreview{CurrentSequence: current, NextPlayerID: next}, nil
}

// Login verifies credentials, records the login and issues an access token.
func (uc *PlayerUsecase) Login(ctx context.Context, identifier, password string) (*entity.Player, string, error) {
	identifier = strings.TrimSpace(identifier)
	var player *entity.Player
	var err error
	if uc.validator.ValidateEmail(strings.ToLower(identifier)) == nil {
		player, err = uc.playerRepo.GetPlayerByEmail(ctx, strings.ToLower(identifier))
	} else {
		player, err = uc.playerRepo.FindByAnyID(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, entity.ErrPlayerNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve player for login: %v", err)
		return nil, "", err
	}

	if err := uc.hasher.ComparePasswordHash(password, player.PasswordHash); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}
	if player.Status != entity.StatusActive {
		return nil, "", entity.ErrAccountNotActive
	}

	now := uc.clock.Now()
	if err := uc.playerRepo.RecordLogin(ctx, player.ID, now); err != nil {
		uc.logger.Errorf("failed to record login for %s: %v", player.PlayerID, err)
		return nil, "", err
	}
	player.LastLogin = &now
	player.LoginCount++

	token, err := uc.jwtService.GenerateAccessToken(player)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return player, token, nil
}

// CheckStorage pings the player store.
func (uc *PlayerUsecase) CheckStorage(ctx context.Context) error {
	return uc.playerRepo.Ping(ctx)
}

// normalizeRegistration trims every field, lowercases the email and applies defaults.
func normalizeRegistration(in *usecasecontract.RegisterPlayerInput) {
	for _, f := range []*string{
		&in.FirstName, &in.MiddleName, &in.LastName, &in.DateOfBirth, &in.Gender,
		&in.Email, &in.Phone, &in.StreetAddress, &in.City, &in.State, &in.PostalCode,
		&in.Country, &in.PrimarySport, &in.Role, &in.BattingOrderPreference,
		&in.BowlingStyle, &in.BattingStyle, &in.BowlingArm, &in.Username, &in.ClientRandom,
	} {
		*f = strings.TrimSpace(*f)
	}
	in.Email = strings.ToLower(in.Email)
	in.Gender = strings.ToLower(in.Gender)
	if in.Country == "" {
		in.Country = entity.DefaultCountry
	}
	if in.PrimarySport == "" {
		in.PrimarySport = entity.DefaultPrimarySport
	}
	if in.BowlingStyle == "" {
		in.BowlingStyle = string(entity.BowlingStyleNone)
	}
}

func buildPlayer(in *usecasecontract.RegisterPlayerInput, dob, now time.Time) *entity.Player {
	p := &entity.Player{
		FirstName:              in.FirstName,
		LastName:               in.LastName,
		DateOfBirth:            dob,
		Gender:                 entity.Gender(in.Gender),
		Email:                  in.Email,
		Phone:                  in.Phone,
		StreetAddress:          in.StreetAddress,
		City:                   in.City,
		State:                  in.State,
		PostalCode:             in.PostalCode,
		Country:                in.Country,
		PrimarySport:           in.PrimarySport,
		Role:                   entity.PlayerRole(in.Role),
		BattingOrderPreference: entity.BattingOrder(in.BattingOrderPreference),
		BowlingStyle:           entity.BowlingStyle(in.BowlingStyle),
		BattingStyle:           entity.BattingStyle(in.BattingStyle),
		Username:               in.Username,
		RegistrationDate:       now,
		RegistrationMetadata: entity.RegistrationSource{
			IPAddress:       in.IPAddress,
			UserAgent:       in.UserAgent,
			ClientTimestamp: in.ClientTimestamp,
			ClientRandom:    in.ClientRandom,
		},
		Status: entity.StatusActive,
	}
	if in.MiddleName != "" {
		middle := in.MiddleName
		p.MiddleName = &middle
	}
	if in.BowlingArm != "" {
		arm := entity.BowlingArm(in.BowlingArm)
		p.BowlingArm = &arm
	}
	return p
}

func registrationOutcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var missing *entity.MissingFieldError
	var invalid *entity.SchemaValidationError
	var duplicate *entity.DuplicateKeyError
	switch {
	case errors.As(err, &missing):
		return OutcomeMissingFields
	case errors.As(err, &invalid):
		return OutcomeInvalid
	case errors.As(err, &duplicate):
		return OutcomeDuplicate
	default:
		return OutcomeError
	}
}
