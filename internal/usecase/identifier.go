package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

const (
	userIDPrefix      = "USR"
	userIDTokenLength = 6
	userIDAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultUserIDMaxAttempts bounds the collision retry loop for user ids.
	DefaultUserIDMaxAttempts = 5
)

// FormatPlayerID builds the public player id: prefix, sequence padded to two
// digits, then the generation date as ddmmyyyy, all uppercase.
// The date is the generation date, so ids do not sort by registration order
// across day boundaries.
func FormatPlayerID(prefix string, sequence int64, date time.Time) string {
	return strings.ToUpper(fmt.Sprintf("%s%02d%s", prefix, sequence, date.Format("02012006")))
}

// IdentifierService issues sequence numbers, player ids and user ids.
type IdentifierService struct {
	sequences   contract.ISequenceRepository
	players     contract.IPlayerRepository
	random      contract.IRandomGenerator
	prefix      string
	maxAttempts int
}

func NewIdentifierService(
	sequences contract.ISequenceRepository,
	players contract.IPlayerRepository,
	random contract.IRandomGenerator,
	cfg usecasecontract.IConfigProvider,
) *IdentifierService {
	maxAttempts := cfg.GetUserIDMaxAttempts()
	if maxAttempts <= 0 {
		maxAttempts = DefaultUserIDMaxAttempts
	}
	return &IdentifierService{
		sequences:   sequences,
		players:     players,
		random:      random,
		prefix:      cfg.GetPlayerIDPrefix(),
		maxAttempts: maxAttempts,
	}
}

// NextPlayerIdentity allocates the next sequence number and formats the player id for it.
// A failed allocation never yields a number.
func (s *IdentifierService) NextPlayerIdentity(ctx context.Context, now time.Time) (int64, string, error) {
	seq, err := s.sequences.NextSequence(ctx, entity.PlayerSequenceKey)
	if err != nil {
		return 0, "", &entity.IDGenerationError{Reason: "sequence allocation", Err: err}
	}
	return seq, FormatPlayerID(s.prefix, seq, now), nil
}

// Preview reports the last allocated sequence and the id the next registration would receive.
func (s *IdentifierService) Preview(ctx context.Context, now time.Time) (int64, string, error) {
	current, err := s.sequences.CurrentSequence(ctx, entity.PlayerSequenceKey)
	if err != nil {
		return 0, "", err
	}
	return current, FormatPlayerID(s.prefix, current+1, now), nil
}

// NewUserID builds an opaque id from the timestamp and a random token, retrying
// on collision up to the configured number of attempts.
func (s *IdentifierService) NewUserID(ctx context.Context, now time.Time) (string, error) {
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		token, err := s.random.GenerateRandomString(userIDTokenLength, userIDAlphabet)
		if err != nil {
			return "", &entity.IDGenerationError{Reason: "random token", Err: err}
		}
		candidate := userIDPrefix + stamp + token
		exists, err := s.players.UserIDExists(ctx, candidate)
		if err != nil {
			return "", &entity.IDGenerationError{Reason: "user id lookup", Err: err}
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", &entity.IDGenerationError{Reason: fmt.Sprintf("no unique user id after %d attempts", s.maxAttempts)}
}
