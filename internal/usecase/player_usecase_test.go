package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/clock"
	jwtinfra "github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/jwt"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/logger"
	passwordservice "github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/password_service"
	randomgenerator "github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/random_generator"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/uuidgen"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/validator"
	"github.com/Prakash9019/my-cricket-reg-app/internal/usecase"
	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

var playerIDPattern = regexp.MustCompile(`^[A-Z]{4}\d{2,}\d{8}$`)

type recordingMetrics struct {
	mu          sync.Mutex
	outcomes    map[string]int
	allocations int
}

func (m *recordingMetrics) ObserveRegistration(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[outcome]++
}

func (m *recordingMetrics) ObserveSequenceAllocation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations++
}

type fixture struct {
	uc        *usecase.PlayerUsecase
	players   *memoryPlayerRepo
	sequences *memorySequenceRepo
	clock     *clock.FixedClock
	metrics   *recordingMetrics
	jwt       usecase.JWTService
}

func newFixture(t *testing.T, random contract.IRandomGenerator) *fixture {
	t.Helper()
	f := &fixture{
		players:   newMemoryPlayerRepo(),
		sequences: newMemorySequenceRepo(),
		clock:     clock.NewFixed(time.Date(2025, 10, 4, 10, 0, 0, 0, time.UTC)),
		metrics:   &recordingMetrics{},
		jwt:       jwtinfra.NewJWTService(jwtinfra.NewJWTManager("test-secret", time.Hour)),
	}
	if random == nil {
		random = randomgenerator.NewRandomGenerator()
	}
	ids := usecase.NewIdentifierService(f.sequences, f.players, random, staticConfig{prefix: "IDSC", maxAttempts: 5})
	f.uc = usecase.NewPlayerUsecase(
		f.players,
		ids,
		passwordservice.NewHasher(bcrypt.MinCost),
		uuidgen.NewGenerator(),
		f.clock,
		f.jwt,
		validator.NewValidator(f.clock),
		logger.NewSlogLoggerWithWriter(io.Discard, "debug", "text"),
		f.metrics,
	)
	return f
}

func kumble() usecasecontract.RegisterPlayerInput {
	return usecasecontract.RegisterPlayerInput{
		FirstName:              "Anil",
		LastName:               "Kumble",
		DateOfBirth:            "2005-01-01",
		Gender:                 "male",
		Email:                  "a@b.com",
		Phone:                  "9876543210",
		StreetAddress:          "1 MG Road",
		City:                   "Bengaluru",
		State:                  "Karnataka",
		PostalCode:             "560001",
		Role:                   "Bowler",
		BattingOrderPreference: "Lower Order",
		BattingStyle:           "Right Handed Bat",
		Username:               "anilk",
		Password:               "secret1",
		IPAddress:              "10.0.0.1",
		UserAgent:              "test-agent",
	}
}

func TestRegister_FirstPlayer(t *testing.T) {
	f := newFixture(t, nil)

	p, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)

	assert.Equal(t, "IDSC0104102025", p.PlayerID)
	assert.Equal(t, int64(1), p.SequenceNumber)
	assert.Equal(t, "Anil Kumble", p.FullName())
	assert.Regexp(t, `^USR[0-9A-Z]+[0-9A-Z]{6}$`, p.UserID)
	assert.Regexp(t, playerIDPattern, p.PlayerID)
	assert.NotEmpty(t, p.ID)

	assert.Equal(t, entity.StatusActive, p.Status)
	assert.Equal(t, "India", p.Country)
	assert.Equal(t, "Cricket", p.PrimarySport)
	assert.Equal(t, entity.BowlingStyleNone, p.BowlingStyle)
	assert.Nil(t, p.BowlingArm)
	assert.Nil(t, p.MiddleName)
	assert.Zero(t, p.LoginCount)
	assert.Equal(t, f.clock.Now(), p.RegistrationDate)
	assert.Equal(t, "10.0.0.1", p.RegistrationMetadata.IPAddress)
	assert.Equal(t, 20, p.Age(f.clock.Now()))

	assert.NotEqual(t, "secret1", p.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte("secret1")))

	assert.Equal(t, 1, f.metrics.outcomes[usecase.OutcomeSuccess])
	assert.Equal(t, 1, f.metrics.allocations)
}

func TestRegister_NormalizesInput(t *testing.T) {
	f := newFixture(t, nil)
	in := kumble()
	in.Email = "  A@B.COM "
	in.FirstName = " Anil "
	in.Gender = "Male"
	in.MiddleName = "Radhakrishna"
	in.BowlingStyle = "Spin"
	in.BowlingArm = "Right Arm Spin"

	p, err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", p.Email)
	assert.Equal(t, "Anil", p.FirstName)
	assert.Equal(t, entity.GenderMale, p.Gender)
	assert.Equal(t, "Anil Radhakrishna Kumble", p.FullName())
	require.NotNil(t, p.BowlingArm)
	assert.Equal(t, entity.BowlingArmRightSpin, *p.BowlingArm)
}

func TestRegister_SequencesStrictlyIncrease(t *testing.T) {
	f := newFixture(t, nil)

	var last int64
	for i := 0; i < 3; i++ {
		in := kumble()
		in.Email = fmt.Sprintf("p%d@b.com", i)
		in.Username = fmt.Sprintf("player_%d", i)
		in.Phone = fmt.Sprintf("98765432%02d", i)
		p, err := f.uc.Register(context.Background(), in)
		require.NoError(t, err)
		assert.Greater(t, p.SequenceNumber, last)
		last = p.SequenceNumber
	}
	assert.Equal(t, int64(3), last)
}

func TestRegister_ConcurrentRegistrationsGetDistinctIdentifiers(t *testing.T) {
	f := newFixture(t, nil)
	const n = 20

	var wg sync.WaitGroup
	results := make(chan *entity.Player, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := kumble()
			in.Email = fmt.Sprintf("c%d@b.com", i)
			in.Username = fmt.Sprintf("conc_%d", i)
			in.Phone = fmt.Sprintf("91234567%02d", i)
			p, err := f.uc.Register(context.Background(), in)
			if err != nil {
				errs <- err
				return
			}
			results <- p
		}(i)
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected registration error: %v", err)
	}
	seqs := map[int64]bool{}
	playerIDs := map[string]bool{}
	userIDs := map[string]bool{}
	for p := range results {
		assert.False(t, seqs[p.SequenceNumber], "sequence %d issued twice", p.SequenceNumber)
		assert.False(t, playerIDs[p.PlayerID])
		assert.False(t, userIDs[p.UserID])
		seqs[p.SequenceNumber] = true
		playerIDs[p.PlayerID] = true
		userIDs[p.UserID] = true
	}
	assert.Len(t, seqs, n)
	for i := int64(1); i <= n; i++ {
		assert.True(t, seqs[i], "sequence %d missing", i)
	}
}

func TestRegister_ReportsAllMissingFields(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.Register(context.Background(), usecasecontract.RegisterPlayerInput{FirstName: "Anil"})

	var missing *entity.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{
		"lastName", "dateOfBirth", "gender", "email", "phone", "streetAddress",
		"city", "state", "postalCode", "role", "battingOrderPreference",
		"battingStyle", "username", "password",
	}, missing.Fields)
	assert.Zero(t, f.players.count())
	assert.Zero(t, f.metrics.allocations)
	assert.Equal(t, 1, f.metrics.outcomes[usecase.OutcomeMissingFields])
}

func TestRegister_ReportsAllRuleViolations(t *testing.T) {
	f := newFixture(t, nil)
	in := kumble()
	in.Email = "not-an-email"
	in.PostalCode = "12345"
	in.Role = "Umpire"
	in.Username = "a b"
	in.Password = "123"

	_, err := f.uc.Register(context.Background(), in)

	var invalid *entity.SchemaValidationError
	require.ErrorAs(t, err, &invalid)
	assert.ElementsMatch(t, []string{"email", "postalCode", "role", "username", "password"}, invalid.Fields())
	assert.Zero(t, f.players.count())
}

func TestRegister_FieldRules(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*usecasecontract.RegisterPlayerInput)
		field string
	}{
		{"phone too short", func(in *usecasecontract.RegisterPlayerInput) { in.Phone = "12345" }, "phone"},
		{"phone bad chars", func(in *usecasecontract.RegisterPlayerInput) { in.Phone = "98765x43210" }, "phone"},
		{"gender", func(in *usecasecontract.RegisterPlayerInput) { in.Gender = "unknown" }, "gender"},
		{"batting order", func(in *usecasecontract.RegisterPlayerInput) { in.BattingOrderPreference = "Tail" }, "battingOrderPreference"},
		{"batting style", func(in *usecasecontract.RegisterPlayerInput) { in.BattingStyle = "Ambidextrous" }, "battingStyle"},
		{"bowling style", func(in *usecasecontract.RegisterPlayerInput) { in.BowlingStyle = "Underarm" }, "bowlingStyle"},
		{"bowling arm", func(in *usecasecontract.RegisterPlayerInput) { in.BowlingArm = "Third Arm" }, "bowlingArm"},
		{"username too short", func(in *usecasecontract.RegisterPlayerInput) { in.Username = "ab" }, "username"},
		{"first name too long", func(in *usecasecontract.RegisterPlayerInput) { in.FirstName = strings.Repeat("a", 51) }, "firstName"},
		{"date format", func(in *usecasecontract.RegisterPlayerInput) { in.DateOfBirth = "01/01/2005" }, "dateOfBirth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			in := kumble()
			tc.mod(&in)

			_, err := f.uc.Register(context.Background(), in)

			var invalid *entity.SchemaValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, invalid.Fields(), tc.field)
		})
	}
}

func TestRegister_AgeBoundaries(t *testing.T) {
	// now is 2025-10-04 10:00 UTC
	cases := []struct {
		dob string
		ok  bool
	}{
		{"2015-10-04", true},
		{"2015-10-05", false},
		{"1960-10-04", true},
		{"1959-10-04", false},
		{"2015-10-05T00:00:00+05:30", false},
	}
	for _, tc := range cases {
		t.Run(tc.dob, func(t *testing.T) {
			f := newFixture(t, nil)
			in := kumble()
			in.DateOfBirth = tc.dob

			_, err := f.uc.Register(context.Background(), in)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var invalid *entity.SchemaValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, []string{"dateOfBirth"}, invalid.Fields())
		})
	}
}

func TestRegister_KeepsCalendarDateOfOffsetTimestamp(t *testing.T) {
	f := newFixture(t, nil)
	in := kumble()
	in.DateOfBirth = "2005-01-01T00:00:00+05:30"

	created, err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC), created.DateOfBirth)
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	cases := []struct {
		field string
		mod   func(*usecasecontract.RegisterPlayerInput)
	}{
		{"email", func(in *usecasecontract.RegisterPlayerInput) { in.Username = "other"; in.Phone = "9000000000" }},
		{"username", func(in *usecasecontract.RegisterPlayerInput) { in.Email = "other@b.com"; in.Phone = "9000000000" }},
		{"phone", func(in *usecasecontract.RegisterPlayerInput) { in.Email = "other@b.com"; in.Username = "other" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			f := newFixture(t, nil)
			original, err := f.uc.Register(context.Background(), kumble())
			require.NoError(t, err)

			second := kumble()
			second.FirstName = "Someone"
			tc.mod(&second)
			_, err = f.uc.Register(context.Background(), second)

			var dup *entity.DuplicateKeyError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tc.field, dup.Field)

			stored, err := f.uc.GetPlayer(context.Background(), original.PlayerID)
			require.NoError(t, err)
			assert.Equal(t, "Anil", stored.FirstName)
			assert.Equal(t, 1, f.players.count())
			assert.Equal(t, 1, f.metrics.outcomes[usecase.OutcomeDuplicate])
		})
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)

	second := kumble()
	second.Email = "A@B.com"
	second.Username = "other"
	second.Phone = "9000000000"
	_, err = f.uc.Register(context.Background(), second)

	var dup *entity.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}

func TestRegister_SequenceFailureYieldsNoIdentifier(t *testing.T) {
	f := newFixture(t, nil)
	f.sequences.err = errors.New("connection refused")

	p, err := f.uc.Register(context.Background(), kumble())

	assert.Nil(t, p)
	var genErr *entity.IDGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Zero(t, f.players.count())
	assert.Zero(t, f.metrics.allocations)
	assert.Equal(t, 1, f.metrics.outcomes[usecase.OutcomeError])
}

func TestRegister_StorageFailureConsumesSequence(t *testing.T) {
	f := newFixture(t, nil)
	f.players.createErr = fmt.Errorf("insert player: %w", entity.ErrStorageUnavailable)

	_, err := f.uc.Register(context.Background(), kumble())
	require.ErrorIs(t, err, entity.ErrStorageUnavailable)

	f.players.createErr = nil
	p, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.SequenceNumber)
	assert.Equal(t, "IDSC0204102025", p.PlayerID)
}

func TestRegister_UserIDRetriesOnCollision(t *testing.T) {
	random := &scriptedRandom{tokens: []string{"AAAAAA", "BBBBBB"}}
	f := newFixture(t, random)
	stamp := strings.ToUpper(strconv.FormatInt(f.clock.Now().UnixMilli(), 36))
	f.players.usedIDs["USR"+stamp+"AAAAAA"] = true

	p, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)

	assert.Equal(t, "USR"+stamp+"BBBBBB", p.UserID)
	assert.Equal(t, 2, random.calls)
}

func TestRegister_UserIDExhaustion(t *testing.T) {
	random := &scriptedRandom{tokens: []string{"AAAAAA"}}
	f := newFixture(t, random)
	stamp := strings.ToUpper(strconv.FormatInt(f.clock.Now().UnixMilli(), 36))
	f.players.usedIDs["USR"+stamp+"AAAAAA"] = true

	_, err := f.uc.Register(context.Background(), kumble())

	var genErr *entity.IDGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, usecase.DefaultUserIDMaxAttempts, random.calls)
	assert.Zero(t, f.players.count())
}

func TestGetPlayer_RoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	created, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)

	for _, id := range []string{created.PlayerID, strings.ToLower(created.PlayerID), created.UserID, created.ID, created.Username} {
		got, err := f.uc.GetPlayer(context.Background(), id)
		require.NoError(t, err, id)
		assert.Equal(t, created.PlayerID, got.PlayerID)
		assert.Equal(t, created.UserID, got.UserID)
		assert.Equal(t, created.SequenceNumber, got.SequenceNumber)
		assert.Equal(t, created.Email, got.Email)
		assert.Equal(t, created.DateOfBirth, got.DateOfBirth)
	}

	_, err = f.uc.GetPlayer(context.Background(), "IDSC9904102025")
	assert.ErrorIs(t, err, entity.ErrPlayerNotFound)
	_, err = f.uc.GetPlayer(context.Background(), "  ")
	assert.ErrorIs(t, err, entity.ErrPlayerNotFound)
}

func TestListPlayers_ClampsPaging(t *testing.T) {
	f := newFixture(t, nil)
	for i := 0; i < 3; i++ {
		in := kumble()
		in.Email = fmt.Sprintf("l%d@b.com", i)
		in.Username = fmt.Sprintf("list_%d", i)
		in.Phone = fmt.Sprintf("93333333%02d", i)
		_, err := f.uc.Register(context.Background(), in)
		require.NoError(t, err)
	}

	players, total, err := f.uc.ListPlayers(context.Background(), entity.PlayerFilter{Page: 0, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, players, 3)
	assert.Equal(t, int64(3), players[0].SequenceNumber)

	players, _, err = f.uc.ListPlayers(context.Background(), entity.PlayerFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, int64(1), players[0].SequenceNumber)
}

func TestPreviewSequence_DoesNotAllocate(t *testing.T) {
	f := newFixture(t, nil)

	preview, err := f.uc.PreviewSequence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), preview.CurrentSequence)
	assert.Equal(t, "IDSC0104102025", preview.NextPlayerID)

	again, err := f.uc.PreviewSequence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, preview, again)

	p, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)
	assert.Equal(t, preview.NextPlayerID, p.PlayerID)
}

func TestGetStats_UsesCache(t *testing.T) {
	f := newFixture(t, nil)
	cache := &memoryStatsCache{}
	f.uc.SetStatsCache(cache)

	stats, err := f.uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalPlayers)

	_, err = f.uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	_, err = f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	stats, err = f.uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPlayers)
}

func TestGetStats_CacheErrorFallsBack(t *testing.T) {
	f := newFixture(t, nil)
	f.uc.SetStatsCache(&memoryStatsCache{getErr: errors.New("redis down")})

	stats, err := f.uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalPlayers)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, nil)
	created, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)

	for _, identifier := range []string{"anilk", "A@B.COM", created.PlayerID, created.UserID} {
		p, token, err := f.uc.Login(context.Background(), identifier, "secret1")
		require.NoError(t, err, identifier)
		assert.Equal(t, created.ID, p.ID)
		require.NotNil(t, p.LastLogin)

		claims, err := f.jwt.ParseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.PlayerKey)
		assert.Equal(t, created.PlayerID, claims.Subject)
	}
	assert.Equal(t, 4, f.players.logins)

	stored, err := f.uc.GetPlayer(context.Background(), created.PlayerID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.LoginCount)
	assert.Equal(t, created.PlayerID, stored.PlayerID)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t, nil)
	created, err := f.uc.Register(context.Background(), kumble())
	require.NoError(t, err)

	_, _, err = f.uc.Login(context.Background(), "anilk", "wrong-password")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, _, err = f.uc.Login(context.Background(), "nobody", "secret1")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	f.players.mu.Lock()
	f.players.players[created.ID].Status = entity.StatusSuspended
	f.players.mu.Unlock()
	_, _, err = f.uc.Login(context.Background(), "anilk", "secret1")
	assert.ErrorIs(t, err, entity.ErrAccountNotActive)
	assert.Zero(t, f.players.logins)
}
