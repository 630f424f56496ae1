package contract

import "time"

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
}

type IUUIDGenerator interface {
	NewUUID() string
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
	// GenerateRandomString returns length characters drawn from alphabet.
	GenerateRandomString(length int, alphabet string) (string, error)
}

// IClock provides the current time and can be replaced in tests.
type IClock interface {
	Now() time.Time
}
