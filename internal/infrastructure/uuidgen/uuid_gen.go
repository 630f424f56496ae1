package uuidgen

import (
	"github.com/google/uuid"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
)

// Generator produces internal player keys.
type Generator struct{}

// NewGenerator creates a new UUID generator.
func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID returns a random (v4) UUID string.
func (g *Generator) NewUUID() string {
	return uuid.NewString()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
