package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator issues time-ordered identifiers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateCommitID returns a 32-character hex id used as the commit sha of
// an accepted write.
func (g *UUIDGenerator) GenerateCommitID() string {
	return strings.ReplaceAll(g.Generate(), "-", "")
}
