package utils

import "github.com/google/uuid"

// UUIDGenerator produces string identifiers for users, movies and token IDs.
// Time-ordered UUIDv7 values are preferred so that primary keys sort by
// creation time; a random UUIDv4 is used if v7 generation fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
