package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return v.String(), nil
}

// PrefixedGenerator wraps another generator and prepends a fixed prefix, e.g. "team_".
type PrefixedGenerator struct {
	Prefix string
	Next   Generator
}

func (g PrefixedGenerator) NewID() (string, error) {
	next := g.Next
	if next == nil {
		next = NewUUIDGenerator()
	}
	v, err := next.NewID()
	if err != nil {
		return "", err
	}
	return g.Prefix + v, nil
}
