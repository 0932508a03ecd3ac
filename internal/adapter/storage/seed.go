// Package storage provides the inventory store adapters: an in-memory
// store (the default) and a Redis-backed one for sharing state between hub
// replicas. Both are seeded once from a JSON file and are volatile beyond
// that seed.
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/b-it-bots/datahub/internal/core/domain"
)

// Seed is the parsed seed file. Items is a pointer so a file without the
// inventoryItems key is distinguishable from one with an empty array: the
// former leaves the store uninitialized.
type Seed struct {
	Items  *[]domain.InventoryItem `json:"inventoryItems"`
	Orders []domain.Order          `json:"orders"`
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}
	return &seed, nil
}
