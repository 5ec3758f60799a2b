package prize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

type file struct {
	Tiers []domain.PrizeTier `yaml:"tiers"`
}

var defaultTiers = []domain.PrizeTier{
	{Name: "no prize", Reward: 0, Weight: 6000},
	{Name: "half back", Reward: 5, Weight: 2400},
	{Name: "free scratch", Reward: 10, Weight: 1100},
	{Name: "double", Reward: 20, Weight: 400},
	{Name: "lucky hundred", Reward: 100, Weight: 99},
	{Name: "jackpot", Reward: 880000, Weight: 1},
}

// Default returns the built-in table.
func Default(threshold int64) (*Table, error) {
	return New(defaultTiers, threshold)
}

// LoadFile reads a YAML prize table. An empty path yields the built-in table.
func LoadFile(path string, threshold int64) (*Table, error) {
	if path == "" {
		return Default(threshold)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read prize table: %w", domain.ErrConfiguration, err)
	}
	return Parse(data, threshold)
}

func Parse(data []byte, threshold int64) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse prize table: %w", domain.ErrConfiguration, err)
	}
	return New(f.Tiers, threshold)
}
