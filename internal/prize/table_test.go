package prize

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func seeded(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestDrawWeighted(t *testing.T) {
	tiers := []domain.PrizeTier{
		{Name: "a", Reward: 0, Weight: 1},
		{Name: "b", Reward: 10, Weight: 3},
	}

	tests := []struct {
		name     string
		tiers    []domain.PrizeTier
		value    float64
		expected string
		err      error
	}{
		{name: "lower edge picks first tier", tiers: tiers, value: 0, expected: "a"},
		{name: "inside first weight", tiers: tiers, value: 0.24, expected: "a"},
		{name: "boundary moves to next tier", tiers: tiers, value: 0.25, expected: "b"},
		{name: "upper edge picks last tier", tiers: tiers, value: 0.999999, expected: "b"},
		{name: "out of range value is clamped", tiers: tiers, value: 1, expected: "b"},
		{name: "empty table", tiers: nil, value: 0.5, err: domain.ErrConfiguration},
		{name: "zero total weight", tiers: []domain.PrizeTier{{Name: "a", Weight: 0}, {Name: "b", Weight: 0}}, value: 0.5, err: domain.ErrConfiguration},
		{name: "negative weight", tiers: []domain.PrizeTier{{Name: "a", Weight: -1}, {Name: "b", Weight: 2}}, value: 0.5, err: domain.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DrawWeighted(tt.tiers, fixedSource(tt.value))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Name)
		})
	}
}

func TestDrawWeighted_Distribution(t *testing.T) {
	tiers := []domain.PrizeTier{
		{Name: "one", Weight: 1},
		{Name: "three", Weight: 3},
	}
	src := seeded(42)

	const trials = 100_000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		tier, err := DrawWeighted(tiers, src)
		require.NoError(t, err)
		counts[tier.Name]++
	}

	assert.InDelta(t, 0.25, float64(counts["one"])/trials, 0.01)
	assert.InDelta(t, 0.75, float64(counts["three"])/trials, 0.01)
}

func TestDrawWeighted_Reproducible(t *testing.T) {
	table, err := Default(880000)
	require.NoError(t, err)

	first, second := seeded(7), seeded(7)
	for i := 0; i < 1000; i++ {
		a, err := table.Draw(first)
		require.NoError(t, err)
		b, err := table.Draw(second)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		tiers     []domain.PrizeTier
		threshold int64
		err       bool
	}{
		{name: "valid", tiers: []domain.PrizeTier{{Name: "none", Weight: 9}, {Name: "big", Reward: 880000, Weight: 1}}, threshold: 880000},
		{name: "empty", tiers: nil, threshold: 1, err: true},
		{name: "zero weight", tiers: []domain.PrizeTier{{Name: "big", Reward: 880000, Weight: 0}}, threshold: 880000, err: true},
		{name: "negative reward", tiers: []domain.PrizeTier{{Name: "x", Reward: -1, Weight: 1}, {Name: "big", Reward: 880000, Weight: 1}}, threshold: 880000, err: true},
		{name: "duplicate names", tiers: []domain.PrizeTier{{Name: "big", Reward: 880000, Weight: 1}, {Name: "big", Weight: 1}}, threshold: 880000, err: true},
		{name: "missing name", tiers: []domain.PrizeTier{{Reward: 880000, Weight: 1}}, threshold: 880000, err: true},
		{name: "no jackpot tier", tiers: []domain.PrizeTier{{Name: "small", Reward: 100, Weight: 1}}, threshold: 880000, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New(tt.tiers, tt.threshold)
			if tt.err {
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				assert.Nil(t, table)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, table)
		})
	}
}

func TestTable_Accessors(t *testing.T) {
	tiers := []domain.PrizeTier{
		{Name: "none", Reward: 0, Weight: 3},
		{Name: "jackpot", Reward: 880000, Weight: 1},
		{Name: "small", Reward: 5, Weight: 4},
	}
	table, err := New(tiers, 880000)
	require.NoError(t, err)

	assert.Equal(t, "jackpot", table.Jackpot().Name)
	assert.Equal(t, int64(8), table.TotalWeight())

	copied := table.Tiers()
	copied[0].Name = "changed"
	assert.Equal(t, "none", table.Tiers()[0].Name)

	odds := table.Odds()
	require.Len(t, odds, 3)
	assert.InDelta(t, 0.375, odds[0].Probability, 1e-9)
	assert.InDelta(t, 0.125, odds[1].Probability, 1e-9)
	assert.InDelta(t, 0.5, odds[2].Probability, 1e-9)
}
