package prize

import (
	"fmt"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

type Table struct {
	tiers   []domain.PrizeTier
	total   int64
	jackpot domain.PrizeTier
}

// New validates tiers and keeps them in the given order. The tier with the highest
// reward is the jackpot and must pay at least threshold.
func New(tiers []domain.PrizeTier, threshold int64) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: prize table is empty", domain.ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(tiers))
	var total int64
	jackpot := tiers[0]
	for _, tier := range tiers {
		if tier.Name == "" {
			return nil, fmt.Errorf("%w: prize tier without a name", domain.ErrConfiguration)
		}
		if _, ok := seen[tier.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate prize tier %q", domain.ErrConfiguration, tier.Name)
		}
		seen[tier.Name] = struct{}{}
		if tier.Weight <= 0 {
			return nil, fmt.Errorf("%w: tier %q has non-positive weight %d", domain.ErrConfiguration, tier.Name, tier.Weight)
		}
		if tier.Reward < 0 {
			return nil, fmt.Errorf("%w: tier %q has negative reward %d", domain.ErrConfiguration, tier.Name, tier.Reward)
		}
		total += tier.Weight
		if tier.Reward > jackpot.Reward {
			jackpot = tier
		}
	}
	if jackpot.Reward < threshold {
		return nil, fmt.Errorf("%w: no tier pays the jackpot threshold %d", domain.ErrConfiguration, threshold)
	}

	own := make([]domain.PrizeTier, len(tiers))
	copy(own, tiers)
	return &Table{tiers: own, total: total, jackpot: jackpot}, nil
}

// DrawWeighted picks r uniformly in [0, W) and walks tiers in order until r falls
// inside a tier's weight.
func DrawWeighted(tiers []domain.PrizeTier, src RandomSource) (domain.PrizeTier, error) {
	if len(tiers) == 0 {
		return domain.PrizeTier{}, fmt.Errorf("%w: prize table is empty", domain.ErrConfiguration)
	}
	var total int64
	for _, tier := range tiers {
		if tier.Weight < 0 {
			return domain.PrizeTier{}, fmt.Errorf("%w: tier %q has negative weight", domain.ErrConfiguration, tier.Name)
		}
		total += tier.Weight
	}
	if total == 0 {
		return domain.PrizeTier{}, fmt.Errorf("%w: prize table has zero total weight", domain.ErrConfiguration)
	}

	r := int64(src.Float64() * float64(total))
	if r >= total {
		r = total - 1
	}
	if r < 0 {
		r = 0
	}
	for _, tier := range tiers {
		if r < tier.Weight {
			return tier, nil
		}
		r -= tier.Weight
	}
	return domain.PrizeTier{}, fmt.Errorf("%w: weighted draw fell outside the table", domain.ErrConfiguration)
}

func (t *Table) Draw(src RandomSource) (domain.PrizeTier, error) {
	return DrawWeighted(t.tiers, src)
}

func (t *Table) Jackpot() domain.PrizeTier {
	return t.jackpot
}

func (t *Table) TotalWeight() int64 {
	return t.total
}

func (t *Table) Tiers() []domain.PrizeTier {
	out := make([]domain.PrizeTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Odds reports the per-draw probability of every tier, ignoring the pity timer.
func (t *Table) Odds() []domain.TierOdds {
	odds := make([]domain.TierOdds, 0, len(t.tiers))
	for _, tier := range t.tiers {
		odds = append(odds, domain.TierOdds{
			Name:        tier.Name,
			Reward:      tier.Reward,
			Probability: float64(tier.Weight) / float64(t.total),
		})
	}
	return odds
}
