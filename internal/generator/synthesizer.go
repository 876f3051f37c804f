package generator

import (
	"time"

	"github.com/vaku568/FinBuddy-AI/internal/category"
	"github.com/vaku568/FinBuddy-AI/internal/models"
	"github.com/vaku568/FinBuddy-AI/internal/utils"
)

// Synthesizer turns one (user, month, category, total) unit into concrete
// transactions. It is stateless apart from the category table; all
// randomness comes from the per-unit stream passed to Synthesize, so units
// can be generated in any order with identical results.
type Synthesizer struct {
	configs []category.Config
	byName  map[string]category.Config
}

// NewSynthesizer loads and validates the category table.
func NewSynthesizer() (*Synthesizer, error) {
	configs, err := category.Load()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]category.Config, len(configs))
	for _, c := range configs {
		byName[c.Name] = c
	}
	return &Synthesizer{configs: configs, byName: byName}, nil
}

// Categories returns the category table in generation order.
func (s *Synthesizer) Categories() []category.Config {
	return s.configs
}

// Synthesize produces the transactions for a single user-month-category
// unit. A non-positive total, or an unknown category, is a no-op returning
// nil. Transaction IDs and month indexes are left for the driver to assign.
func (s *Synthesizer) Synthesize(rng *utils.Random, userID string, year int, month time.Month, categoryName string, total float64, profile models.UserProfile) []models.Transaction {
	cfg, ok := s.byName[categoryName]
	if !ok || total <= 0 {
		return nil
	}

	count := pickCount(rng, cfg, total, profile.Archetype)
	amounts := SplitAmounts(rng, total, count, cfg.DispersionAlpha, cfg.MinAmount, cfg.FlexThreshold)
	if len(amounts) == 0 {
		return nil
	}
	dates := SampleDates(rng, year, month, len(amounts), cfg.DateBias, cfg.SpecificDays)

	display := cfg.DisplayName()
	txs := make([]models.Transaction, len(amounts))
	for i, amount := range amounts {
		merchant := rng.PickString(cfg.Merchants)
		txs[i] = models.Transaction{
			UserID:        userID,
			Date:          dates[i],
			Category:      display,
			Merchant:      merchant,
			Amount:        amount,
			PaymentMethod: pickPayment(rng, cfg.PaymentMethods),
			IsOnline:      rng.Probability(cfg.OnlineProbability),
			Description:   merchant + " - " + display,
		}
	}
	return txs
}

// pickCount chooses the transaction count for a unit. Small totals use a
// reduced range regardless of archetype; otherwise the configured range is
// narrowed by the archetype's spending style, then capped by what the total
// can actually fund at the category floor.
func pickCount(rng *utils.Random, cfg category.Config, total float64, archetype string) int {
	if ModeFor(total, cfg.FlexThreshold) == ModeFlexible {
		upper := cfg.MinCount / 2
		if upper < 1 {
			upper = 1
		}
		return rng.IntRange(1, upper)
	}

	maxFeasible := int(int64(total) / max64(cfg.MinAmount, 1))
	if maxFeasible < 1 {
		maxFeasible = 1
	}
	lo := min(cfg.MinCount, maxFeasible)
	hi := min(cfg.MaxCount, maxFeasible)
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}

	mid := lo + (hi-lo)/2
	switch archetype {
	case models.ArchetypeImpulsiveSpender:
		// Fewer, larger purchases.
		return rng.IntRange(lo, mid)
	case models.ArchetypeMeticulousTracker, models.ArchetypeBalancedPlanner:
		// Many smaller purchases.
		return rng.IntRange(mid, hi)
	default:
		return rng.IntRange(lo, hi)
	}
}

func pickPayment(rng *utils.Random, methods []category.PaymentWeight) string {
	if len(methods) == 0 {
		return ""
	}
	weights := make([]float64, len(methods))
	for i, m := range methods {
		weights[i] = m.Weight
	}
	return methods[rng.WeightedPickFloat(weights)].Method
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
