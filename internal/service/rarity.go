package service

// Rarity tiers, ordered common < rare < epic < legendary.
const (
	TierCommon    = "common"
	TierRare      = "rare"
	TierEpic      = "epic"
	TierLegendary = "legendary"
)

// RarityThresholds are the ascending price cutoffs for the tiers above
// common. They come from configuration; the defaults mirror the catalog's
// historical 500k/1M/2M split.
type RarityThresholds struct {
	Rare      float64
	Epic      float64
	Legendary float64
}

// RarityTier assigns a tier from the property's price. The function is pure
// and monotonic: a higher price never maps to a lower tier, so tightening a
// rarity filter can only shrink a result set.
func RarityTier(price float64, th RarityThresholds) string {
	switch {
	case price >= th.Legendary:
		return TierLegendary
	case price >= th.Epic:
		return TierEpic
	case price >= th.Rare:
		return TierRare
	default:
		return TierCommon
	}
}
