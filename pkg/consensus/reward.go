package consensus

import "math"

// CalculatePoRWReward computes the minting reward for a PoRW block
// mined timeSince seconds after the previous one, against the current
// total supply.
//
// The reward targets AnnualInflationRate of the supply per year: the
// base issuance is scaled by a smooth time adjustment that equals 1 at
// the target cadence, raised to the pro-rated inflation increment when
// the supply is large enough for that to dominate, and finally clamped
// to [MinRewardFactor, MaxRewardFactor] of the base reward. The
// elapsed time is capped first, so a long network outage cannot mint
// an outsized block.
func CalculatePoRWReward(cfg Config, timeSince, totalSupply float64) float64 {
	dt := timeSince
	if dt <= 0 {
		// first PoRW block after genesis
		dt = cfg.TargetBlockInterval
	}
	if dt > cfg.MaxRewardInterval {
		dt = cfg.MaxRewardInterval
	}

	yearFraction := dt / SecondsPerYear
	increment := totalSupply * cfg.AnnualInflationRate * yearFraction

	adjustment := math.Sqrt(dt / cfg.TargetBlockInterval)
	reward := cfg.BaseReward * adjustment
	if increment > reward {
		reward = increment
	}

	min := cfg.BaseReward * cfg.MinRewardFactor
	max := cfg.BaseReward * cfg.MaxRewardFactor
	if reward < min {
		return min
	}
	if reward > max {
		return max
	}
	return reward
}
