package consensus

import (
	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

const (
	standardFeeRate = 0.001
	minStandardFee  = 0.01
	maxStandardFee  = 10.0
	// minFeeRatio is the fraction of the standard fee an explicit
	// fee must reach.
	minFeeRatio = 0.5

	// amountTolerance absorbs float drift when comparing amounts.
	amountTolerance = 1e-9
)

// StandardFee returns the fee schedule for a transfer amount:
// 0.1% of the amount, clamped to [0.01, 10.0].
func StandardFee(amount float64) float64 {
	fee := amount * standardFeeRate
	if fee < minStandardFee {
		return minStandardFee
	}
	if fee > maxStandardFee {
		return maxStandardFee
	}
	return fee
}

// EffectiveFee returns the transaction's explicit fee, or the standard
// fee when none is set.
func EffectiveFee(txn *core.Txn) float64 {
	if txn.Fee != nil {
		return *txn.Fee
	}
	return StandardFee(txn.Amount)
}

// FeeDistribution computes who is owed what from a PoRS block's fees.
// The creator takes CreatorFeePct of the pool; the remainder is split
// evenly across the proof's participant list. With no participants the
// remainder also goes to the creator.
//
// The result is compared against the block's declared StorageRewards;
// it is never applied directly.
func FeeDistribution(b *core.PoRSBlock) map[core.Addr]float64 {
	total := 0.0
	for _, txn := range b.Txns {
		total += EffectiveFee(txn)
	}

	out := make(map[core.Addr]float64)
	if total == 0 {
		return out
	}

	pct := b.CreatorFeePct
	creatorCut := total * pct
	remainder := total - creatorCut

	out[b.Creator] += creatorCut
	if len(b.Proof.Participants) == 0 {
		out[b.Creator] += remainder
		return out
	}

	share := remainder / float64(len(b.Proof.Participants))
	for _, p := range b.Proof.Participants {
		out[p] += share
	}
	return out
}
