package consensus

import (
	"math"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// CalculateDifficulty retargets the PoRW difficulty from the cadence
// of the recent PoRW blocks, given newest first. With fewer than two
// blocks there is no cadence yet and the initial difficulty applies.
//
// The retarget is current * sqrt(target/avg), bounded per period by
// MaxDifficultySwing and globally by [MinDifficulty, MaxDifficulty].
func CalculateDifficulty(cfg Config, recent []*core.PoRWBlock, current float64) float64 {
	if len(recent) < 2 {
		return cfg.InitialDifficulty
	}

	if current <= 0 {
		current = cfg.InitialDifficulty
	}

	total := 0.0
	n := 0
	for i := 0; i+1 < len(recent); i++ {
		dt := recent[i].Head.Timestamp - recent[i+1].Head.Timestamp
		if dt > 0 {
			total += dt
			n++
		}
	}
	if n == 0 {
		return clampDifficulty(cfg, current)
	}

	avg := total / float64(n)
	next := current * math.Sqrt(cfg.TargetBlockInterval/avg)

	lo := current / (1 + cfg.MaxDifficultySwing)
	hi := current * (1 + cfg.MaxDifficultySwing)
	if next < lo {
		next = lo
	}
	if next > hi {
		next = hi
	}
	return clampDifficulty(cfg, next)
}

func clampDifficulty(cfg Config, d float64) float64 {
	if d < cfg.MinDifficulty {
		return cfg.MinDifficulty
	}
	if d > cfg.MaxDifficulty {
		return cfg.MaxDifficulty
	}
	return d
}

// CurrentDifficulty computes the difficulty the next PoRW block must
// be mined at, from the chain tip.
func (e *Engine) CurrentDifficulty() (float64, error) {
	recent, err := e.store.RecentBlocks(core.PoRW, e.cfg.DifficultyWindow)
	if err != nil {
		return 0, err
	}

	return CalculateDifficulty(e.cfg, porwBlocks(recent), currentDifficulty(e.cfg, recent)), nil
}

// currentDifficulty is the difficulty the chain is at: the declared
// difficulty of the newest PoRW block, or the initial difficulty.
func currentDifficulty(cfg Config, recent []core.Block) float64 {
	if len(recent) == 0 {
		return cfg.InitialDifficulty
	}

	b, ok := recent[0].(*core.PoRWBlock)
	if !ok {
		return cfg.InitialDifficulty
	}
	return b.Proof.Difficulty
}

func porwBlocks(blocks []core.Block) []*core.PoRWBlock {
	out := make([]*core.PoRWBlock, 0, len(blocks))
	for _, b := range blocks {
		if pb, ok := b.(*core.PoRWBlock); ok {
			out = append(out, pb)
		}
	}
	return out
}
