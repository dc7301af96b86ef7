package consensus

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// ResolveFork selects among competing candidate blocks at the same
// height. Candidates that fail consensus validation are discarded; if
// more than one survives, each is scored by the chain it would extend
// and the highest score wins. Ties break on the earliest timestamp,
// then on the smallest hash, so the selection is deterministic
// regardless of input order.
func (e *Engine) ResolveFork(candidates []core.Block) (core.Block, error) {
	var valid []core.Block
	for _, c := range candidates {
		if err := e.ValidateBlock(c); err != nil {
			e.log.Debug("fork candidate discarded", "hash", c.Header().BlockHash, "reason", err)
			continue
		}
		valid = append(valid, c)
	}

	switch len(valid) {
	case 0:
		return nil, ErrNoValidCandidate
	case 1:
		return valid[0], nil
	}

	var best core.Block
	bestScore := 0.0
	for _, c := range valid {
		score, err := e.chainScore(c)
		if err != nil {
			return nil, err
		}

		if best == nil || score > bestScore || (score == bestScore && earlier(c, best)) {
			best = c
			bestScore = score
		}
	}
	return best, nil
}

// chainScore weighs the chain ending in b: its length, the cumulative
// PoRW difficulty, and the cumulative PoRS quorum size.
func (e *Engine) chainScore(b core.Block) (float64, error) {
	length := 0.0
	work := 0.0
	quorum := 0.0

	cur := b
	for {
		length++
		switch cb := cur.(type) {
		case *core.PoRWBlock:
			work += cb.Proof.Difficulty
		case *core.PoRSBlock:
			quorum += float64(len(cb.Proof.Participants))
		}

		if cur.Header().Index == 0 {
			break
		}

		prev, err := e.store.BlockByHash(cur.Header().PrevHash)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("load ancestor %v: %w", cur.Header().PrevHash, err)
		}
		cur = prev
	}

	return e.cfg.WeightLength*length + e.cfg.WeightWork*work + e.cfg.WeightQuorum*quorum, nil
}

func earlier(a, b core.Block) bool {
	ah, bh := a.Header(), b.Header()
	if ah.Timestamp != bh.Timestamp {
		return ah.Timestamp < bh.Timestamp
	}
	return bytes.Compare(ah.BlockHash[:], bh.BlockHash[:]) < 0
}
