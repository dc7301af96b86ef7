package consensus

import (
	"errors"
	"fmt"
	"time"

	log "github.com/helinwang/log15"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// Engine is the consensus orchestrator: the single entry point through
// which the rest of the node accepts or rejects blocks. It holds only
// read capabilities; appending an accepted block is the caller's job,
// so concurrent validations share no mutable state and competing
// blocks at one height are reconciled by ResolveFork, not here.
type Engine struct {
	cfg          Config
	store        Reader
	eval         Evaluator
	verifier     Verifier
	confidential ConfidentialVerifier
	now          func() float64
	log          log.Logger
}

// NewEngine creates an engine over the given read capability and
// external judges.
func NewEngine(cfg Config, store Reader, eval Evaluator, verifier Verifier) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		eval:     eval,
		verifier: verifier,
		now:      unixNow,
		log:      log.New("module", "consensus"),
	}
}

// WithConfidentialVerifier sets the verifier invoked for transactions
// marked confidential. Without one, confidential transactions are
// rejected.
func (e *Engine) WithConfidentialVerifier(v ConfidentialVerifier) *Engine {
	e.confidential = v
	return e
}

// WithClock overrides the wall clock used by the timestamp gate.
func (e *Engine) WithClock(now func() float64) *Engine {
	e.now = now
	return e
}

func unixNow() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// ValidateBlock decides whether a candidate block is admissible. The
// gates run in a fixed order and the first failure rejects: hash
// integrity, chain linkage, timestamp bounds, then the block-type
// checks. A nil return means accepted; the caller appends. Rejections
// are final, a block is never reconsidered.
func (e *Engine) ValidateBlock(b core.Block) error {
	err := e.validateBlock(b)
	if err != nil {
		e.log.Debug("block rejected", "index", b.Header().Index, "type", b.Type(), "reason", err)
	}
	return err
}

func (e *Engine) validateBlock(b core.Block) error {
	h := b.Header()

	if b.HashOf() != h.BlockHash {
		return fmt.Errorf("index %d: %w", h.Index, ErrHashMismatch)
	}

	prev, err := e.checkLinkage(h)
	if err != nil {
		return err
	}

	if err := e.checkTimestamp(h, prev); err != nil {
		return err
	}

	switch b := b.(type) {
	case *core.PoRWBlock:
		return e.validatePoRWBlock(b)
	case *core.PoRSBlock:
		return e.validatePoRSBlock(b)
	default:
		return fmt.Errorf("%T: %w", b, ErrUnknownBlockType)
	}
}

// checkLinkage returns the previous block for non-genesis heights. At
// index 0 the previous hash must be the zero sentinel and no
// predecessor is looked up.
func (e *Engine) checkLinkage(h *core.BlockHeader) (core.Block, error) {
	if h.Index == 0 {
		if h.PrevHash != core.GenesisPrevHash {
			return nil, ErrBadGenesisPrev
		}
		return nil, nil
	}

	prev, err := e.store.BlockByIndex(h.Index - 1)
	if errors.Is(err, ErrNotFound) {
		// a sync gap, not necessarily malice
		return nil, fmt.Errorf("index %d: %w", h.Index-1, ErrUnknownPrevBlock)
	}
	if err != nil {
		return nil, fmt.Errorf("load previous block: %w", err)
	}

	if prev.Header().BlockHash != h.PrevHash {
		return nil, fmt.Errorf("index %d: %w", h.Index, ErrBrokenLinkage)
	}
	return prev, nil
}

func (e *Engine) checkTimestamp(h *core.BlockHeader, prev core.Block) error {
	if h.Timestamp > e.now()+e.cfg.MaxClockSkew {
		return fmt.Errorf("timestamp %v: %w", h.Timestamp, ErrTimestampFuture)
	}

	if prev != nil && h.Timestamp <= prev.Header().Timestamp {
		return fmt.Errorf("timestamp %v vs previous %v: %w", h.Timestamp, prev.Header().Timestamp, ErrTimestampOrder)
	}
	return nil
}

// validatePoRWBlock runs the PoRW acceptance rules: proof at the
// expected difficulty, minted amount matching the reward owed for the
// elapsed time, and a coherent work-artifact reference.
func (e *Engine) validatePoRWBlock(b *core.PoRWBlock) error {
	if b.ProteinDataRef == "" {
		return fmt.Errorf("protein_data_ref: %w", ErrMalformedProof)
	}

	history, err := e.porwHistoryBefore(b.Head.Index, e.cfg.DifficultyWindow)
	if err != nil {
		return err
	}

	current := e.cfg.InitialDifficulty
	if len(history) > 0 {
		current = history[0].Proof.Difficulty
	}
	expected := CalculateDifficulty(e.cfg, history, current)

	if err := e.ValidatePoRWProof(b, &expected); err != nil {
		return err
	}

	timeSince := 0.0 // triggers the first-block default
	if len(history) > 0 {
		timeSince = b.Head.Timestamp - history[0].Head.Timestamp
	}

	supply, err := e.store.TotalSupply()
	if err != nil {
		return fmt.Errorf("total supply: %w", err)
	}

	want := CalculatePoRWReward(e.cfg, timeSince, supply)
	if !withinRel(b.MintedAmount, want, e.cfg.RewardTolerance) {
		return fmt.Errorf("minted %v, expected %v: %w", b.MintedAmount, want, ErrRewardMismatch)
	}

	return nil
}

// validatePoRSBlock runs the PoRS acceptance rules: quorum proof,
// every carried transaction valid against current balances, and the
// declared storage rewards matching the recomputed fee distribution
// exactly (no unexpected beneficiaries, no missing ones).
func (e *Engine) validatePoRSBlock(b *core.PoRSBlock) error {
	if err := e.ValidatePoRSProof(b); err != nil {
		return err
	}

	for i, txn := range b.Txns {
		if err := e.ValidateTransaction(txn, e.store); err != nil {
			return fmt.Errorf("txn %d: %w", i, err)
		}
	}

	want := FeeDistribution(b)
	for addr := range b.StorageRewards {
		if _, ok := want[addr]; !ok {
			want[addr] = 0
		}
	}
	for addr, amount := range want {
		declared := b.StorageRewards[addr]
		if diff := declared - amount; diff > amountTolerance || diff < -amountTolerance {
			return fmt.Errorf("addr %v declared %v, computed %v: %w", addr, declared, amount, ErrRewardsMismatch)
		}
	}

	return nil
}

// porwHistoryBefore collects up to limit PoRW blocks strictly below
// index, newest first. Validation reads history relative to the
// candidate's height so segment replay sees the same chain the block
// was accepted against.
func (e *Engine) porwHistoryBefore(index uint64, limit int) ([]*core.PoRWBlock, error) {
	var out []*core.PoRWBlock
	for i := index; i > 0 && len(out) < limit; {
		i--
		b, err := e.store.BlockByIndex(i)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load block %d: %w", i, err)
		}

		if pb, ok := b.(*core.PoRWBlock); ok {
			out = append(out, pb)
		}
	}
	return out, nil
}

func withinRel(got, want, tol float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	scale := want
	if scale < 0 {
		scale = -scale
	}
	if scale < 1 {
		scale = 1
	}
	return diff <= tol*scale
}
