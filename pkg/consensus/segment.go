package consensus

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	log "github.com/helinwang/log15"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

const segmentCacheSize = 1024

// Checkpoint is a previously trusted chain position. Validation that
// starts from a checkpoint verifies the stored block there still
// carries the trusted hash, then skips re-validating anything at or
// below it.
type Checkpoint struct {
	Index uint64
	Hash  core.Hash
}

// SegmentService reconstructs ordered block sequences from storage and
// replays consensus over them. It operates only on already-accepted
// blocks.
type SegmentService struct {
	store  Reader
	engine *Engine
	cache  *lru.Cache
	log    log.Logger
}

// NewSegmentService creates a segment service sharing the engine's
// read capability.
func NewSegmentService(store Reader, engine *Engine) *SegmentService {
	cache, err := lru.New(segmentCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}

	return &SegmentService{
		store:  store,
		engine: engine,
		cache:  cache,
		log:    log.New("module", "segment"),
	}
}

// Blocks returns the blocks with indices in [from, to], in order,
// optionally filtered by type. The range is truncated at the chain
// tip.
func (s *SegmentService) Blocks(from, to uint64, typ *core.BlockType) ([]core.Block, error) {
	var out []core.Block
	for i := from; i <= to; i++ {
		b, err := s.store.BlockByIndex(i)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load block %d: %w", i, err)
		}

		if typ != nil && b.Type() != *typ {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// BlockByHash returns the block with the given hash.
func (s *SegmentService) BlockByHash(h core.Hash) (core.Block, error) {
	if b, ok := s.cache.Get(h); ok {
		return b.(core.Block), nil
	}

	b, err := s.store.BlockByHash(h)
	if err != nil {
		return nil, err
	}

	s.cache.Add(h, b)
	return b, nil
}

// BlockByIndex returns the block at the given index.
func (s *SegmentService) BlockByIndex(i uint64) (core.Block, error) {
	return s.store.BlockByIndex(i)
}

// Latest returns the highest block, or the highest block of the given
// type when typ is non-nil.
func (s *SegmentService) Latest(typ *core.BlockType) (core.Block, error) {
	return s.store.LatestBlock(typ)
}

// ValidateRange replays full consensus validation over every stored
// block with index in [from, to]. The range is truncated at the chain
// tip; a gap before the tip is a broken segment.
func (s *SegmentService) ValidateRange(from, to uint64) error {
	for i := from; i <= to; i++ {
		b, err := s.store.BlockByIndex(i)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load block %d: %w", i, err)
		}

		if err := s.engine.ValidateBlock(b); err != nil {
			s.log.Warn("segment validation failed", "index", i, "err", err)
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

// ValidateFromCheckpoint verifies that storage still agrees with the
// trusted checkpoint, then validates only the blocks after it, up to
// and including to.
func (s *SegmentService) ValidateFromCheckpoint(cp Checkpoint, to uint64) error {
	b, err := s.store.BlockByIndex(cp.Index)
	if err != nil {
		return fmt.Errorf("load checkpoint block %d: %w", cp.Index, err)
	}
	if b.Header().BlockHash != cp.Hash {
		return fmt.Errorf("checkpoint %d: %w", cp.Index, ErrBrokenLinkage)
	}

	if to <= cp.Index {
		return nil
	}
	return s.ValidateRange(cp.Index+1, to)
}
