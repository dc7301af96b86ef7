package consensus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwillis775/PoRW-sub000/pkg/consensus"
	"github.com/mwillis775/PoRW-sub000/pkg/core"
	"github.com/mwillis775/PoRW-sub000/pkg/storage"
)

// countingReader counts BlockByHash hits against the backing store.
type countingReader struct {
	*storage.MemoryStore
	byHashCalls int
}

func (c *countingReader) BlockByHash(h core.Hash) (core.Block, error) {
	c.byHashCalls++
	return c.MemoryStore.BlockByHash(h)
}

func TestSegmentBlocks(t *testing.T) {
	store := storage.NewMemoryStore()
	e := newTestEngine(store)
	chain := buildChain(t, store, e)
	s := consensus.NewSegmentService(store, e)

	got, err := s.Blocks(0, 2, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, b := range got {
		assert.Equal(t, chain[i].Header().BlockHash, b.Header().BlockHash)
	}

	// range beyond the tip truncates rather than erroring
	got, err = s.Blocks(1, 100, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].Header().Index)
	assert.Equal(t, uint64(2), got[1].Header().Index)

	// filters by block type
	porw := core.PoRW
	got, err = s.Blocks(0, 2, &porw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, b := range got {
		assert.Equal(t, core.PoRW, b.Type())
	}

	pors := core.PoRS
	got, err = s.Blocks(0, 2, &pors)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].Header().Index)

	got, err = s.Blocks(5, 9, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSegmentBlockByHashCaches(t *testing.T) {
	store := storage.NewMemoryStore()
	e := newTestEngine(store)
	chain := buildChain(t, store, e)

	counting := &countingReader{MemoryStore: store}
	s := consensus.NewSegmentService(counting, e)

	h := chain[1].Header().BlockHash
	for i := 0; i < 3; i++ {
		b, err := s.BlockByHash(h)
		require.NoError(t, err)
		assert.Equal(t, h, b.Header().BlockHash)
	}
	// only the first lookup reaches storage
	assert.Equal(t, 1, counting.byHashCalls)

	_, err := s.BlockByHash(core.Hash{0xde, 0xad})
	assert.ErrorIs(t, err, consensus.ErrNotFound)
}

func TestSegmentLatest(t *testing.T) {
	store := storage.NewMemoryStore()
	e := newTestEngine(store)
	chain := buildChain(t, store, e)
	s := consensus.NewSegmentService(store, e)

	tip, err := s.Latest(nil)
	require.NoError(t, err)
	assert.Equal(t, chain[2].Header().BlockHash, tip.Header().BlockHash)

	pors := core.PoRS
	b, err := s.Latest(&pors)
	require.NoError(t, err)
	assert.Equal(t, chain[1].Header().BlockHash, b.Header().BlockHash)
}

func TestSegmentValidateRange(t *testing.T) {
	store := storage.NewMemoryStore()
	e := newTestEngine(store)
	buildChain(t, store, e)
	s := consensus.NewSegmentService(store, e)

	assert.NoError(t, s.ValidateRange(0, 2))
	// past the tip: nothing more to check
	assert.NoError(t, s.ValidateRange(0, 100))
}

func TestSegmentValidateRangeDetectsBadBlock(t *testing.T) {
	store := storage.NewMemoryStore()
	e := newTestEngine(store)
	cfg := consensus.DefaultConfig()
	chain := buildChain(t, store, e)
	s := consensus.NewSegmentService(store, e)

	// append a block whose declared reward was inflated; storage does
	// not validate, replay must catch it
	bad := newPoRW(cfg, store, 3, testNow-100, chain[2].Header().BlockHash)
	bad.MintedAmount *= 1.5
	bad.Seal()
	require.NoError(t, store.Append(bad))

	assert.ErrorIs(t, s.ValidateRange(0, 3), consensus.ErrRewardMismatch)
	// the prefix before the bad block is still sound
	assert.NoError(t, s.ValidateRange(0, 2))
}

func TestSegmentValidateFromCheckpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	e := newTestEngine(store)
	chain := buildChain(t, store, e)
	s := consensus.NewSegmentService(store, e)

	cp := consensus.Checkpoint{Index: 1, Hash: chain[1].Header().BlockHash}
	assert.NoError(t, s.ValidateFromCheckpoint(cp, 2))

	// target at or below the checkpoint needs no replay
	assert.NoError(t, s.ValidateFromCheckpoint(cp, 1))
	assert.NoError(t, s.ValidateFromCheckpoint(cp, 0))

	// storage no longer carries the trusted hash at the checkpoint
	forged := consensus.Checkpoint{Index: 1, Hash: core.Hash{0xff}}
	assert.ErrorIs(t, s.ValidateFromCheckpoint(forged, 2), consensus.ErrBrokenLinkage)

	// checkpoint beyond the tip cannot be verified
	missing := consensus.Checkpoint{Index: 50, Hash: core.Hash{1}}
	assert.Error(t, s.ValidateFromCheckpoint(missing, 60))
}
