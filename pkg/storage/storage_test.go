package storage

import (
	"testing"

	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwillis775/PoRW-sub000/pkg/consensus"
	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

type appendStore interface {
	consensus.Reader
	Append(core.Block) error
}

func porwAt(index uint64, ts float64, prev core.Hash) *core.PoRWBlock {
	b := &core.PoRWBlock{
		Head: core.BlockHeader{Index: index, Timestamp: ts, PrevHash: prev},
		Proof: core.PoRWProof{
			ProteinID:     "P01308",
			AminoSequence: "MALW",
			StructureData: []byte{1},
			ResultHash:    "r",
			Difficulty:    1,
		},
		MintedAmount:   50,
		ProteinDataRef: "P01308",
	}
	b.Seal()
	return b
}

func porsAt(index uint64, ts float64, prev core.Hash, txns []*core.Txn) *core.PoRSBlock {
	b := &core.PoRSBlock{
		Head:    core.BlockHeader{Index: index, Timestamp: ts, PrevHash: prev},
		Creator: core.Addr{0xcc},
		Proof: core.PoRSProof{
			QuorumID:      "q",
			Participants:  []core.Addr{{1}, {2}, {3}},
			Result:        "valid",
			ChallengeData: []byte{1},
			Signatures:    map[core.Addr][]byte{},
		},
		CreatorFeePct:  core.DefaultCreatorFeePct,
		Txns:           txns,
		StorageRewards: map[core.Addr]float64{},
	}
	b.Seal()
	return b
}

func testStore(t *testing.T, s appendStore) {
	_, err := s.LatestBlock(nil)
	assert.ErrorIs(t, err, consensus.ErrNotFound)

	genesis := porwAt(0, 1000, core.GenesisPrevHash)
	require.NoError(t, s.Append(genesis))

	fee := 0.5
	txn := &core.Txn{From: core.Addr{0xaa}, To: core.Addr{0xbb}, Amount: 10, Fee: &fee, Timestamp: 1500}
	txn.Seal([]byte{1})
	b1 := porsAt(1, 1600, genesis.Head.BlockHash, []*core.Txn{txn})
	require.NoError(t, s.Append(b1))

	b2 := porwAt(2, 2200, b1.Head.BlockHash)
	require.NoError(t, s.Append(b2))

	// appends must be contiguous
	assert.Error(t, s.Append(porwAt(5, 9000, b2.Head.BlockHash)))

	got, err := s.BlockByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, b1.Head.BlockHash, got.Header().BlockHash)
	assert.Equal(t, core.PoRS, got.Type())

	got, err = s.BlockByHash(b2.Head.BlockHash)
	require.NoError(t, err)
	assert.Equal(t, b2.Head, *got.Header())

	_, err = s.BlockByIndex(9)
	assert.ErrorIs(t, err, consensus.ErrNotFound)

	latest, err := s.LatestBlock(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest.Header().Index)

	pors := core.PoRS
	latest, err = s.LatestBlock(&pors)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), latest.Header().Index)

	recent, err := s.RecentBlocks(core.PoRW, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(2), recent[0].Header().Index)
	assert.Equal(t, uint64(0), recent[1].Header().Index)

	txns, err := s.TransactionsForBlock(b1.Head.BlockHash)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)

	supply, err := s.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, 100.0, supply)

	// txn effects applied on append
	bal, err := s.Balance(core.Addr{0xaa})
	require.NoError(t, err)
	assert.InDelta(t, -10.5, bal, 1e-9)
	bal, err = s.Balance(core.Addr{0xbb})
	require.NoError(t, err)
	assert.InDelta(t, 10, bal, 1e-9)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestKVStore(t *testing.T) {
	testStore(t, NewKVStore(memorydb.New()))
}

func TestKVStoreRoundTrip(t *testing.T) {
	s := NewKVStore(memorydb.New())

	fee := 0.25
	txn := &core.Txn{
		From:          core.Addr{1},
		To:            core.Addr{2},
		Amount:        3,
		Fee:           &fee,
		Timestamp:     1500,
		Memo:          "m",
		MemoEncrypted: true,
		Stealth:       &core.StealthMeta{EphemeralKey: []byte{9}, ViewTag: 7},
	}
	txn.Seal([]byte{1, 2})

	b := porsAt(0, 1000, core.GenesisPrevHash, []*core.Txn{txn})
	b.Head.PrevHash = core.GenesisPrevHash
	b.Proof.Signatures = map[core.Addr][]byte{{1}: {0xaa}, {2}: {0xbb}}
	b.StorageRewards = map[core.Addr]float64{{1}: 0.1, {2}: 0.2}
	b.Seal()
	require.NoError(t, s.Append(b))

	got, err := s.BlockByHash(b.Head.BlockHash)
	require.NoError(t, err)
	assert.Equal(t, b, got)
	// the record round-trips into a block with the same identity
	assert.Equal(t, b.Head.BlockHash, got.HashOf())
}
