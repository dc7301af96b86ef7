package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockHashDeterministic(t *testing.T) {
	b := &PoRWBlock{
		Head: BlockHeader{Index: 3, Timestamp: 1000, PrevHash: Hash{1}},
		Proof: PoRWProof{
			ProteinID:     "P01308",
			AminoSequence: "MALWMRLLPL",
			StructureData: []byte{0xde, 0xad},
			EnergyScore:   -42.5,
			ResultHash:    "abcd",
			Difficulty:    1.5,
		},
		MintedAmount:   50,
		ProteinDataRef: "P01308",
	}
	b.Seal()
	assert.Equal(t, b.HashOf(), b.Head.BlockHash)
	assert.Equal(t, b.HashOf(), b.HashOf())
}

func TestBlockHashTamperSensitive(t *testing.T) {
	base := func() *PoRSBlock {
		return &PoRSBlock{
			Head:          BlockHeader{Index: 7, Timestamp: 2000, PrevHash: Hash{2}},
			Creator:       Addr{9},
			CreatorFeePct: DefaultCreatorFeePct,
			Proof: PoRSProof{
				QuorumID:      "q1",
				Participants:  []Addr{{1}, {2}, {3}},
				Result:        "valid",
				ChallengeData: []byte{1, 2, 3},
				Signatures:    map[Addr][]byte{{1}: {0xaa}},
			},
			StorageRewards: map[Addr]float64{{1}: 0.1},
		}
	}

	b := base()
	b.Seal()

	data := []struct {
		name   string
		mutate func(*PoRSBlock)
	}{
		{"index", func(b *PoRSBlock) { b.Head.Index++ }},
		{"timestamp", func(b *PoRSBlock) { b.Head.Timestamp++ }},
		{"prev hash", func(b *PoRSBlock) { b.Head.PrevHash[0]++ }},
		{"creator", func(b *PoRSBlock) { b.Creator[0]++ }},
		{"fee pct", func(b *PoRSBlock) { b.CreatorFeePct += 0.1 }},
		{"quorum id", func(b *PoRSBlock) { b.Proof.QuorumID = "q2" }},
		{"result", func(b *PoRSBlock) { b.Proof.Result = "invalid" }},
		{"rewards", func(b *PoRSBlock) { b.StorageRewards[Addr{1}] += 1 }},
	}

	for _, d := range data {
		m := base()
		m.Seal()
		d.mutate(m)
		assert.NotEqual(t, b.HashOf(), m.HashOf(), d.name)
		assert.NotEqual(t, m.Head.BlockHash, m.HashOf(), d.name)
	}
}

func TestStableEncodeMapOrder(t *testing.T) {
	a := &PoRSBlock{StorageRewards: map[Addr]float64{{1}: 1, {2}: 2, {3}: 3}}
	b := &PoRSBlock{StorageRewards: map[Addr]float64{{3}: 3, {1}: 1, {2}: 2}}
	assert.Equal(t, a.HashOf(), b.HashOf())
}
