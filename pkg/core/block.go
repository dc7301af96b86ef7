package core

// BlockType tags the two block variants.
type BlockType uint8

const (
	PoRW BlockType = iota
	PoRS
)

func (t BlockType) String() string {
	switch t {
	case PoRW:
		return "PoRW"
	case PoRS:
		return "PoRS"
	default:
		panic("unknown block type")
	}
}

// DefaultCreatorFeePct is the creator's cut of the PoRS fee pool when
// the block does not set one.
const DefaultCreatorFeePct = 0.3

// BlockHeader holds the fields shared by both block variants.
//
// BlockHash is derived from everything else in the block. It is never
// trusted from the wire: consensus recomputes it and compares.
type BlockHeader struct {
	Index     uint64
	Timestamp float64
	PrevHash  Hash
	BlockHash Hash
}

// Block is the sum type over the two block variants. It is sealed:
// only PoRWBlock and PoRSBlock implement it, and consensus dispatches
// on the concrete type so a new variant is a compile-time-visible
// change.
type Block interface {
	Header() *BlockHeader
	Type() BlockType
	// Encode returns the canonical encoding, excluding the block
	// hash when withHash is false.
	Encode(withHash bool) []byte
	// HashOf recomputes the block hash from the other fields.
	HashOf() Hash

	sealed()
}

// PoRWBlock mints new supply against a validated work proof.
type PoRWBlock struct {
	Head           BlockHeader
	Proof          PoRWProof
	MintedAmount   float64
	ProteinDataRef string
}

func (b *PoRWBlock) Header() *BlockHeader { return &b.Head }
func (b *PoRWBlock) Type() BlockType      { return PoRW }
func (b *PoRWBlock) sealed()              {}

// Encode encodes the block deterministically, excluding the block
// hash when withHash is false.
func (b *PoRWBlock) Encode(withHash bool) []byte {
	en := *b
	if !withHash {
		en.Head.BlockHash = Hash{}
	}

	return StableEncode(en)
}

// HashOf computes the block hash over every field except the hash
// itself.
func (b *PoRWBlock) HashOf() Hash {
	return SHA3(b.Encode(false))
}

// Seal computes and stores the block hash. Fields must not change
// afterwards.
func (b *PoRWBlock) Seal() {
	b.Head.BlockHash = b.HashOf()
}

// PoRSBlock processes transactions under a storage-quorum attestation.
type PoRSBlock struct {
	Head           BlockHeader
	Proof          PoRSProof
	Txns           []*Txn
	Creator        Addr
	CreatorFeePct  float64
	StorageRewards map[Addr]float64
}

func (b *PoRSBlock) Header() *BlockHeader { return &b.Head }
func (b *PoRSBlock) Type() BlockType      { return PoRS }
func (b *PoRSBlock) sealed()              {}

// Encode encodes the block deterministically, excluding the block
// hash when withHash is false.
func (b *PoRSBlock) Encode(withHash bool) []byte {
	en := *b
	if !withHash {
		en.Head.BlockHash = Hash{}
	}

	return StableEncode(en)
}

// HashOf computes the block hash over every field except the hash
// itself.
func (b *PoRSBlock) HashOf() Hash {
	return SHA3(b.Encode(false))
}

// Seal computes and stores the block hash. Fields must not change
// afterwards.
func (b *PoRSBlock) Seal() {
	b.Head.BlockHash = b.HashOf()
}
