package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dave/stablegob"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/mwillis775/PoRW-sub000/pkg/consensus"
	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// Key prefixes inside the backing KV store.
var (
	blockPrefix   = []byte("b:")
	indexPrefix   = []byte("i:")
	latestPrefix  = []byte("lt:")
	balancePrefix = []byte("bal:")
	tipKey        = []byte("tip")
	supplyKey     = []byte("supply")
)

// KVStore persists the chain in any ethdb key-value store: memorydb
// in tests, leveldb on a node. Records round-trip losslessly into the
// block variants.
type KVStore struct {
	db ethdb.KeyValueStore
}

func NewKVStore(db ethdb.KeyValueStore) *KVStore {
	return &KVStore{db: db}
}

// blockRecord is the flat storage form of either block variant.
type blockRecord struct {
	Type core.BlockType
	Head core.BlockHeader

	// PoRW fields
	WorkProof      core.PoRWProof
	MintedAmount   float64
	ProteinDataRef string

	// PoRS fields
	StorageProof   core.PoRSProof
	Txns           []*core.Txn
	Creator        core.Addr
	CreatorFeePct  float64
	StorageRewards map[core.Addr]float64
}

func recordOf(b core.Block) blockRecord {
	switch b := b.(type) {
	case *core.PoRWBlock:
		return blockRecord{
			Type:           core.PoRW,
			Head:           b.Head,
			WorkProof:      b.Proof,
			MintedAmount:   b.MintedAmount,
			ProteinDataRef: b.ProteinDataRef,
		}
	case *core.PoRSBlock:
		return blockRecord{
			Type:           core.PoRS,
			Head:           b.Head,
			StorageProof:   b.Proof,
			Txns:           b.Txns,
			Creator:        b.Creator,
			CreatorFeePct:  b.CreatorFeePct,
			StorageRewards: b.StorageRewards,
		}
	default:
		panic(fmt.Sprintf("unknown block type %T", b))
	}
}

// materialize rebuilds the block variant a record was taken from.
func materialize(r *blockRecord) (core.Block, error) {
	switch r.Type {
	case core.PoRW:
		return &core.PoRWBlock{
			Head:           r.Head,
			Proof:          r.WorkProof,
			MintedAmount:   r.MintedAmount,
			ProteinDataRef: r.ProteinDataRef,
		}, nil
	case core.PoRS:
		return &core.PoRSBlock{
			Head:           r.Head,
			Proof:          r.StorageProof,
			Txns:           r.Txns,
			Creator:        r.Creator,
			CreatorFeePct:  r.CreatorFeePct,
			StorageRewards: r.StorageRewards,
		}, nil
	default:
		return nil, fmt.Errorf("record type %d: %w", r.Type, consensus.ErrNotFound)
	}
}

// Append stores an accepted block and applies its effects, mirroring
// MemoryStore.Append. The caller must serialize appends.
func (s *KVStore) Append(b core.Block) error {
	h := b.Header()

	tip, ok, err := s.tipIndex()
	if err != nil {
		return err
	}
	if ok && h.Index != tip+1 {
		return fmt.Errorf("append index %d on tip %d", h.Index, tip)
	}
	if !ok && h.Index != 0 {
		return fmt.Errorf("append index %d on empty chain", h.Index)
	}

	rec := recordOf(b)
	if err := s.db.Put(blockKey(h.BlockHash), core.StableEncode(rec)); err != nil {
		return err
	}
	if err := s.db.Put(indexKey(h.Index), h.BlockHash[:]); err != nil {
		return err
	}
	if err := s.db.Put(latestKey(b.Type()), h.BlockHash[:]); err != nil {
		return err
	}
	if err := s.db.Put(tipKey, beUint64(h.Index)); err != nil {
		return err
	}

	switch b := b.(type) {
	case *core.PoRWBlock:
		supply, err := s.TotalSupply()
		if err != nil {
			return err
		}
		return s.db.Put(supplyKey, beFloat(supply+b.MintedAmount))
	case *core.PoRSBlock:
		for _, txn := range b.Txns {
			if err := s.credit(txn.From, -(txn.Amount + consensus.EffectiveFee(txn))); err != nil {
				return err
			}
			if err := s.credit(txn.To, txn.Amount); err != nil {
				return err
			}
		}
		for addr, amount := range b.StorageRewards {
			if err := s.credit(addr, amount); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetBalance sets an account balance directly. Test setup helper.
func (s *KVStore) SetBalance(addr core.Addr, amount float64) error {
	return s.db.Put(balanceKey(addr), beFloat(amount))
}

func (s *KVStore) credit(addr core.Addr, delta float64) error {
	cur, err := s.Balance(addr)
	if err != nil {
		return err
	}
	return s.db.Put(balanceKey(addr), beFloat(cur+delta))
}

func (s *KVStore) TotalSupply() (float64, error) {
	ok, err := s.db.Has(supplyKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	v, err := s.db.Get(supplyKey)
	if err != nil {
		return 0, err
	}
	return floatBE(v), nil
}

func (s *KVStore) Balance(addr core.Addr) (float64, error) {
	ok, err := s.db.Has(balanceKey(addr))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	v, err := s.db.Get(balanceKey(addr))
	if err != nil {
		return 0, err
	}
	return floatBE(v), nil
}

func (s *KVStore) BlockByIndex(index uint64) (core.Block, error) {
	h, err := s.hashAt(indexKey(index))
	if err != nil {
		return nil, err
	}
	return s.BlockByHash(h)
}

func (s *KVStore) BlockByHash(h core.Hash) (core.Block, error) {
	ok, err := s.db.Has(blockKey(h))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, consensus.ErrNotFound
	}

	raw, err := s.db.Get(blockKey(h))
	if err != nil {
		return nil, err
	}

	var rec blockRecord
	dec := stablegob.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode block %v: %v", h, err)
	}
	return materialize(&rec)
}

func (s *KVStore) LatestBlock(typ *core.BlockType) (core.Block, error) {
	if typ == nil {
		tip, ok, err := s.tipIndex()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, consensus.ErrNotFound
		}
		return s.BlockByIndex(tip)
	}

	h, err := s.hashAt(latestKey(*typ))
	if err != nil {
		return nil, err
	}
	return s.BlockByHash(h)
}

func (s *KVStore) RecentBlocks(typ core.BlockType, limit int) ([]core.Block, error) {
	var out []core.Block
	tip, ok, err := s.tipIndex()
	if err != nil || !ok {
		return out, err
	}

	for i := tip; len(out) < limit; i-- {
		b, err := s.BlockByIndex(i)
		if err != nil {
			return nil, err
		}
		if b.Type() == typ {
			out = append(out, b)
		}
		if i == 0 {
			break
		}
	}
	return out, nil
}

func (s *KVStore) TransactionsForBlock(h core.Hash) ([]*core.Txn, error) {
	b, err := s.BlockByHash(h)
	if err != nil {
		return nil, err
	}

	if pb, ok := b.(*core.PoRSBlock); ok {
		return pb.Txns, nil
	}
	return nil, nil
}

func (s *KVStore) tipIndex() (uint64, bool, error) {
	ok, err := s.db.Has(tipKey)
	if err != nil || !ok {
		return 0, false, err
	}

	v, err := s.db.Get(tipKey)
	if err != nil {
		return 0, false, err
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func (s *KVStore) hashAt(key []byte) (core.Hash, error) {
	var h core.Hash
	ok, err := s.db.Has(key)
	if err != nil {
		return h, err
	}
	if !ok {
		return h, consensus.ErrNotFound
	}

	v, err := s.db.Get(key)
	if err != nil {
		return h, err
	}
	copy(h[:], v)
	return h, nil
}

func blockKey(h core.Hash) []byte {
	return append(blockPrefix, h[:]...)
}

func indexKey(i uint64) []byte {
	return append(indexPrefix, beUint64(i)...)
}

func latestKey(t core.BlockType) []byte {
	return append(latestPrefix, byte(t))
}

func balanceKey(a core.Addr) []byte {
	return append(balancePrefix, a[:]...)
}

func beUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func beFloat(v float64) []byte {
	return beUint64(math.Float64bits(v))
}

func floatBE(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}
