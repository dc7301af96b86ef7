// Package storage provides reference implementations of the consensus
// read capability: an in-memory store for tests and simulation, and a
// KV-backed store for a real node.
package storage

import (
	"fmt"
	"sync"

	"github.com/mwillis775/PoRW-sub000/pkg/consensus"
	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// MemoryStore keeps the chain in maps. It implements
// consensus.Reader; Append is the caller-side single-writer append the
// core itself never performs.
type MemoryStore struct {
	mu       sync.RWMutex
	byHash   map[core.Hash]core.Block
	byIndex  map[uint64]core.Hash
	latest   map[core.BlockType]core.Block
	tip      core.Block
	balances map[core.Addr]float64
	supply   float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byHash:   make(map[core.Hash]core.Block),
		byIndex:  make(map[uint64]core.Hash),
		latest:   make(map[core.BlockType]core.Block),
		balances: make(map[core.Addr]float64),
	}
}

// Append stores an accepted block and applies its effects: minted
// supply for PoRW, transaction transfers and storage rewards for
// PoRS. The caller must serialize appends.
func (s *MemoryStore) Append(b core.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := b.Header()
	if s.tip != nil && h.Index != s.tip.Header().Index+1 {
		return fmt.Errorf("append index %d on tip %d", h.Index, s.tip.Header().Index)
	}
	if s.tip == nil && h.Index != 0 {
		return fmt.Errorf("append index %d on empty chain", h.Index)
	}

	s.byHash[h.BlockHash] = b
	s.byIndex[h.Index] = h.BlockHash
	s.latest[b.Type()] = b
	s.tip = b

	switch b := b.(type) {
	case *core.PoRWBlock:
		s.supply += b.MintedAmount
	case *core.PoRSBlock:
		for _, txn := range b.Txns {
			s.balances[txn.From] -= txn.Amount + consensus.EffectiveFee(txn)
			s.balances[txn.To] += txn.Amount
		}
		for addr, amount := range b.StorageRewards {
			s.balances[addr] += amount
		}
	}
	return nil
}

// SetBalance sets an account balance directly. Test setup helper.
func (s *MemoryStore) SetBalance(addr core.Addr, amount float64) {
	s.mu.Lock()
	s.balances[addr] = amount
	s.mu.Unlock()
}

// SetTotalSupply sets the tracked supply directly. Test setup helper.
func (s *MemoryStore) SetTotalSupply(amount float64) {
	s.mu.Lock()
	s.supply = amount
	s.mu.Unlock()
}

func (s *MemoryStore) TotalSupply() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supply, nil
}

func (s *MemoryStore) Balance(addr core.Addr) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[addr], nil
}

func (s *MemoryStore) BlockByIndex(index uint64) (core.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.byIndex[index]
	if !ok {
		return nil, consensus.ErrNotFound
	}
	return s.byHash[h], nil
}

func (s *MemoryStore) BlockByHash(h core.Hash) (core.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byHash[h]
	if !ok {
		return nil, consensus.ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) LatestBlock(typ *core.BlockType) (core.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if typ == nil {
		if s.tip == nil {
			return nil, consensus.ErrNotFound
		}
		return s.tip, nil
	}

	b, ok := s.latest[*typ]
	if !ok {
		return nil, consensus.ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) RecentBlocks(typ core.BlockType, limit int) ([]core.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Block
	if s.tip == nil {
		return out, nil
	}

	for i := s.tip.Header().Index; len(out) < limit; i-- {
		b := s.byHash[s.byIndex[i]]
		if b != nil && b.Type() == typ {
			out = append(out, b)
		}
		if i == 0 {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) TransactionsForBlock(h core.Hash) ([]*core.Txn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byHash[h]
	if !ok {
		return nil, consensus.ErrNotFound
	}

	if pb, ok := b.(*core.PoRSBlock); ok {
		return pb.Txns, nil
	}
	return nil, nil
}
