package consensus

import (
	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// BalanceReader looks up the spendable balance of an address.
type BalanceReader interface {
	Balance(addr core.Addr) (float64, error)
}

// Reader is the read capability the consensus core holds on the
// persisted chain. The core never writes: it validates and returns
// decisions, and the caller appends accepted blocks under its own
// single-writer discipline.
//
// Lookups that find nothing return an error matching ErrNotFound; any
// other error is an integration failure and propagates unchanged.
type Reader interface {
	BalanceReader

	TotalSupply() (float64, error)
	BlockByIndex(index uint64) (core.Block, error)
	BlockByHash(h core.Hash) (core.Block, error)
	// LatestBlock returns the highest block, or the highest block
	// of the given type when typ is non-nil.
	LatestBlock(typ *core.BlockType) (core.Block, error)
	// RecentBlocks returns up to limit blocks of the given type,
	// newest first.
	RecentBlocks(typ core.BlockType, limit int) ([]core.Block, error)
	TransactionsForBlock(h core.Hash) ([]*core.Txn, error)
}

// Evaluator judges the scientific content of a PoRW proof. A transport
// error is treated by the caller as a rejected proof, never as a
// crash.
type Evaluator interface {
	Evaluate(p *core.PoRWProof) (Verdict, error)
}

// Verdict is the evaluator's judgement of a work proof.
type Verdict struct {
	IsValid bool
	// Quality and Novelty are scores in [0, 100].
	Quality float64
	Novelty float64
	Message string
}

// Verifier checks that sig is signer's signature over msg.
type Verifier interface {
	Verify(signer core.Addr, msg, sig []byte) bool
}

// ConfidentialVerifier checks the confidential payload of a
// transaction marked confidential.
type ConfidentialVerifier interface {
	VerifyConfidential(txn *core.Txn) bool
}
