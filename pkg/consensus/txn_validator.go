package consensus

import (
	"fmt"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// ValidateTransaction runs the transaction admission gates in order,
// stopping at the first failure: signature (and confidential proof
// when the transaction carries one), sender balance, fee floor.
//
// balances may be nil for a stateless pre-check: the signature gates
// still run but balance and fee-floor checks are skipped. Callers use
// this to screen gossip before the sender's account is known; it is
// never sufficient for block acceptance.
func (e *Engine) ValidateTransaction(txn *core.Txn, balances BalanceReader) error {
	if len(txn.Sig) == 0 {
		return ErrMissingSig
	}

	if txn.ID != txn.HashOf() {
		return ErrTxnIDMismatch
	}

	if !e.verifier.Verify(txn.From, txn.SigningBytes(), txn.Sig) {
		return fmt.Errorf("sender %v: %w", txn.From, ErrBadSignature)
	}

	if txn.Confidential != nil {
		if e.confidential == nil || !e.confidential.VerifyConfidential(txn) {
			return ErrBadConfidentialProof
		}
	}

	if balances == nil {
		return nil
	}

	fee := EffectiveFee(txn)
	balance, err := balances.Balance(txn.From)
	if err != nil {
		return fmt.Errorf("balance lookup: %w", err)
	}

	if balance < txn.Amount+fee {
		return fmt.Errorf("have %v, need %v: %w", balance, txn.Amount+fee, ErrInsufficientBalance)
	}

	if fee < minFeeRatio*StandardFee(txn.Amount) {
		return fmt.Errorf("fee %v below floor %v: %w", fee, minFeeRatio*StandardFee(txn.Amount), ErrFeeTooLow)
	}

	return nil
}
