package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

func TestRecoverVerifier(t *testing.T) {
	pk, sk := RandKeyPair()
	msg := []byte("hello")
	sig := sk.Sign(msg)

	v := RecoverVerifier{}
	assert.True(t, v.Verify(pk.Addr(), msg, sig))
	assert.False(t, v.Verify(pk.Addr(), []byte("other"), sig))
	assert.False(t, v.Verify(core.Addr{1}, msg, sig))
	assert.False(t, v.Verify(pk.Addr(), msg, sig[:64]))
	assert.False(t, v.Verify(pk.Addr(), msg, nil))
}

func TestSignedTxnVerifies(t *testing.T) {
	pk, sk := RandKeyPair()
	txn := &core.Txn{From: pk.Addr(), To: core.Addr{2}, Amount: 10, Timestamp: 1000}
	txn.Seal(sk.Sign(txn.SigningBytes()))

	v := RecoverVerifier{}
	assert.True(t, v.Verify(txn.From, txn.SigningBytes(), txn.Sig))

	// mutating a signed field invalidates the signature
	txn.Amount = 11
	assert.False(t, v.Verify(txn.From, txn.SigningBytes(), txn.Sig))
}
