// Package crypto provides the signature adapters the consensus core
// accepts as injected verifiers: secp256k1 with recoverable
// signatures for wallets, and BLS for storage quorums.
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto/secp256k1"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

type SK []byte
type PK []byte

// RandKeyPair generates a secp256k1 key pair.
func RandKeyPair() (PK, SK) {
	key, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
	if err != nil {
		panic(err)
	}
	pubkey := elliptic.Marshal(secp256k1.S256(), key.X, key.Y)
	return PK(pubkey), SK(math.PaddedBigBytes(key.D, 32))
}

// Addr derives the account address of a public key.
func (p PK) Addr() core.Addr {
	return core.SHA3(p).Addr()
}

// Sign produces a recoverable signature over msg.
func (s SK) Sign(msg []byte) []byte {
	in := core.SHA3(msg)
	sig, err := secp256k1.Sign(in[:], s)
	if err != nil {
		panic(err)
	}

	return sig
}

// RecoverVerifier verifies recoverable secp256k1 signatures: the
// public key is recovered from the signature itself and its derived
// address must match the claimed signer. This is the default wallet
// signature scheme; transactions carry no public key.
type RecoverVerifier struct{}

func (RecoverVerifier) Verify(signer core.Addr, msg, sig []byte) bool {
	if len(sig) != 65 {
		return false
	}

	in := core.SHA3(msg)
	pub, err := secp256k1.RecoverPubkey(in[:], sig)
	if err != nil {
		return false
	}

	return PK(pub).Addr() == signer
}
