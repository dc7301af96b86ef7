package crypto

import (
	"sync"

	"github.com/dfinity/go-dfinity-crypto/bls"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// InitBLS initializes the BLS curve. Must be called once before any
// BLSVerifier is used.
func InitBLS() error {
	return bls.Init(int(bls.CurveFp254BNb))
}

// BLSVerifier verifies BLS signatures from storage-quorum
// participants. BLS signatures are not recoverable, so participants
// register their public keys ahead of time; the address of a key is
// SHA3(serialized key), same as the secp scheme.
//
// Deployments that want threshold-aggregated quorum attestations swap
// this in for the recoverable verifier without touching the
// validators.
type BLSVerifier struct {
	mu   sync.RWMutex
	keys map[core.Addr][]byte
}

func NewBLSVerifier() *BLSVerifier {
	return &BLSVerifier{keys: make(map[core.Addr][]byte)}
}

// Register records a participant's serialized public key and returns
// its address.
func (v *BLSVerifier) Register(pk []byte) core.Addr {
	addr := core.SHA3(pk).Addr()
	v.mu.Lock()
	v.keys[addr] = pk
	v.mu.Unlock()
	return addr
}

func (v *BLSVerifier) Verify(signer core.Addr, msg, sig []byte) bool {
	if len(sig) == 0 {
		return false
	}

	v.mu.RLock()
	pkb, ok := v.keys[signer]
	v.mu.RUnlock()
	if !ok {
		return false
	}

	var pk bls.PublicKey
	if err := pk.Deserialize(pkb); err != nil {
		return false
	}

	var sign bls.Sign
	if err := sign.Deserialize(sig); err != nil {
		return false
	}

	return sign.Verify(&pk, string(msg))
}
