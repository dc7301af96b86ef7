package core

// ConfidentialPayload carries the commitment and range proof of a
// confidential transaction. The core does not interpret it; it is
// handed to the injected confidential verifier.
type ConfidentialPayload struct {
	Commitment []byte
	RangeProof []byte
}

// StealthMeta is the stealth-address metadata attached by the sending
// wallet so the recipient can recognize the output.
type StealthMeta struct {
	EphemeralKey []byte
	ViewTag      byte
}

// Txn is a value transfer processed by PoRS blocks.
//
// A transaction is immutable once signed: ID is derived from the
// signing payload plus the signature, so mutating any signed field
// invalidates both the signature and the ID.
type Txn struct {
	From          Addr
	To            Addr
	Amount        float64
	// Fee is the explicit fee. Nil means the standard fee applies.
	Fee           *float64
	Timestamp     float64
	Memo          string
	MemoEncrypted bool
	Confidential  *ConfidentialPayload
	Stealth       *StealthMeta
	Sig           []byte
	ID            Hash
}

// Encode encodes the transaction deterministically. The ID is always
// excluded; the signature is excluded when withSig is false.
func (t *Txn) Encode(withSig bool) []byte {
	en := *t
	en.ID = Hash{}
	if !withSig {
		en.Sig = nil
	}

	return StableEncode(en)
}

// SigningBytes returns the canonical payload the sender signs.
func (t *Txn) SigningBytes() []byte {
	return t.Encode(false)
}

// HashOf computes the transaction ID from the signing payload and the
// attached signature.
func (t *Txn) HashOf() Hash {
	return SHA3(t.Encode(true))
}

// Seal attaches the signature and derives the transaction ID. It is
// the second phase of the construct-then-seal lifecycle: build the
// fields, sign, seal.
func (t *Txn) Seal(sig []byte) {
	t.Sig = sig
	t.ID = t.HashOf()
}
