package core

// PoRWProof is the work-proof payload of a PoRW block. It references a
// validated folding work unit; the scientific judgement of the result
// is delegated to an external evaluator.
type PoRWProof struct {
	ProteinID     string
	AminoSequence string
	StructureData []byte
	EnergyScore   float64
	ResultHash    string
	// Difficulty is the difficulty the miner claims to have worked
	// at. It must sit within the band around the difficulty the
	// chain expects.
	Difficulty float64
}

// PoRSProof is the quorum attestation payload of a PoRS block.
type PoRSProof struct {
	QuorumID      string
	Participants  []Addr
	Result        string
	ChallengeData []byte
	Signatures    map[Addr][]byte
}

// SigningBytes returns the message each quorum participant signs: the
// quorum identity, the challenge, and the attested result.
func (p *PoRSProof) SigningBytes() []byte {
	en := struct {
		QuorumID      string
		ChallengeData []byte
		Result        string
	}{p.QuorumID, p.ChallengeData, p.Result}

	return StableEncode(en)
}
