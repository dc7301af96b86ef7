package consensus

import (
	"fmt"
	"math"

	"github.com/mwillis775/PoRW-sub000/pkg/core"
)

// ValidatePoRWProof checks the work proof of a PoRW block. Scientific
// judgement is delegated to the injected evaluator; an evaluator error
// rejects the proof rather than propagating as a fault.
//
// expected, when non-nil, is the difficulty the chain demands: the
// declared difficulty must sit within DifficultyBand of it, and the
// evaluator's quality score must clear a floor that rises linearly
// with difficulty.
func (e *Engine) ValidatePoRWProof(b *core.PoRWBlock, expected *float64) error {
	p := &b.Proof
	switch {
	case p.ProteinID == "":
		return fmt.Errorf("protein_id: %w", ErrMalformedProof)
	case p.AminoSequence == "":
		return fmt.Errorf("amino_sequence: %w", ErrMalformedProof)
	case len(p.StructureData) == 0:
		return fmt.Errorf("structure_data: %w", ErrMalformedProof)
	case p.ResultHash == "":
		return fmt.Errorf("result_hash: %w", ErrMalformedProof)
	}

	verdict, err := e.eval.Evaluate(p)
	if err != nil {
		e.log.Warn("evaluator failed, treating proof as invalid", "protein", p.ProteinID, "err", err)
		return fmt.Errorf("evaluator: %v: %w", err, ErrProofRejected)
	}
	if !verdict.IsValid {
		return fmt.Errorf("%s: %w", verdict.Message, ErrProofRejected)
	}

	if b.ProteinDataRef != p.ProteinID {
		return fmt.Errorf("ref %q vs proof %q: %w", b.ProteinDataRef, p.ProteinID, ErrProteinRefMismatch)
	}

	if expected != nil {
		want := *expected
		if math.Abs(p.Difficulty-want) > e.cfg.DifficultyBand*want {
			return fmt.Errorf("declared %v, expected %v: %w", p.Difficulty, want, ErrDifficultyOutOfBand)
		}

		floor := math.Min(e.cfg.QualityBase+e.cfg.QualityPerDifficulty*want, e.cfg.QualityCeiling)
		if verdict.Quality < floor {
			return fmt.Errorf("quality %v below %v at difficulty %v: %w", verdict.Quality, floor, want, ErrQualityTooLow)
		}
	}

	return nil
}

// ValidatePoRSProof checks the quorum attestation of a PoRS block: the
// structural shape, the attested result, and that enough listed
// participants signed the challenge payload.
func (e *Engine) ValidatePoRSProof(b *core.PoRSBlock) error {
	p := &b.Proof
	switch {
	case p.QuorumID == "":
		return fmt.Errorf("quorum_id: %w", ErrMalformedProof)
	case len(p.Participants) < e.cfg.MinQuorumSize:
		return fmt.Errorf("%d participants, need %d: %w", len(p.Participants), e.cfg.MinQuorumSize, ErrMalformedProof)
	case len(p.ChallengeData) == 0:
		return fmt.Errorf("challenge_data: %w", ErrMalformedProof)
	case p.Signatures == nil:
		return fmt.Errorf("signatures: %w", ErrMalformedProof)
	}

	required := int(math.Ceil(float64(len(p.Participants)) * e.cfg.QuorumThreshold))
	if required < 2 {
		required = 2
	}

	msg := p.SigningBytes()
	valid := 0
	for _, part := range p.Participants {
		sig, ok := p.Signatures[part]
		if !ok {
			continue
		}
		if e.verifier.Verify(part, msg, sig) {
			valid++
		}
	}

	if valid < required {
		e.log.Debug("quorum under threshold", "quorum", p.QuorumID, "valid", valid, "required", required)
		return fmt.Errorf("%d of %d required signatures: %w", valid, required, ErrQuorumNotMet)
	}

	if p.Result != "valid" {
		return fmt.Errorf("result %q: %w", p.Result, ErrQuorumResultInvalid)
	}

	return nil
}
