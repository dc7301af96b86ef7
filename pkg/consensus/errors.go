package consensus

import "errors"

// Rejection reasons. Validators wrap these with context; callers match
// with errors.Is to tell, e.g., an underpriced fee from an unfunded
// sender.
var (
	// structural
	ErrMalformedProof   = errors.New("malformed proof payload")
	ErrUnknownBlockType = errors.New("unknown block type")

	// cryptographic
	ErrMissingSig           = errors.New("transaction has no signature")
	ErrBadSignature         = errors.New("bad transaction signature")
	ErrTxnIDMismatch        = errors.New("transaction id does not match payload")
	ErrBadConfidentialProof = errors.New("confidential proof rejected")
	ErrQuorumNotMet         = errors.New("quorum signature threshold not met")
	ErrQuorumResultInvalid  = errors.New("quorum result is not valid")

	// economic
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrFeeTooLow           = errors.New("fee below minimum")
	ErrRewardMismatch      = errors.New("minted amount does not match expected reward")
	ErrRewardsMismatch     = errors.New("storage rewards do not match fee distribution")

	// temporal
	ErrTimestampFuture = errors.New("block timestamp too far in the future")
	ErrTimestampOrder  = errors.New("block timestamp not after previous block")

	// linkage
	ErrHashMismatch     = errors.New("block hash does not match contents")
	ErrBadGenesisPrev   = errors.New("genesis previous hash is not the zero sentinel")
	ErrUnknownPrevBlock = errors.New("previous block not found")
	ErrBrokenLinkage    = errors.New("previous hash does not match previous block")

	// proof judgement
	ErrProofRejected       = errors.New("proof rejected")
	ErrProteinRefMismatch  = errors.New("protein data ref does not match proof")
	ErrDifficultyOutOfBand = errors.New("declared difficulty outside expected band")
	ErrQualityTooLow       = errors.New("quality below difficulty floor")

	// fork resolution
	ErrNoValidCandidate = errors.New("no valid fork candidate")

	// storage
	ErrNotFound = errors.New("not found")
)
