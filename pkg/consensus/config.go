package consensus

// SecondsPerYear is the Julian year used by the inflation math.
const SecondsPerYear = 365.25 * 24 * 3600

// Config holds the consensus parameters. Every node on a network must
// run the same values.
type Config struct {
	// TargetBlockInterval is the target seconds between PoRW
	// blocks. It is also the default elapsed time assumed for the
	// first PoRW block after genesis.
	TargetBlockInterval float64
	// DifficultyWindow is how many recent PoRW blocks feed the
	// difficulty retarget.
	DifficultyWindow int
	// MaxDifficultySwing bounds the per-retarget change: the new
	// difficulty stays within [cur/(1+k), cur*(1+k)].
	MaxDifficultySwing float64
	MinDifficulty      float64
	MaxDifficulty      float64
	InitialDifficulty  float64

	// AnnualInflationRate is the supply growth the minting reward
	// targets.
	AnnualInflationRate float64
	// BaseReward is the issuance at exactly the target cadence.
	BaseReward      float64
	MinRewardFactor float64
	MaxRewardFactor float64
	// MaxRewardInterval caps the elapsed time fed into the reward
	// so a long outage cannot mint an outsized block.
	MaxRewardInterval float64
	// RewardTolerance is the relative tolerance when comparing a
	// block's minted amount against the expected reward.
	RewardTolerance float64

	// QuorumThreshold is the fraction of listed participants that
	// must have a valid signature on a PoRS proof.
	QuorumThreshold float64
	// MinQuorumSize is the minimum participant list length.
	MinQuorumSize int

	// Quality floor for PoRW proofs: a proof at difficulty d needs
	// quality >= min(QualityBase + QualityPerDifficulty*d,
	// QualityCeiling).
	QualityBase          float64
	QualityPerDifficulty float64
	QualityCeiling       float64
	// DifficultyBand is the relative band around the expected
	// difficulty a proof's declared difficulty may sit in.
	DifficultyBand float64

	// MaxClockSkew is how far (seconds) a block timestamp may sit
	// in the future.
	MaxClockSkew float64

	// Chain-score weights for fork resolution.
	WeightLength float64
	WeightWork   float64
	WeightQuorum float64
}

// DefaultConfig returns the mainnet parameters.
func DefaultConfig() Config {
	return Config{
		TargetBlockInterval: 600,
		DifficultyWindow:    10,
		MaxDifficultySwing:  0.25,
		MinDifficulty:       0.5,
		MaxDifficulty:       64,
		InitialDifficulty:   1,

		AnnualInflationRate: 0.02,
		BaseReward:          50,
		MinRewardFactor:     0.25,
		MaxRewardFactor:     4,
		MaxRewardInterval:   6 * 3600,
		RewardTolerance:     1e-7,

		QuorumThreshold: 2.0 / 3.0,
		MinQuorumSize:   3,

		QualityBase:          40,
		QualityPerDifficulty: 2.5,
		QualityCeiling:       95,
		DifficultyBand:       0.10,

		MaxClockSkew: 120,

		WeightLength: 1.0,
		WeightWork:   2.0,
		WeightQuorum: 1.5,
	}
}
