package stack

import "slices"

// ProjectType is what the user is building.
type ProjectType string

const (
	ProjectNFT      ProjectType = "nft"
	ProjectDeFi     ProjectType = "defi"
	ProjectDAO      ProjectType = "dao"
	ProjectGaming   ProjectType = "gaming"
	ProjectAIWeb3   ProjectType = "ai-web3"
	ProjectSocial   ProjectType = "social"
	ProjectIdentity ProjectType = "identity"
	ProjectOther    ProjectType = "other"
)

// ExperienceLevel is the user's self-reported experience.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// Blockchain is the target chain. Its value doubles as a technology id.
type Blockchain string

const (
	ChainEthereum  Blockchain = "ethereum"
	ChainArweave   Blockchain = "arweave"
	ChainSolana    Blockchain = "solana"
	ChainPolygon   Blockchain = "polygon"
	ChainAvalanche Blockchain = "avalanche"
	ChainCosmos    Blockchain = "cosmos"
	ChainNear      Blockchain = "near"
	ChainOther     Blockchain = "other"
)

// isEVM reports whether the chain uses the Ethereum toolchain.
func (b Blockchain) isEVM() bool {
	return b == ChainEthereum || b == ChainPolygon
}

// UseCase is a capability the project needs.
type UseCase string

const (
	UseStorage        UseCase = "storage"
	UseSmartContracts UseCase = "smart-contracts"
	UsePayments       UseCase = "payments"
	UseIdentity       UseCase = "identity"
	UseCompute        UseCase = "compute"
	UseGovernance     UseCase = "governance"
	UseOther          UseCase = "other"
)

// Preference is a priority the user cares about.
type Preference string

const (
	PrefPrivacy             Preference = "privacy"
	PrefDecentralization    Preference = "decentralization"
	PrefGasFees             Preference = "gas-fees"
	PrefScalability         Preference = "scalability"
	PrefDeveloperExperience Preference = "developer-experience"
	PrefOther               Preference = "other"
)

// Canonical value sets, in questionnaire order.
var (
	ProjectTypes     = []ProjectType{ProjectNFT, ProjectDeFi, ProjectDAO, ProjectGaming, ProjectAIWeb3, ProjectSocial, ProjectIdentity, ProjectOther}
	ExperienceLevels = []ExperienceLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}
	Blockchains      = []Blockchain{ChainEthereum, ChainArweave, ChainSolana, ChainPolygon, ChainAvalanche, ChainCosmos, ChainNear, ChainOther}
	UseCases         = []UseCase{UseStorage, UseSmartContracts, UsePayments, UseIdentity, UseCompute, UseGovernance, UseOther}
	Preferences      = []Preference{PrefPrivacy, PrefDecentralization, PrefGasFees, PrefScalability, PrefDeveloperExperience, PrefOther}
)

// Answers is a completed questionnaire submission.
type Answers struct {
	ProjectType     ProjectType     `json:"projectType" yaml:"projectType"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" yaml:"experienceLevel"`
	Blockchain      Blockchain      `json:"blockchain" yaml:"blockchain"`
	UseCases        []UseCase       `json:"useCases" yaml:"useCases"`
	Preferences     []Preference    `json:"preferences" yaml:"preferences"`
}

// HasUseCase reports whether u was selected.
func (a Answers) HasUseCase(u UseCase) bool {
	return slices.Contains(a.UseCases, u)
}
