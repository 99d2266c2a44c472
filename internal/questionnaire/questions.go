package questionnaire

import "web3stack-api/internal/stack"

// Kind tells the client how a step collects its answer.
type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
)

// Option is one selectable answer.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Step is one page of the questionnaire.
type Step struct {
	Number   int      `json:"step"`
	Field    string   `json:"field"`
	Title    string   `json:"title"`
	Prompt   string   `json:"prompt"`
	Kind     Kind     `json:"kind"`
	Required bool     `json:"required"`
	Options  []Option `json:"options"`
}

// Steps returns the questionnaire in presentation order. Each call returns
// fresh slices.
func Steps() []Step {
	return []Step{
		{
			Number:   1,
			Field:    "projectType",
			Title:    "Project Type",
			Prompt:   "What kind of Web3 project are you building?",
			Kind:     KindSingle,
			Required: true,
			Options: []Option{
				{Value: string(stack.ProjectNFT), Label: "NFT Collection or Marketplace"},
				{Value: string(stack.ProjectDeFi), Label: "DeFi Application"},
				{Value: string(stack.ProjectDAO), Label: "DAO or Governance"},
				{Value: string(stack.ProjectGaming), Label: "Web3 Gaming"},
				{Value: string(stack.ProjectAIWeb3), Label: "AI & Web3 Integration"},
				{Value: string(stack.ProjectSocial), Label: "Social Network / Community"},
				{Value: string(stack.ProjectIdentity), Label: "Identity / Authentication"},
				{Value: string(stack.ProjectOther), Label: "Other / Multiple Uses"},
			},
		},
		{
			Number:   2,
			Field:    "experienceLevel",
			Title:    "Experience Level",
			Prompt:   "How experienced are you with Web3 development?",
			Kind:     KindSingle,
			Required: true,
			Options: []Option{
				{
					Value:       string(stack.LevelBeginner),
					Label:       "Beginner",
					Description: "New to Web3 development, looking for accessible tools and comprehensive guides.",
				},
				{
					Value:       string(stack.LevelIntermediate),
					Label:       "Intermediate",
					Description: "Some experience with Web3 development or strong background in traditional web development.",
				},
				{
					Value:       string(stack.LevelAdvanced),
					Label:       "Advanced",
					Description: "Experienced Web3 developer looking for optimized tooling and advanced capabilities.",
				},
			},
		},
		{
			Number:   3,
			Field:    "blockchain",
			Title:    "Preferred Blockchain",
			Prompt:   "Which blockchain would you like to build on?",
			Kind:     KindSingle,
			Required: true,
			Options: []Option{
				{Value: string(stack.ChainEthereum), Label: "Ethereum"},
				{Value: string(stack.ChainArweave), Label: "Arweave"},
				{Value: string(stack.ChainSolana), Label: "Solana"},
				{Value: string(stack.ChainPolygon), Label: "Polygon"},
				{Value: string(stack.ChainAvalanche), Label: "Avalanche"},
				{Value: string(stack.ChainCosmos), Label: "Cosmos"},
				{Value: string(stack.ChainNear), Label: "NEAR"},
				{Value: string(stack.ChainOther), Label: "Other / Not Sure"},
			},
		},
		{
			Number: 4,
			Field:  "useCases",
			Title:  "Use Cases",
			Prompt: "What features will your application need? (Select all that apply)",
			Kind:   KindMulti,
			Options: []Option{
				{Value: string(stack.UseStorage), Label: "Decentralized Storage"},
				{Value: string(stack.UseSmartContracts), Label: "Smart Contracts"},
				{Value: string(stack.UsePayments), Label: "Payments / Transactions"},
				{Value: string(stack.UseIdentity), Label: "Identity / Authentication"},
				{Value: string(stack.UseCompute), Label: "Off-chain Computation"},
				{Value: string(stack.UseGovernance), Label: "Governance / Voting"},
				{Value: string(stack.UseOther), Label: "Other / Custom Logic"},
			},
		},
		{
			Number: 5,
			Field:  "preferences",
			Title:  "Additional Preferences",
			Prompt: "What factors are most important to you? (Select all that apply)",
			Kind:   KindMulti,
			Options: []Option{
				{Value: string(stack.PrefPrivacy), Label: "Privacy / Security"},
				{Value: string(stack.PrefDecentralization), Label: "Maximum Decentralization"},
				{Value: string(stack.PrefGasFees), Label: "Low Gas Fees"},
				{Value: string(stack.PrefScalability), Label: "Scalability / Performance"},
				{Value: string(stack.PrefDeveloperExperience), Label: "Developer Experience"},
				{Value: string(stack.PrefOther), Label: "Other / Custom Requirements"},
			},
		},
	}
}
