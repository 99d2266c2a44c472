package stack

// Rule contributes zero or more technology ids to a stack.
type Rule struct {
	Name string
	// Lenient rules pick ids straight from the answers, so a catalog miss
	// is expected and not reported as a data fault.
	Lenient bool
	Pick    func(Answers) []string
}

// DefaultRules returns the selection rules in the order they apply.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "blockchain", Lenient: true, Pick: pickBlockchain},
		{Name: "language", Pick: pickLanguage},
		{Name: "framework", Pick: pickFramework},
		{Name: "wallet", Pick: pickWallet},
		{Name: "storage", Pick: pickStorage},
		{Name: "compute", Pick: pickCompute},
		{Name: "frontend", Pick: pickFrontend},
	}
}

func pickBlockchain(a Answers) []string {
	if a.Blockchain == "" {
		return nil
	}
	return []string{string(a.Blockchain)}
}

func pickLanguage(a Answers) []string {
	switch {
	case a.Blockchain.isEVM():
		return []string{"solidity"}
	case a.Blockchain == ChainSolana, a.Blockchain == ChainArweave:
		return []string{"rust"}
	}
	return nil
}

func pickFramework(a Answers) []string {
	switch {
	case a.Blockchain.isEVM():
		if a.ExperienceLevel == LevelAdvanced {
			return []string{"foundry"}
		}
		return []string{"hardhat"}
	case a.Blockchain == ChainSolana:
		return []string{"anchor"}
	}
	return nil
}

func pickWallet(a Answers) []string {
	switch {
	case a.Blockchain.isEVM():
		return []string{"metamask"}
	case a.Blockchain == ChainSolana:
		return []string{"phantom"}
	case a.Blockchain == ChainArweave:
		return []string{"arconnect"}
	}
	return nil
}

func pickStorage(a Answers) []string {
	if !a.HasUseCase(UseStorage) {
		return nil
	}
	if a.Blockchain == ChainArweave {
		return []string{"arweave-storage"}
	}
	return []string{"ipfs"}
}

func pickCompute(a Answers) []string {
	if !a.HasUseCase(UseCompute) {
		return nil
	}
	switch {
	case a.Blockchain == ChainArweave:
		return []string{"ao"}
	case a.Blockchain.isEVM():
		return []string{"chainlink"}
	}
	return nil
}

func pickFrontend(a Answers) []string {
	if !a.Blockchain.isEVM() {
		return nil
	}
	if a.ExperienceLevel == LevelBeginner {
		return []string{"web3js"}
	}
	return []string{"wagmi", "viem"}
}
