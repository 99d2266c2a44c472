package stack

import "fmt"

const defaultTitleFormat = "Web3 Development Stack on %s"

var titleFormats = map[ProjectType]string{
	ProjectNFT:    "NFT Development Stack on %s",
	ProjectDeFi:   "DeFi Application Stack on %s",
	ProjectDAO:    "DAO Development Stack on %s",
	ProjectGaming: "Web3 Gaming Stack on %s",
	ProjectAIWeb3: "AI & Web3 Integration Stack on %s",
}

// Chains without a catalog row still need a name in titles.
var fallbackChainNames = map[Blockchain]string{
	ChainAvalanche: "Avalanche",
	ChainCosmos:    "Cosmos",
	ChainNear:      "NEAR",
}

const unknownChainName = "Any Chain"

// CategoryOrder is the display order of technology groups, top of the stack first.
var CategoryOrder = []Category{
	CategoryFrontend,
	CategoryFramework,
	CategoryLanguage,
	CategoryBlockchain,
	CategoryWallet,
	CategoryStorage,
	CategoryCompute,
}

var categoryNames = map[Category]string{
	CategoryBlockchain: "Blockchain Networks",
	CategoryLanguage:   "Smart Contract Languages",
	CategoryFramework:  "Development Frameworks",
	CategoryStorage:    "Storage Solutions",
	CategoryWallet:     "Wallets & Authentication",
	CategoryCompute:    "Compute & Oracles",
	CategoryFrontend:   "Frontend Libraries",
}

// CategoryName returns the display name for a category, or the raw value.
func CategoryName(c Category) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Title renders the bundle title for a project type and chain name.
// Chains without a catalog row are named from fallbackChainNames, or
// unknownChainName for "other", rather than rendering an empty or
// undefined chain as earlier clients did.
func Title(projectType ProjectType, chainName string) string {
	format, ok := titleFormats[projectType]
	if !ok {
		format = defaultTitleFormat
	}
	return fmt.Sprintf(format, chainName)
}

// Description renders the bundle description.
func Description(level ExperienceLevel, projectType ProjectType, chainName string) string {
	return fmt.Sprintf("Customized stack recommendation for %s developers building a %s project on %s.", level, projectType, chainName)
}

func (c *Catalog) chainName(b Blockchain) string {
	if tech, ok := c.Technology(string(b)); ok {
		return tech.Name
	}
	if name, ok := fallbackChainNames[b]; ok {
		return name
	}
	return unknownChainName
}
