package stack

import (
	"slices"

	"github.com/google/uuid"

	"web3stack-api/internal/shared/telemetry"
)

// MaxResources caps the learning resources in a bundle.
const MaxResources = 5

// Bundle is a complete, self-contained recommendation.
type Bundle struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	Technologies []Technology `json:"technologies" yaml:"technologies"`
	Resources    []Resource   `json:"resources" yaml:"resources"`
}

// Resolver maps answers to a Bundle. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	catalog *Catalog
	rules   []Rule
	newID   func() string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRules replaces the default selection rules.
func WithRules(rules []Rule) Option {
	return func(r *Resolver) {
		r.rules = slices.Clone(rules)
	}
}

// WithIDFunc replaces bundle id generation.
func WithIDFunc(fn func() string) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewResolver builds a Resolver over catalog, or the embedded catalog when nil.
func NewResolver(catalog *Catalog, opts ...Option) *Resolver {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	r := &Resolver{
		catalog: catalog,
		rules:   DefaultRules(),
		newID:   newBundleID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog the resolver reads.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve builds the recommendation for answers. It never fails; ids that
// do not resolve to a catalog row are skipped.
func (r *Resolver) Resolve(answers Answers) Bundle {
	techs := r.selectTechnologies(answers)
	chain := r.catalog.chainName(answers.Blockchain)
	return Bundle{
		ID:           r.newID(),
		Title:        Title(answers.ProjectType, chain),
		Description:  Description(answers.ExperienceLevel, answers.ProjectType, chain),
		Technologies: techs,
		Resources:    r.selectResources(techs),
	}
}

func (r *Resolver) selectTechnologies(answers Answers) []Technology {
	out := make([]Technology, 0, 8)
	seen := make(map[string]bool, 8)
	for _, rule := range r.rules {
		for _, id := range rule.Pick(answers) {
			tech, ok := r.catalog.Technology(id)
			if !ok {
				if !rule.Lenient {
					telemetry.Warn("stack.missing_reference", map[string]any{
						"rule":          rule.Name,
						"technology_id": id,
					})
				}
				continue
			}
			if seen[tech.ID] {
				continue
			}
			seen[tech.ID] = true
			out = append(out, tech)
		}
	}
	return out
}

func (r *Resolver) selectResources(techs []Technology) []Resource {
	ids := make(map[string]bool, len(techs))
	for _, t := range techs {
		ids[t.ID] = true
	}
	out := make([]Resource, 0, MaxResources)
	for _, res := range r.catalog.resources {
		if len(out) == MaxResources {
			break
		}
		if slices.ContainsFunc(res.Technologies, func(id string) bool { return ids[id] }) {
			out = append(out, res.clone())
		}
	}
	return out
}

// CheckReferences runs every strict rule over the answer space the rules
// branch on and returns the sorted ids the catalog is missing.
func (r *Resolver) CheckReferences() []string {
	useCaseSets := [][]UseCase{nil, {UseStorage}, {UseCompute}, {UseStorage, UseCompute}}
	missing := make(map[string]bool)
	for _, chain := range Blockchains {
		for _, level := range ExperienceLevels {
			for _, useCases := range useCaseSets {
				a := Answers{ProjectType: ProjectOther, ExperienceLevel: level, Blockchain: chain, UseCases: useCases}
				for _, rule := range r.rules {
					if rule.Lenient {
						continue
					}
					for _, id := range rule.Pick(a) {
						if _, ok := r.catalog.Technology(id); !ok {
							missing[id] = true
						}
					}
				}
			}
		}
	}
	out := make([]string, 0, len(missing))
	for id := range missing {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func newBundleID() string {
	return "stack-" + uuid.NewString()
}
