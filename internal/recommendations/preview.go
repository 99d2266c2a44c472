package recommendations

import "web3stack-api/internal/stack"

// PreviewLimits bounds what a locked user sees.
type PreviewLimits struct {
	Categories int
	Resources  int
}

// DefaultPreviewLimits shows two categories and two resources.
func DefaultPreviewLimits() PreviewLimits {
	return PreviewLimits{Categories: 2, Resources: 2}
}

// Group is one category of the recommended stack.
type Group struct {
	Category      stack.Category `json:"category" yaml:"category"`
	Name          string         `json:"name" yaml:"name"`
	TechnologyIDs []string       `json:"technologyIds" yaml:"technologyIds"`
	Locked        bool           `json:"locked" yaml:"locked"`
}

// Preview describes how a client should present a bundle. It is advisory:
// the bundle itself is always complete.
type Preview struct {
	Unlocked         bool    `json:"unlocked" yaml:"unlocked"`
	Groups           []Group `json:"groups" yaml:"groups"`
	LockedCategories int     `json:"lockedCategories" yaml:"lockedCategories"`
	VisibleResources int     `json:"visibleResources" yaml:"visibleResources"`
	LockedResources  int     `json:"lockedResources" yaml:"lockedResources"`
}

// BuildPreview groups the bundle's technologies in display order and marks
// what falls outside limits unless the user is unlocked.
func BuildPreview(b stack.Bundle, limits PreviewLimits, unlocked bool) Preview {
	p := Preview{Unlocked: unlocked, Groups: make([]Group, 0, len(stack.CategoryOrder))}
	for _, cat := range stack.CategoryOrder {
		var ids []string
		for _, t := range b.Technologies {
			if t.Category == cat {
				ids = append(ids, t.ID)
			}
		}
		if len(ids) == 0 {
			continue
		}
		locked := !unlocked && len(p.Groups) >= limits.Categories
		if locked {
			p.LockedCategories++
		}
		p.Groups = append(p.Groups, Group{
			Category:      cat,
			Name:          stack.CategoryName(cat),
			TechnologyIDs: ids,
			Locked:        locked,
		})
	}

	p.VisibleResources = len(b.Resources)
	if !unlocked && p.VisibleResources > limits.Resources {
		p.VisibleResources = limits.Resources
	}
	p.LockedResources = len(b.Resources) - p.VisibleResources
	return p
}
