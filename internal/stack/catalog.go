package stack

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"io"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

// Category groups technologies by their role in a stack.
type Category string

const (
	CategoryBlockchain Category = "blockchain"
	CategoryLanguage   Category = "language"
	CategoryFramework  Category = "framework"
	CategoryStorage    Category = "storage"
	CategoryWallet     Category = "wallet"
	CategoryCompute    Category = "compute"
	CategoryFrontend   Category = "frontend"
)

// Difficulty is the learning curve of a technology.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ResourceType is the kind of learning material.
type ResourceType string

const (
	ResourceDocumentation ResourceType = "documentation"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceVideo         ResourceType = "video"
	ResourceArticle       ResourceType = "article"
	ResourceGitHub        ResourceType = "github"
)

var (
	categories    = []Category{CategoryBlockchain, CategoryLanguage, CategoryFramework, CategoryStorage, CategoryWallet, CategoryCompute, CategoryFrontend}
	difficulties  = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
	resourceTypes = []ResourceType{ResourceDocumentation, ResourceTutorial, ResourceVideo, ResourceArticle, ResourceGitHub}
)

// Technology is one row of the technology reference table.
type Technology struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Category    Category   `json:"category" yaml:"category"`
	URL         string     `json:"url" yaml:"url"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Resource is one row of the learning resource table.
type Resource struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	URL          string       `json:"url" yaml:"url"`
	Type         ResourceType `json:"type" yaml:"type"`
	Technologies []string     `json:"technologies" yaml:"technologies"`
}

func (r Resource) clone() Resource {
	r.Technologies = slices.Clone(r.Technologies)
	return r
}

// Catalog holds the read-only technology and resource tables.
// Accessors return copies; a Catalog is safe for concurrent use.
type Catalog struct {
	technologies []Technology
	resources    []Resource
	byID         map[string]int
	warnings     []string
}

type catalogFile struct {
	Technologies []Technology `yaml:"technologies"`
	Resources    []Resource   `yaml:"resources"`
}

//go:embed catalog.yaml
var embeddedCatalog []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := ParseCatalog(embeddedCatalog)
	if err != nil {
		panic(fmt.Sprintf("stack: embedded catalog: %v", err))
	}
	return c
})

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// LoadCatalogFile reads a catalog from a YAML file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidCatalog, path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var raw catalogFile
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	return newCatalog(raw.Technologies, raw.Resources)
}

func newCatalog(techs []Technology, resources []Resource) (*Catalog, error) {
	if len(techs) == 0 {
		return nil, fmt.Errorf("%w: no technologies", ErrInvalidCatalog)
	}
	policy := bluemonday.StrictPolicy()
	var problems []string

	c := &Catalog{
		technologies: make([]Technology, 0, len(techs)),
		resources:    make([]Resource, 0, len(resources)),
		byID:         make(map[string]int, len(techs)),
	}
	for i, t := range techs {
		t.ID = strings.TrimSpace(t.ID)
		t.Name = plainText(policy, t.Name)
		t.Description = plainText(policy, t.Description)
		t.URL = strings.TrimSpace(t.URL)
		switch {
		case t.ID == "":
			problems = append(problems, fmt.Sprintf("technologies[%d]: id is required", i))
			continue
		case hasID(c.byID, t.ID):
			problems = append(problems, fmt.Sprintf("technology %q: duplicate id", t.ID))
			continue
		}
		if t.Name == "" {
			problems = append(problems, fmt.Sprintf("technology %q: name is required", t.ID))
		}
		if !slices.Contains(categories, t.Category) {
			problems = append(problems, fmt.Sprintf("technology %q: unknown category %q", t.ID, t.Category))
		}
		if !slices.Contains(difficulties, t.Difficulty) {
			problems = append(problems, fmt.Sprintf("technology %q: unknown difficulty %q", t.ID, t.Difficulty))
		}
		if !validURL(t.URL) {
			problems = append(problems, fmt.Sprintf("technology %q: url must be absolute http(s)", t.ID))
		}
		c.byID[t.ID] = len(c.technologies)
		c.technologies = append(c.technologies, t)
	}

	seen := make(map[string]bool, len(resources))
	for i, r := range resources {
		r.ID = strings.TrimSpace(r.ID)
		r.Title = plainText(policy, r.Title)
		r.Description = plainText(policy, r.Description)
		r.URL = strings.TrimSpace(r.URL)
		switch {
		case r.ID == "":
			problems = append(problems, fmt.Sprintf("resources[%d]: id is required", i))
			continue
		case seen[r.ID]:
			problems = append(problems, fmt.Sprintf("resource %q: duplicate id", r.ID))
			continue
		}
		seen[r.ID] = true
		if r.Title == "" {
			problems = append(problems, fmt.Sprintf("resource %q: title is required", r.ID))
		}
		if !slices.Contains(resourceTypes, r.Type) {
			problems = append(problems, fmt.Sprintf("resource %q: unknown type %q", r.ID, r.Type))
		}
		if !validURL(r.URL) {
			problems = append(problems, fmt.Sprintf("resource %q: url must be absolute http(s)", r.ID))
		}
		if len(r.Technologies) == 0 {
			problems = append(problems, fmt.Sprintf("resource %q: technologies must not be empty", r.ID))
		}
		for _, techID := range r.Technologies {
			if !hasID(c.byID, techID) {
				c.warnings = append(c.warnings, fmt.Sprintf("resource %q references unknown technology %q", r.ID, techID))
			}
		}
		c.resources = append(c.resources, r.clone())
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return c, nil
}

// Technology looks up a technology by id.
func (c *Catalog) Technology(id string) (Technology, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Technology{}, false
	}
	return c.technologies[idx], true
}

// Technologies returns a copy of the technology table in authored order.
func (c *Catalog) Technologies() []Technology {
	return slices.Clone(c.technologies)
}

// Resources returns a copy of the resource table in authored order.
func (c *Catalog) Resources() []Resource {
	out := make([]Resource, len(c.resources))
	for i, r := range c.resources {
		out[i] = r.clone()
	}
	return out
}

// Warnings lists non-fatal integrity issues found while loading.
func (c *Catalog) Warnings() []string {
	return slices.Clone(c.warnings)
}

func hasID(index map[string]int, id string) bool {
	_, ok := index[id]
	return ok
}

// plainText strips markup and decodes entities. Entity-encoded tags are
// decoded before sanitizing, and the pass repeats until stable so nested
// encodings cannot surface as live markup.
func plainText(policy *bluemonday.Policy, s string) string {
	for range maxPlainTextPasses {
		out := html.UnescapeString(policy.Sanitize(html.UnescapeString(s)))
		if out == s {
			return strings.TrimSpace(out)
		}
		s = out
	}
	return strings.TrimSpace(angleBrackets.Replace(s))
}

const maxPlainTextPasses = 8

var angleBrackets = strings.NewReplacer("<", "", ">", "")

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}
