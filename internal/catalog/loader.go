package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// file is the on-disk catalog document shape.
type file struct {
	Games []Game `yaml:"games" json:"games"`
}

// Load parses a YAML catalog document, validates it against the CUE schema,
// and builds a Catalog from it.
//
// Validation is two-layered: the CUE schema rejects structural problems
// (unknown categories, missing fields, non-positive requirements) with
// positioned messages, and New rejects semantic ones (duplicate IDs).
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	if err := validateSchema(f); err != nil {
		return nil, err
	}
	return New(f.Games)
}

// LoadFile reads and loads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Load(data)
}

// Default returns the embedded default catalog.
// Panics if the embedded data is invalid, which indicates a build defect.
func Default() *Catalog {
	c, err := Load(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default catalog invalid: %v", err))
	}
	return c
}

// validateSchema unifies the decoded document with the embedded CUE schema.
func validateSchema(f file) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("catalog: compile schema: %w", err)
	}

	data := ctx.Encode(f)
	if err := data.Err(); err != nil {
		return fmt.Errorf("catalog: encode document: %w", err)
	}

	unified := schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("catalog: schema validation: %w", err)
	}
	return nil
}
