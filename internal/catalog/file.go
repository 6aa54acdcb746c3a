package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/validation"
)

// SchemaName identifies the catalog file schema
const SchemaName = "catalog.schema.json"

//go:embed schema/catalog.schema.json
var catalogSchema []byte

// File is the on-disk catalog format
type File struct {
	Achievements []domain.Achievement `json:"achievements"`
}

// Load returns the catalog defined in path, or the built-in catalog when
// path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile reads, schema-checks and seals a catalog file. Definitions keep
// file order, which becomes evaluation order.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a sealed catalog from catalog file bytes
func Parse(data []byte) (*Catalog, error) {
	v := validation.NewSchemaValidator()
	if err := v.AddSchema(SchemaName, catalogSchema); err != nil {
		return nil, err
	}
	if err := v.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidAchievement, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}

	c := New()
	for _, def := range f.Achievements {
		if err := c.Register(def); err != nil {
			return nil, err
		}
	}
	c.Seal()
	return c, nil
}
