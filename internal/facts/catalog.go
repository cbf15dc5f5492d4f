// Package facts loads the editor-curated reference statements.
package facts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ppiankov/greenlie/internal/model"
)

//go:embed data/green-lie-facts.json
var defaultCatalog []byte

//go:embed data/statement.schema.json
var statementSchema []byte

const schemaURL = "https://greenlie.schemas.local/facts.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileErr     error
	compileOnce    sync.Once
)

type document struct {
	Statements []model.Statement `json:"sustainability_statements"`
}

// Catalog is the read-only set of reference statements
type Catalog struct {
	statements []model.Statement
	byID       map[string]int
}

// Default returns the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the embedded catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the statement schema and decodes it
func Parse(data []byte) (*Catalog, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode statements: %w", err)
	}

	return New(doc.Statements)
}

// New builds a catalog from already decoded statements
func New(statements []model.Statement) (*Catalog, error) {
	c := &Catalog{
		statements: make([]model.Statement, 0, len(statements)),
		byID:       make(map[string]int, len(statements)),
	}
	for _, s := range statements {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate statement id %q", s.ID)
		}
		c.byID[s.ID] = len(c.statements)
		c.statements = append(c.statements, s)
	}
	return c, nil
}

// Lookup returns the statement with the given id
func (c *Catalog) Lookup(id string) (model.Statement, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return model.Statement{}, false
	}
	return c.statements[idx], true
}

// All returns a copy of the statements in catalog order
func (c *Catalog) All() []model.Statement {
	out := make([]model.Statement, len(c.statements))
	copy(out, c.statements)
	return out
}

// Len returns the number of statements
func (c *Catalog) Len() int {
	return len(c.statements)
}

// CountByVerdict tallies curated verdict labels by family
func (c *Catalog) CountByVerdict() map[model.Verdict]int {
	counts := map[model.Verdict]int{
		model.VerdictHonest:         0,
		model.VerdictPartiallyValid: 0,
		model.VerdictDishonest:      0,
	}
	for _, s := range c.statements {
		counts[s.VerdictFamily()]++
	}
	return counts
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, bytes.NewReader(statementSchema)); err != nil {
			compileErr = fmt.Errorf("failed to load schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}
