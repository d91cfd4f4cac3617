package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SierraSoftworks/connor"
	"github.com/go-json-experiment/json"
	"github.com/google/btree"

	"github.com/five82/citadel/internal/character"
	"github.com/five82/citadel/internal/rickmorty"
)

//go:embed dataset.json
var embeddedDataset []byte

// Catalog is an immutable set of characters ordered by id.
type Catalog struct {
	tree *btree.BTreeG[*rickmorty.CharacterDTO]
}

// Filter narrows Find. Empty fields match everything. Name is a
// case-insensitive substring; the others are case-insensitive exact matches.
type Filter struct {
	Name    string
	Status  string
	Species string
	Gender  string
}

// NewCatalog indexes records by id. A later record replaces an earlier one
// with the same id.
func NewCatalog(records []rickmorty.CharacterDTO) (*Catalog, error) {
	tree := btree.NewG(32, func(a, b *rickmorty.CharacterDTO) bool {
		return a.ID < b.ID
	})
	for i := range records {
		record := records[i]
		if record.ID <= 0 {
			return nil, fmt.Errorf("record %d: id must be positive, got %d", i, record.ID)
		}
		tree.ReplaceOrInsert(&record)
	}
	return &Catalog{tree: tree}, nil
}

// LoadCatalog decodes a JSON array of characters.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var records []rickmorty.CharacterDTO
	if err := json.UnmarshalRead(r, &records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return NewCatalog(records)
}

// LoadCatalogFile reads a dataset from path, or the embedded dataset when path
// is empty.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadCatalog(f)
}

// DefaultCatalog returns the dataset compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(embeddedDataset))
}

func (c *Catalog) Len() int {
	return c.tree.Len()
}

// Get returns the character with id.
func (c *Catalog) Get(id int) (rickmorty.CharacterDTO, bool) {
	found, ok := c.tree.Get(&rickmorty.CharacterDTO{ID: id})
	if !ok {
		return rickmorty.CharacterDTO{}, false
	}
	return *found, true
}

// Find returns the characters matching f in id order.
func (c *Catalog) Find(f Filter) ([]rickmorty.CharacterDTO, error) {
	conditions := f.conditions()
	name := character.Fold(f.Name)

	var (
		out      []rickmorty.CharacterDTO
		matchErr error
	)
	c.tree.Ascend(func(item *rickmorty.CharacterDTO) bool {
		if name != "" && !strings.Contains(character.Fold(item.Name), name) {
			return true
		}
		if len(conditions) > 0 {
			ok, err := connor.Match(conditions, attributes(item))
			if err != nil {
				matchErr = fmt.Errorf("match character %d: %w", item.ID, err)
				return false
			}
			if !ok {
				return true
			}
		}
		out = append(out, *item)
		return true
	})
	if matchErr != nil {
		return nil, matchErr
	}
	return out, nil
}

func (f Filter) conditions() map[string]interface{} {
	conditions := map[string]interface{}{}
	for field, value := range map[string]string{
		"status":  f.Status,
		"species": f.Species,
		"gender":  f.Gender,
	} {
		if value == "" {
			continue
		}
		conditions[field] = map[string]interface{}{"$eq": character.Fold(value)}
	}
	return conditions
}

func attributes(item *rickmorty.CharacterDTO) map[string]interface{} {
	return map[string]interface{}{
		"status":  character.Fold(item.Status),
		"species": character.Fold(item.Species),
		"gender":  character.Fold(item.Gender),
	}
}
