package catalog

import (
	"fmt"
	"sort"

	"github.com/undercity-game/undercity/internal/domain"
)

// Lookup resolves item references against the loaded catalog.
// Implementations are safe for concurrent readers.
type Lookup interface {
	Get(ref domain.ItemRef) (*domain.CatalogItem, error)
	ListKind(kind domain.ItemKind) []domain.CatalogItem
	All() []domain.CatalogItem
}

type catalog struct {
	byRef  map[domain.ItemRef]domain.CatalogItem
	sorted []domain.CatalogItem
}

// New builds a Lookup from a validated config. The catalog is immutable
// after construction; restart to pick up file changes.
func New(config *Config) (Lookup, error) {
	if err := Validate(config); err != nil {
		return nil, err
	}

	byRef := make(map[domain.ItemRef]domain.CatalogItem, len(config.Items))
	sorted := make([]domain.CatalogItem, 0, len(config.Items))
	for i := range config.Items {
		item := config.Items[i].toCatalogItem()
		byRef[item.Ref] = item
		sorted = append(sorted, item)
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Ref.Kind != sorted[j].Ref.Kind {
			return sorted[i].Ref.Kind < sorted[j].Ref.Kind
		}
		return sorted[i].Ref.ID < sorted[j].Ref.ID
	})

	return &catalog{byRef: byRef, sorted: sorted}, nil
}

// NewFromFile loads, validates and indexes a catalog file in one step
func NewFromFile(path string) (Lookup, error) {
	config, err := Load(path)
	if err != nil {
		return nil, err
	}
	return New(config)
}

func (c *catalog) Get(ref domain.ItemRef) (*domain.CatalogItem, error) {
	item, ok := c.byRef[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, ref)
	}
	return &item, nil
}

func (c *catalog) ListKind(kind domain.ItemKind) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0)
	for _, item := range c.sorted {
		if item.Ref.Kind == kind {
			items = append(items, item)
		}
	}
	return items
}

func (c *catalog) All() []domain.CatalogItem {
	items := make([]domain.CatalogItem, len(c.sorted))
	copy(items, c.sorted)
	return items
}
