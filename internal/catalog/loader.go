// Package catalog provides read-only lookup of item reference data loaded
// from a versioned JSON file at startup.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/undercity-game/undercity/internal/domain"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateReference = errors.New("duplicate item reference")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON catalog file
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def represents a single item definition in the JSON
type Def struct {
	Kind     string             `json:"kind"`
	ID       int                `json:"id"`
	Name     string             `json:"name"`
	Price    int64              `json:"price"`
	Currency string             `json:"currency,omitempty"`
	Rarity   string             `json:"rarity,omitempty"`
	Bonuses  domain.StatBonuses `json:"bonuses,omitempty"`
}

// Load reads and parses a catalog JSON file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	seen := make(map[domain.ItemRef]bool, len(config.Items))

	for i := range config.Items {
		def := &config.Items[i]

		kind := domain.ItemKind(def.Kind)
		if !kind.IsValid() {
			return fmt.Errorf(ErrFmtItemInvalidKind, ErrInvalidConfig, i, def.Kind)
		}
		if def.ID <= 0 {
			return fmt.Errorf(ErrFmtItemInvalidID, ErrInvalidConfig, i, def.ID)
		}

		ref := domain.ItemRef{Kind: kind, ID: def.ID}
		if seen[ref] {
			return fmt.Errorf(ErrFmtDuplicateReference, ErrDuplicateReference, ref)
		}
		seen[ref] = true

		if def.Name == "" {
			return fmt.Errorf(ErrFmtItemEmptyName, ErrInvalidConfig, ref)
		}
		if def.Price < 0 {
			return fmt.Errorf(ErrFmtItemNegativePrice, ErrInvalidConfig, ref, def.Price)
		}
		if def.Currency != "" &&
			def.Currency != string(domain.CurrencyCash) &&
			def.Currency != string(domain.CurrencyCredits) {
			return fmt.Errorf(ErrFmtItemBadCurrency, ErrInvalidConfig, ref, def.Currency)
		}
	}

	return nil
}

func (d *Def) toCatalogItem() domain.CatalogItem {
	currency := domain.Currency(d.Currency)
	if currency == "" {
		currency = domain.CurrencyCash
	}
	return domain.CatalogItem{
		Ref:      domain.ItemRef{Kind: domain.ItemKind(d.Kind), ID: d.ID},
		Name:     d.Name,
		Price:    d.Price,
		Currency: currency,
		Rarity:   d.Rarity,
		Bonuses:  d.Bonuses,
	}
}
