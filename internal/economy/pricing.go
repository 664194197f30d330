package economy

import (
	"math"

	"github.com/undercity-game/undercity/internal/domain"
)

// DefaultSellFraction applies to kinds without a policy entry
const DefaultSellFraction = 0.25

// sellFractions is the per-kind fraction of the catalog price returned
// when selling. Houses hold value; consumable-adjacent kinds do not.
var sellFractions = map[domain.ItemKind]float64{
	domain.ItemKindWeapon:  0.40,
	domain.ItemKindArmor:   0.40,
	domain.ItemKindHouse:   0.80,
	domain.ItemKindVehicle: 0.50,
	domain.ItemKindSpecial: 0.25,
	domain.ItemKindPet:     0.25,
}

// SellPrice returns the per-unit amount credited when selling the item,
// rounded down to whole currency.
func SellPrice(item *domain.CatalogItem) int64 {
	fraction, ok := sellFractions[item.Ref.Kind]
	if !ok {
		fraction = DefaultSellFraction
	}
	return int64(math.Floor(float64(item.Price) * fraction))
}
