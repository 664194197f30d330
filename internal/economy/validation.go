package economy

import (
	"fmt"

	"github.com/undercity-game/undercity/internal/domain"
)

func wrapInvalidQuantity(quantity int) error {
	return fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidInput)
}

func wrapQuantityExceedsMax(quantity int) error {
	return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, quantity, domain.MaxTransactionQuantity, domain.ErrInvalidInput)
}

func wrapNotOwned(ref domain.ItemRef) error {
	return fmt.Errorf("%w: %s", domain.ErrItemNotOwned, ref)
}
