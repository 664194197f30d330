package catalog

// Error message constants
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog file: %w"
	ErrMsgConfigNil            = "catalog config is nil"
	ErrMsgNoItemsDefined       = "no items defined"

	ErrFmtItemInvalidKind    = "%w: item at index %d has unknown kind '%s'"
	ErrFmtItemInvalidID      = "%w: item at index %d has non-positive id %d"
	ErrFmtItemEmptyName      = "%w: item %s has empty name"
	ErrFmtItemNegativePrice  = "%w: item %s has negative price %d"
	ErrFmtItemBadCurrency    = "%w: item %s has unknown currency '%s'"
	ErrFmtDuplicateReference = "%w: %s"
)
