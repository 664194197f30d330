package domain

// MaxTransactionQuantity caps the item quantity in a single buy/sell
const MaxTransactionQuantity = 10000

// Starting values for newly created characters
const (
	StartingLevel  = 1
	StartingMoney  = int64(500)
	StartingHP     = 100
	StartingEnergy = 50
)
