// Package ledger owns a character's scalar balances: the two currencies,
// experience and level. All mutations are pure functions over a loaded
// character row; persistence and locking belong to the unit of work that
// loaded it.
package ledger

import (
	"fmt"

	"github.com/undercity-game/undercity/internal/domain"
)

// Credit increases a currency balance
func Credit(c *domain.Character, currency domain.Currency, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: credit of %d", domain.ErrInvalidAmount, amount)
	}
	c.SetBalance(currency, c.Balance(currency)+amount)
	return nil
}

// Debit decreases a currency balance, never below zero
func Debit(c *domain.Character, currency domain.Currency, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: debit of %d", domain.ErrInvalidAmount, amount)
	}
	balance := c.Balance(currency)
	if balance < amount {
		return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, amount, balance)
	}
	c.SetBalance(currency, balance-amount)
	return nil
}

// Deposit moves cash into the bank balance as one atomic step
func Deposit(c *domain.Character, amount int64) error {
	if err := Debit(c, domain.CurrencyCash, amount); err != nil {
		return err
	}
	c.BankBalance += amount
	return nil
}

// Withdraw moves banked cash back to the pocket balance
func Withdraw(c *domain.Character, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdraw of %d", domain.ErrInvalidAmount, amount)
	}
	if c.BankBalance < amount {
		return fmt.Errorf("%w: need %d, have %d banked", domain.ErrInsufficientFunds, amount, c.BankBalance)
	}
	c.BankBalance -= amount
	c.MoneyBalance += amount
	return nil
}

// CreditExperience adds experience and runs the level-up loop: each time
// the threshold for the current level is crossed it is subtracted, the
// level increments, and HP/energy are reset to the new level's maximum
// (full refill). Terminates in O(levels gained); MaxLevel bounds the loop.
func CreditExperience(c *domain.Character, amount int64) (levelsGained int, err error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: experience credit of %d", domain.ErrInvalidAmount, amount)
	}

	c.Exp += amount
	for c.Level < MaxLevel && c.Exp >= ExpNeeded(c.Level) {
		c.Exp -= ExpNeeded(c.Level)
		c.Level++
		levelsGained++
		applyLevelStats(c)
	}
	return levelsGained, nil
}

// applyLevelStats recomputes derived stats from level and refills them
func applyLevelStats(c *domain.Character) {
	c.MaxHP = MaxHPForLevel(c.Level)
	c.HP = c.MaxHP
	c.MaxEnergy = MaxEnergyForLevel(c.Level)
	c.Energy = c.MaxEnergy
}

// NewCharacter returns a level-1 character with starting balances
func NewCharacter(id int64) *domain.Character {
	c := &domain.Character{
		ID:           id,
		Level:        domain.StartingLevel,
		MoneyBalance: domain.StartingMoney,
	}
	applyLevelStats(c)
	return c
}
