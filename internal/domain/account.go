// Package domain provides definitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists indicates that an account with the given number is already registered.
	ErrAccountExists = errors.New("account number already exists")
	// ErrAuthenticationFailed indicates a wrong password or an unknown account.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrInsufficientFunds indicates that the account balance does not cover the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPasswordMismatch indicates that password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidMobileFormat indicates that the mobile number is not exactly 10 characters long.
	ErrInvalidMobileFormat = errors.New("mobile number must be exactly 10 characters long")
	// ErrInvalidAmount indicates an amount that could not be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Account holds a single bank account record.
//
// Password is stored and compared verbatim to keep round-trip parity with
// the persisted account files; it is never serialized in responses.
type Account struct {
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	Mobile        string          `json:"mobile"`
	Password      string          `json:"-"`
	Balance       decimal.Decimal `json:"balance"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Name            string
	Mobile          string
	Password        string
	ConfirmPassword string
	InitialDeposit  decimal.Decimal
}
