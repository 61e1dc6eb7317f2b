// Package bankservice manages business logic layer of the ledger bank.
package bankservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/csagrp6/chainbank/internal/directory"
	"github.com/csagrp6/chainbank/internal/domain"
	"github.com/csagrp6/chainbank/internal/ledger"
)

// Service orchestrates account operations: it authenticates against the
// directory, mutates balances and appends one ledger block per committed
// mutating operation. Failed operations leave both structures untouched.
//
// Service is not internally synchronized. A concurrent caller must hold a
// single mutual-exclusion boundary spanning the whole operation, because
// authenticate-then-mutate is not atomic on its own.
type Service struct {
	directory *directory.Directory
	ledger    *ledger.Ledger
}

// New returns a service owning the given directory and ledger.
func New(d *directory.Directory, l *ledger.Ledger) *Service {
	return &Service{directory: d, ledger: l}
}

// CreateAccount validates the request, allocates the next account number,
// registers the account with the initial deposit as its balance and appends
// a ledger block describing the creation.
//
// The mobile check is length-only and the initial deposit is accepted
// unvalidated, matching the persisted data this system exchanges.
func (s *Service) CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if arg.Password != arg.ConfirmPassword {
		return domain.Account{}, domain.ErrPasswordMismatch
	}

	if len(arg.Mobile) != 10 {
		return domain.Account{}, domain.ErrInvalidMobileFormat
	}

	acc := &domain.Account{
		AccountNumber: s.directory.NextAccountNumber(),
		Name:          arg.Name,
		Mobile:        arg.Mobile,
		Password:      arg.Password,
		Balance:       arg.InitialDeposit,
	}

	if err := s.directory.Insert(acc); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, err
	}

	s.ledger.Append(fmt.Sprintf(
		"Created account for %s with initial deposit of Rs.%s. Account Number: %s",
		acc.Name, arg.InitialDeposit.StringFixed(2), acc.AccountNumber,
	))

	l.Info().Str("account_number", acc.AccountNumber).Msg("account created")

	return *acc, nil
}

// Authenticate reports whether the account exists and the password matches
// the stored one exactly. It has no side effects.
func (s *Service) Authenticate(ctx context.Context, accountNumber, password string) bool {
	acc, err := s.directory.Find(accountNumber)

	return err == nil && acc.Password == password
}

// Deposit authenticates and then adds amount to the account balance,
// appending a ledger block with the new balance. The amount is not checked
// for positivity.
func (s *Service) Deposit(ctx context.Context, accountNumber, password string, amount decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !s.Authenticate(ctx, accountNumber, password) {
		l.Info().Str("account_number", accountNumber).Msg("deposit authentication failed")
		return domain.Account{}, domain.ErrAuthenticationFailed
	}

	acc, err := s.directory.Find(accountNumber)
	if err != nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	acc.Balance = acc.Balance.Add(amount)

	s.ledger.Append(fmt.Sprintf(
		"Deposited Rs.%s to %s. New Balance: Rs.%s",
		amount.StringFixed(2), acc.AccountNumber, acc.Balance.StringFixed(2),
	))

	return *acc, nil
}

// Withdraw authenticates and then subtracts amount from the account balance,
// appending a ledger block with the new balance. It returns
// domain.ErrInsufficientFunds without mutating anything if the balance does
// not cover the amount.
func (s *Service) Withdraw(ctx context.Context, accountNumber, password string, amount decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !s.Authenticate(ctx, accountNumber, password) {
		l.Info().Str("account_number", accountNumber).Msg("withdrawal authentication failed")
		return domain.Account{}, domain.ErrAuthenticationFailed
	}

	acc, err := s.directory.Find(accountNumber)
	if err != nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if acc.Balance.LessThan(amount) {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	acc.Balance = acc.Balance.Sub(amount)

	s.ledger.Append(fmt.Sprintf(
		"Withdrawn Rs.%s from %s. New Balance: Rs.%s",
		amount.StringFixed(2), acc.AccountNumber, acc.Balance.StringFixed(2),
	))

	return *acc, nil
}

// Transfer authenticates the source account only, then moves amount from the
// source to the destination and appends a single ledger block. On any
// failure neither balance changes, so the sum of the two balances is
// invariant across the call.
func (s *Service) Transfer(ctx context.Context, fromAccount, toAccount, password string, amount decimal.Decimal) (domain.Account, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !s.Authenticate(ctx, fromAccount, password) {
		l.Info().Str("account_number", fromAccount).Msg("transfer authentication failed")
		return domain.Account{}, domain.Account{}, domain.ErrAuthenticationFailed
	}

	from, err := s.directory.Find(fromAccount)
	if err != nil {
		return domain.Account{}, domain.Account{}, domain.ErrAccountNotFound
	}

	to, err := s.directory.Find(toAccount)
	if err != nil {
		return domain.Account{}, domain.Account{}, domain.ErrAccountNotFound
	}

	if from.Balance.LessThan(amount) {
		return domain.Account{}, domain.Account{}, domain.ErrInsufficientFunds
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	s.ledger.Append(fmt.Sprintf(
		"Transferred Rs.%s from %s to %s",
		amount.StringFixed(2), from.AccountNumber, to.AccountNumber,
	))

	return *from, *to, nil
}

// Accounts returns a snapshot of every account in insertion order.
func (s *Service) Accounts() []domain.Account {
	return s.directory.Accounts()
}

// Blocks returns a snapshot of the ledger in append order.
func (s *Service) Blocks() []domain.Block {
	return s.ledger.Blocks()
}
