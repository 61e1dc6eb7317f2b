// Package directory manages the indexed account store.
package directory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csagrp6/chainbank/internal/domain"
	"github.com/csagrp6/chainbank/pkg/checksumpkg"
)

// BucketCount is the fixed size of the account number hash index.
const BucketCount = 10

const accountNumberPrefix = "CSAGRP6A"

// Directory maps account numbers to accounts with O(1) expected lookup.
//
// Accounts are owned by an insertion-ordered slice used for enumeration and
// are referenced a second time from the hash bucket chains used for lookup.
// The two representations are independent, so enumeration yields every
// account exactly once regardless of bucket collisions.
//
// Directory is not safe for concurrent use; callers serialize access.
type Directory struct {
	accounts          []*domain.Account
	buckets           [BucketCount][]*domain.Account
	nextAccountNumber int
}

// New returns an empty directory with the account number counter at 1.
func New() *Directory {
	return &Directory{nextAccountNumber: 1}
}

// NextAccountNumber allocates the next account number: the fixed prefix plus
// a zero-padded monotonically increasing counter. Numbers are never reused.
func (d *Directory) NextAccountNumber() string {
	n := fmt.Sprintf("%s%03d", accountNumberPrefix, d.nextAccountNumber)
	d.nextAccountNumber++

	return n
}

// Insert places acc into its hash bucket and appends it to the enumeration
// list. It returns domain.ErrAccountExists if the account number is already
// registered.
func (d *Directory) Insert(acc *domain.Account) error {
	if _, err := d.Find(acc.AccountNumber); err == nil {
		return domain.ErrAccountExists
	}

	idx := checksumpkg.Bucket(acc.AccountNumber, BucketCount)
	d.buckets[idx] = append([]*domain.Account{acc}, d.buckets[idx]...)
	d.accounts = append(d.accounts, acc)

	return nil
}

// Find scans the bucket chain selected by the account number checksum for an
// exact match. It returns domain.ErrAccountNotFound if the number is absent.
func (d *Directory) Find(accountNumber string) (*domain.Account, error) {
	idx := checksumpkg.Bucket(accountNumber, BucketCount)

	for _, acc := range d.buckets[idx] {
		if acc.AccountNumber == accountNumber {
			return acc, nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// Accounts returns a snapshot of every account in insertion order.
func (d *Directory) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(d.accounts))
	for _, acc := range d.accounts {
		out = append(out, *acc)
	}

	return out
}

// Len returns the number of registered accounts.
func (d *Directory) Len() int {
	return len(d.accounts)
}

// Restore rebuilds the directory from persisted account rows and advances the
// account number counter past the highest numeric suffix seen, so subsequent
// allocations never collide with restored accounts.
func (d *Directory) Restore(accounts []domain.Account) error {
	for i := range accounts {
		acc := accounts[i]
		if err := d.Insert(&acc); err != nil {
			return fmt.Errorf("restore account %v: %w", acc.AccountNumber, err)
		}

		suffix := strings.TrimPrefix(acc.AccountNumber, accountNumberPrefix)
		if n, err := strconv.Atoi(suffix); err == nil && n >= d.nextAccountNumber {
			d.nextAccountNumber = n + 1
		}
	}

	return nil
}
