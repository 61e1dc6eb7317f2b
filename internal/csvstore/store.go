// Package csvstore persists the account directory and the ledger as flat
// CSV files.
//
// Saves are full rewrites through a temporary file replaced with os.Rename,
// so a crash mid-save never corrupts the previous snapshot. Fields are
// quoted per RFC 4180 on write; the reader also accepts legacy rows written
// without quoting, as long as field values carry no raw delimiters.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/csagrp6/chainbank/internal/domain"
)

var accountsHeader = []string{"AccountNumber", "Name", "Mobile", "Password", "Balance"}

var blocksHeader = []string{"Index", "TransactionID", "PreviousHash", "Timestamp", "Data", "Hash"}

// Store reads and writes snapshots of directory and ledger state.
type Store struct {
	accountsFile string
	blocksFile   string
}

// New returns a store bound to the given account and transaction file paths.
func New(accountsFile, blocksFile string) Store {
	return Store{accountsFile: accountsFile, blocksFile: blocksFile}
}

// LoadAccounts reads all persisted account rows. A missing file is created
// holding only the header and yields no rows.
func (s Store) LoadAccounts() ([]domain.Account, error) {
	rows, err := readAll(s.accountsFile, accountsHeader)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(rows))

	for _, row := range rows {
		balance, err := decimal.NewFromString(row[4])
		if err != nil {
			return nil, fmt.Errorf("parse balance for account %v: %w", row[0], err)
		}

		accounts = append(accounts, domain.Account{
			AccountNumber: row[0],
			Name:          row[1],
			Mobile:        row[2],
			Password:      row[3],
			Balance:       balance,
		})
	}

	return accounts, nil
}

// SaveAccounts rewrites the accounts file with one row per account, balances
// rendered with two decimal places.
func (s Store) SaveAccounts(accounts []domain.Account) error {
	rows := make([][]string, 0, len(accounts))

	for _, acc := range accounts {
		rows = append(rows, []string{
			acc.AccountNumber,
			acc.Name,
			acc.Mobile,
			acc.Password,
			acc.Balance.StringFixed(2),
		})
	}

	return writeAll(s.accountsFile, accountsHeader, rows)
}

// LoadBlocks reads all persisted ledger rows in file order. A missing file
// is created holding only the header and yields no rows.
func (s Store) LoadBlocks() ([]domain.Block, error) {
	rows, err := readAll(s.blocksFile, blocksHeader)
	if err != nil {
		return nil, err
	}

	blocks := make([]domain.Block, 0, len(rows))

	for _, row := range rows {
		index, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("parse index of block %v: %w", row[1], err)
		}

		unix, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp of block %v: %w", row[1], err)
		}

		blocks = append(blocks, domain.Block{
			Index:         index,
			TransactionID: row[1],
			PreviousHash:  row[2],
			Timestamp:     time.Unix(unix, 0),
			Data:          row[4],
			Hash:          row[5],
		})
	}

	return blocks, nil
}

// SaveBlocks rewrites the transactions file with one row per block in append
// order, timestamps as Unix epoch seconds.
func (s Store) SaveBlocks(blocks []domain.Block) error {
	rows := make([][]string, 0, len(blocks))

	for _, b := range blocks {
		rows = append(rows, []string{
			strconv.Itoa(b.Index),
			b.TransactionID,
			b.PreviousHash,
			strconv.FormatInt(b.Timestamp.Unix(), 10),
			b.Data,
			b.Hash,
		})
	}

	return writeAll(s.blocksFile, blocksHeader, rows)
}

func readAll(path string, header []string) ([][]string, error) {
	if err := ensureExists(path, header); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %v: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// First record is the header.
	return records[1:], nil
}

func writeAll(path string, header []string, rows [][]string) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %v: %w", tmp, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %v: %w", tmp, err)
	}

	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %v: %w", tmp, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %v: %w", tmp, err)
	}

	return os.Rename(tmp, path)
}

func ensureExists(path string, header []string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %v: %w", path, err)
	}

	return writeAll(path, header, nil)
}
