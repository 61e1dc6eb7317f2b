// Command bankcli runs the interactive menu over the ledger bank core,
// persisting the account directory and the transaction chain to CSV files
// after every committed operation and on exit.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/csagrp6/chainbank/internal/bankservice"
	"github.com/csagrp6/chainbank/internal/csvstore"
	"github.com/csagrp6/chainbank/internal/directory"
	"github.com/csagrp6/chainbank/internal/domain"
	"github.com/csagrp6/chainbank/internal/ledger"
	"github.com/csagrp6/chainbank/internal/middleware"
	"github.com/csagrp6/chainbank/pkg/configpkg"
)

type cli struct {
	in      *bufio.Scanner
	service *bankservice.Service
	store   csvstore.Store
}

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)
	ctx := logger.WithContext(context.Background())

	store := csvstore.New(config.UsersFile, config.TransactionsFile)

	accounts, err := store.LoadAccounts()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load accounts")
	}

	blocks, err := store.LoadBlocks()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load transactions")
	}

	dir := directory.New()
	if err := dir.Restore(accounts); err != nil {
		logger.Fatal().Err(err).Msg("cannot restore account directory")
	}

	chain := ledger.New()
	chain.Restore(blocks)

	in := bufio.NewScanner(os.Stdin)
	in.Split(bufio.ScanWords)

	c := &cli{
		in:      in,
		service: bankservice.New(dir, chain),
		store:   store,
	}

	c.run(ctx)
}

func (c *cli) run(ctx context.Context) {
	for {
		fmt.Println("\n--- Bank Menu ---")
		fmt.Println("1. Create Account")
		fmt.Println("2. Deposit Money")
		fmt.Println("3. Withdraw Money")
		fmt.Println("4. Transfer Money")
		fmt.Println("5. View Accounts")
		fmt.Println("6. Exit")
		fmt.Print("Choose an option: ")

		switch c.readToken() {
		case "1":
			c.createAccount(ctx)
		case "2":
			c.deposit(ctx)
		case "3":
			c.withdraw(ctx)
		case "4":
			c.transfer(ctx)
		case "5":
			c.printAccounts()
		case "6":
			fmt.Println("Exiting and saving data...")
			c.save(ctx)
			fmt.Println("Data saved. Exiting program.")

			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func (c *cli) readToken() string {
	if !c.in.Scan() {
		// EOF on stdin behaves like choosing exit.
		return "6"
	}

	return c.in.Text()
}

func (c *cli) readAmount(prompt string) (decimal.Decimal, bool) {
	fmt.Print(prompt)

	amount, err := decimal.NewFromString(c.readToken())
	if err != nil {
		fmt.Println("Invalid input.")
		return decimal.Decimal{}, false
	}

	return amount, true
}

func (c *cli) save(ctx context.Context) {
	l := zerolog.Ctx(ctx)

	if err := c.store.SaveAccounts(c.service.Accounts()); err != nil {
		l.Error().Err(err).Msg("cannot save accounts")
	}

	if err := c.store.SaveBlocks(c.service.Blocks()); err != nil {
		l.Error().Err(err).Msg("cannot save transactions")
	}
}

func (c *cli) createAccount(ctx context.Context) {
	fmt.Print("Enter name: ")
	name := c.readToken()

	fmt.Print("Enter mobile number: ")
	mobile := c.readToken()

	if len(mobile) != 10 {
		fmt.Println("Error: Mobile number must be exactly 10 digits long.")
		return
	}

	fmt.Print("Create password: ")
	password := c.readToken()

	fmt.Print("Confirm password: ")
	confirm := c.readToken()

	if password != confirm {
		fmt.Println("Passwords do not match. Account creation failed.")
		return
	}

	deposit, ok := c.readAmount("Initial deposit: ")
	if !ok {
		return
	}

	account, err := c.service.CreateAccount(ctx, domain.CreateAccountParams{
		Name:            name,
		Mobile:          mobile,
		Password:        password,
		ConfirmPassword: confirm,
		InitialDeposit:  deposit,
	})
	if err != nil {
		fmt.Println("Account creation failed:", err)
		return
	}

	fmt.Printf("Account created successfully. Account Number: %s\n", account.AccountNumber)
	c.save(ctx)
}

func (c *cli) deposit(ctx context.Context) {
	fmt.Print("Enter account number: ")
	accountNumber := c.readToken()

	amount, ok := c.readAmount("Enter amount to deposit: ")
	if !ok {
		return
	}

	fmt.Printf("Enter password for account %s: ", accountNumber)
	password := c.readToken()

	account, err := c.service.Deposit(ctx, accountNumber, password, amount)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			fmt.Println("Authentication failed. Transaction aborted.")
			return
		}

		fmt.Println("Deposit failed:", err)

		return
	}

	fmt.Printf("Rs.%s deposited to Account #%s. New Balance: Rs.%s\n",
		amount.StringFixed(2), account.AccountNumber, account.Balance.StringFixed(2))
	c.save(ctx)
}

func (c *cli) withdraw(ctx context.Context) {
	fmt.Print("Enter account number: ")
	accountNumber := c.readToken()

	amount, ok := c.readAmount("Enter amount to withdraw: ")
	if !ok {
		return
	}

	fmt.Printf("Enter password for account %s: ", accountNumber)
	password := c.readToken()

	account, err := c.service.Withdraw(ctx, accountNumber, password, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthenticationFailed):
			fmt.Println("Authentication failed. Transaction aborted.")
		case errors.Is(err, domain.ErrInsufficientFunds):
			fmt.Println("Insufficient funds for withdrawal.")
		default:
			fmt.Println("Withdrawal failed:", err)
		}

		return
	}

	fmt.Printf("Rs.%s withdrawn from Account #%s. New Balance: Rs.%s\n",
		amount.StringFixed(2), account.AccountNumber, account.Balance.StringFixed(2))
	c.save(ctx)
}

func (c *cli) transfer(ctx context.Context) {
	fmt.Print("Enter from account number: ")
	fromAccount := c.readToken()

	fmt.Print("Enter to account number: ")
	toAccount := c.readToken()

	amount, ok := c.readAmount("Enter amount to transfer: ")
	if !ok {
		return
	}

	fmt.Printf("Enter password for account %s: ", fromAccount)
	password := c.readToken()

	from, to, err := c.service.Transfer(ctx, fromAccount, toAccount, password, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthenticationFailed):
			fmt.Println("Authentication failed. Transfer aborted.")
		case errors.Is(err, domain.ErrAccountNotFound):
			fmt.Println("One or both account numbers not found.")
		case errors.Is(err, domain.ErrInsufficientFunds):
			fmt.Println("Insufficient funds in source account.")
		default:
			fmt.Println("Transfer failed:", err)
		}

		return
	}

	fmt.Printf("Rs.%s transferred from Account #%s to Account #%s\n",
		amount.StringFixed(2), from.AccountNumber, to.AccountNumber)
	c.save(ctx)
}

func (c *cli) printAccounts() {
	fmt.Println("List of Users:")

	for _, acc := range c.service.Accounts() {
		fmt.Printf("Account #%s: %s, Mobile: %s, Balance: Rs.%s\n",
			acc.AccountNumber, acc.Name, acc.Mobile, acc.Balance.StringFixed(2))
	}
}
