// Package bankdelivery manages the HTTP delivery layer of the ledger bank.
package bankdelivery

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/csagrp6/chainbank/internal/domain"
	"github.com/csagrp6/chainbank/pkg/errorspkg"
	"github.com/csagrp6/chainbank/pkg/web"
)

// Service provides the service layer interface needed by the delivery layer.
type Service interface {
	CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Deposit(ctx context.Context, accountNumber, password string, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, accountNumber, password string, amount decimal.Decimal) (domain.Account, error)
	Transfer(ctx context.Context, fromAccount, toAccount, password string, amount decimal.Decimal) (domain.Account, domain.Account, error)
	Accounts() []domain.Account
	Blocks() []domain.Block
}

// Saver persists directory and ledger snapshots after committed mutations.
type Saver interface {
	SaveAccounts(accounts []domain.Account) error
	SaveBlocks(blocks []domain.Block) error
}

// Handler facilitates the bank delivery layer logic.
//
// The service is not internally synchronized, so the handler serializes
// every mutating request with one mutex spanning authenticate, mutate,
// ledger append and save as a single critical section.
type Handler struct {
	mu      sync.Mutex
	service Service
	store   Saver
}

// NewHandler returns a bank handler.
func NewHandler(s Service, store Saver) *Handler {
	return &Handler{service: s, store: store}
}

func bindError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	var (
		ve     validator.ValidationErrors
		errMsg string
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	} else {
		errMsg = err.Error()
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	return amount, nil
}

// persist saves the current directory and ledger snapshots. Must be called
// with the handler mutex held.
func (h *Handler) persist(ctx context.Context) error {
	l := zerolog.Ctx(ctx)

	if err := h.store.SaveAccounts(h.service.Accounts()); err != nil {
		l.Error().Err(err).Msg("cannot save accounts")
		return err
	}

	if err := h.store.SaveBlocks(h.service.Blocks()); err != nil {
		l.Error().Err(err).Msg("cannot save transactions")
		return err
	}

	return nil
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrInvalidMobileFormat),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) operationError(gctx *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		err = errorspkg.ErrInternal
	}

	gctx.JSON(status, web.Error(err))
}

type createAccountRequest struct {
	Name            string `json:"name" binding:"required"`
	Mobile          string `json:"mobile" binding:"required,len=10"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	InitialDeposit  string `json:"initial_deposit" binding:"required"`
}

type accountData struct {
	Account domain.Account `json:"account"`
}

// CreateAccount handles http request to create an account.
func (h *Handler) CreateAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createAccountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	deposit, err := parseAmount(req.InitialDeposit)
	if err != nil {
		h.operationError(gctx, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	account, err := h.service.CreateAccount(ctx, domain.CreateAccountParams{
		Name:            req.Name,
		Mobile:          req.Mobile,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		InitialDeposit:  deposit,
	})
	if err != nil {
		h.operationError(gctx, err)
		return
	}

	if err := h.persist(ctx); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type transactionRequest struct {
	AccountNumber string `json:"account_number" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.transaction(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.transaction(gctx, h.service.Withdraw)
}

func (h *Handler) transaction(gctx *gin.Context, op func(ctx context.Context, accountNumber, password string, amount decimal.Decimal) (domain.Account, error)) {
	ctx := gctx.Request.Context()

	var req transactionRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.operationError(gctx, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	account, err := op(ctx, req.AccountNumber, req.Password, amount)
	if err != nil {
		h.operationError(gctx, err)
		return
	}

	if err := h.persist(ctx); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type transferRequest struct {
	FromAccount string `json:"from_account" binding:"required"`
	ToAccount   string `json:"to_account" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

type transferData struct {
	FromAccount domain.Account `json:"from_account"`
	ToAccount   domain.Account `json:"to_account"`
}

// Transfer handles http request to move money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.operationError(gctx, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	from, to, err := h.service.Transfer(ctx, req.FromAccount, req.ToAccount, req.Password, amount)
	if err != nil {
		h.operationError(gctx, err)
		return
	}

	if err := h.persist(ctx); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{FromAccount: from, ToAccount: to}})
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

// ListAccounts handles http request to enumerate all accounts.
func (h *Handler) ListAccounts(gctx *gin.Context) {
	h.mu.Lock()
	accounts := h.service.Accounts()
	h.mu.Unlock()

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{accounts}})
}

type ledgerData struct {
	Blocks []domain.Block `json:"blocks"`
}

// ListLedger handles http request to read the full ledger chain.
func (h *Handler) ListLedger(gctx *gin.Context) {
	h.mu.Lock()
	blocks := h.service.Blocks()
	h.mu.Unlock()

	gctx.JSON(http.StatusOK, web.Response{Data: ledgerData{blocks}})
}
