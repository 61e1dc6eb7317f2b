package bankdelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/csagrp6/chainbank/internal/bankservice"
	"github.com/csagrp6/chainbank/internal/csvstore"
	"github.com/csagrp6/chainbank/internal/directory"
	"github.com/csagrp6/chainbank/internal/domain"
	"github.com/csagrp6/chainbank/internal/ledger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, *bankservice.Service) {
	dir := t.TempDir()
	store := csvstore.New(filepath.Join(dir, "users.csv"), filepath.Join(dir, "transactions.csv"))
	service := bankservice.New(directory.New(), ledger.New())
	handler := NewHandler(service, store)

	router := gin.New()
	router.POST("/accounts", handler.CreateAccount)
	router.POST("/deposits", handler.Deposit)
	router.POST("/withdrawals", handler.Withdraw)
	router.POST("/transfers", handler.Transfer)
	router.GET("/accounts", handler.ListAccounts)
	router.GET("/ledger", handler.ListLedger)

	return router, service
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestCreateAccountHandler(t *testing.T) {
	testCases := []struct {
		name           string
		body           map[string]string
		wantStatusCode int
	}{
		{
			name: "OK",
			body: map[string]string{
				"name":             "alice",
				"mobile":           "9876543210",
				"password":         "secret",
				"confirm_password": "secret",
				"initial_deposit":  "100.00",
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "MobileWrongLength",
			body: map[string]string{
				"name":             "alice",
				"mobile":           "98765",
				"password":         "secret",
				"confirm_password": "secret",
				"initial_deposit":  "100.00",
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "PasswordMismatch",
			body: map[string]string{
				"name":             "alice",
				"mobile":           "9876543210",
				"password":         "secret",
				"confirm_password": "different",
				"initial_deposit":  "100.00",
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "MissingName",
			body: map[string]string{
				"mobile":           "9876543210",
				"password":         "secret",
				"confirm_password": "secret",
				"initial_deposit":  "100.00",
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "UnparsableAmount",
			body: map[string]string{
				"name":             "alice",
				"mobile":           "9876543210",
				"password":         "secret",
				"confirm_password": "secret",
				"initial_deposit":  "lots",
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			router, _ := newTestRouter(t)

			recorder := doJSON(t, router, http.MethodPost, "/accounts", tc.body)
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			var res struct {
				Data struct {
					Account struct {
						AccountNumber string `json:"account_number"`
					} `json:"account"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			require.Equal(t, "CSAGRP6A001", res.Data.Account.AccountNumber)
		})
	}
}

func TestDepositHandler(t *testing.T) {
	testCases := []struct {
		name           string
		body           map[string]string
		wantStatusCode int
	}{
		{
			name: "OK",
			body: map[string]string{
				"account_number": "CSAGRP6A001",
				"password":       "secret",
				"amount":         "50.00",
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "WrongPassword",
			body: map[string]string{
				"account_number": "CSAGRP6A001",
				"password":       "wrong",
				"amount":         "50.00",
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "MissingAmount",
			body: map[string]string{
				"account_number": "CSAGRP6A001",
				"password":       "secret",
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			router, service := newTestRouter(t)
			seedAccount(t, service, "100.00")

			recorder := doJSON(t, router, http.MethodPost, "/deposits", tc.body)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestWithdrawHandlerInsufficientFunds(t *testing.T) {
	router, service := newTestRouter(t)
	seedAccount(t, service, "100.00")

	recorder := doJSON(t, router, http.MethodPost, "/withdrawals", map[string]string{
		"account_number": "CSAGRP6A001",
		"password":       "secret",
		"amount":         "200.00",
	})

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestTransferHandlerDestinationNotFound(t *testing.T) {
	router, service := newTestRouter(t)
	seedAccount(t, service, "100.00")

	recorder := doJSON(t, router, http.MethodPost, "/transfers", map[string]string{
		"from_account": "CSAGRP6A001",
		"to_account":   "CSAGRP6A999",
		"password":     "secret",
		"amount":       "10.00",
	})

	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListLedgerGrowsPerMutation(t *testing.T) {
	router, service := newTestRouter(t)
	seedAccount(t, service, "100.00")

	recorder := doJSON(t, router, http.MethodPost, "/deposits", map[string]string{
		"account_number": "CSAGRP6A001",
		"password":       "secret",
		"amount":         "50.00",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	req := httptest.NewRequest(http.MethodGet, "/ledger", nil)
	listRecorder := httptest.NewRecorder()
	router.ServeHTTP(listRecorder, req)
	require.Equal(t, http.StatusOK, listRecorder.Code)

	var res struct {
		Data struct {
			Blocks []struct {
				Index         int    `json:"index"`
				TransactionID string `json:"transaction_id"`
				PreviousHash  string `json:"previous_hash"`
				Hash          string `json:"hash"`
			} `json:"blocks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(listRecorder.Body.Bytes(), &res))
	require.Len(t, res.Data.Blocks, 2)
	require.Equal(t, res.Data.Blocks[0].Hash, res.Data.Blocks[1].PreviousHash)
}

func seedAccount(t *testing.T, service *bankservice.Service, deposit string) {
	t.Helper()

	_, err := service.CreateAccount(context.Background(), domain.CreateAccountParams{
		Name:            "alice",
		Mobile:          "9876543210",
		Password:        "secret",
		ConfirmPassword: "secret",
		InitialDeposit:  decimal.RequireFromString(deposit),
	})
	require.NoError(t, err)
}
