package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/csagrp6/chainbank/internal/bankdelivery"
	"github.com/csagrp6/chainbank/internal/bankservice"
	"github.com/csagrp6/chainbank/internal/csvstore"
	"github.com/csagrp6/chainbank/internal/directory"
	"github.com/csagrp6/chainbank/internal/ledger"
	"github.com/csagrp6/chainbank/internal/middleware"
	"github.com/csagrp6/chainbank/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	server, err := createServer(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	store := csvstore.New(config.UsersFile, config.TransactionsFile)

	accounts, err := store.LoadAccounts()
	if err != nil {
		return nil, err
	}

	blocks, err := store.LoadBlocks()
	if err != nil {
		return nil, err
	}

	dir := directory.New()
	if err := dir.Restore(accounts); err != nil {
		return nil, err
	}

	chain := ledger.New()
	chain.Restore(blocks)

	logger.Info().
		Int("accounts", dir.Len()).
		Int("blocks", chain.Len()).
		Msg("state restored")

	service := bankservice.New(dir, chain)
	handler := bankdelivery.NewHandler(service, store)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/accounts", handler.CreateAccount)
	server.POST("/deposits", handler.Deposit)
	server.POST("/withdrawals", handler.Withdraw)
	server.POST("/transfers", handler.Transfer)
	server.GET("/accounts", handler.ListAccounts)
	server.GET("/ledger", handler.ListLedger)

	return server, nil
}
