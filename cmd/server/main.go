// Command server wires the banking core together and serves the HTTP API.
package main

import (
	"os"

	infracache "github.com/amirasaad/banking/infra/cache"
	"github.com/amirasaad/banking/infra/initializer"
	infrarepo "github.com/amirasaad/banking/infra/repository"
	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/cache"
	"github.com/amirasaad/banking/pkg/config"
	"github.com/amirasaad/banking/pkg/service/accounts"
	"github.com/amirasaad/banking/pkg/service/conversion"
	"github.com/amirasaad/banking/pkg/service/listing"
	"github.com/amirasaad/banking/pkg/service/movement"
	"github.com/amirasaad/banking/webapi"
	"github.com/shopspring/decimal"
)

func main() {
	logger := initializer.SetupLogger()

	cfg, err := config.LoadAppConfig(logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initializer.NewDBConnection(cfg.DB, os.Getenv("APP_ENV"))
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	uow := infrarepo.NewUoW(db)

	var currencyCache cache.CurrencyCache
	if cfg.Redis.Addr != "" {
		currencyCache = infracache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "banking:", logger)
	} else {
		currencyCache = infracache.NewMemoryCache()
	}

	currencies, err := uow.Currencies()
	if err != nil {
		logger.Error("failed to build currency repository", "error", err)
		os.Exit(1)
	}
	lookup := conversion.NewLookup(currencies, currencyCache, cfg.Currency.CacheTTL, logger)

	movementSvc := movement.NewService(uow, lookup, movement.Config{
		Fees: conversion.FeePolicy{
			SameCurrencyRate:  decimal.NewFromFloat(cfg.Movement.SameCurrencyFeeRate),
			CrossCurrencyRate: decimal.NewFromFloat(cfg.Movement.CrossCurrencyFeeRate),
		},
		MaxRetries: cfg.Movement.MaxRetries,
	}, logger)
	accountsSvc := accounts.NewService(uow, logger)
	listingSvc := listing.NewService(uow, logger)
	authzSvc := authz.NewService(uow, logger)

	app := webapi.NewApp(movementSvc, accountsSvc, listingSvc, authzSvc, uow, cfg)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
