package main

import (
	"fmt"
	"net/http"
	"time"

	"listing-importer/internal/adapters/ebay"
	"listing-importer/internal/adapters/shopify"
	"listing-importer/internal/api"
	"listing-importer/internal/app/resolver"
	"listing-importer/internal/app/usecases"
	"listing-importer/internal/config"
	"listing-importer/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		return
	}
	logger := logging.NewLogger(cfg.TelegramBot)

	httpClient := &http.Client{Timeout: maxDuration(cfg.Ebay.Timeout, cfg.Shopify.Timeout)}

	ebayClient := ebay.NewClient(cfg.Ebay, httpClient)
	shopifyClient := shopify.NewClient(cfg.Shopify, httpClient)

	res := resolver.NewResolver(ebayClient, logger)
	importer := usecases.NewImportListings(res, shopifyClient, usecases.NewHistory(usecases.DefaultHistorySize), logger)

	handlers := api.NewHandlers(importer, logger)
	router := api.SetupRoutes(handlers)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Log(fmt.Sprintf("listing importer listening on %s", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.LogError("server stopped", err)
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a >= b {
		return a
	}
	return b
}
